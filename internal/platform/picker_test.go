package platform

import (
	"context"
	"errors"
	"testing"
)

func TestPickedPath(t *testing.T) {
	path, ok, err := pickedPath(nil, nil)
	if err != nil || ok || path != "" {
		t.Errorf("dismissed dialog: got (%q, %v, %v)", path, ok, err)
	}

	_, ok, err = pickedPath(nil, errors.New("portal unavailable"))
	if err == nil || ok {
		t.Errorf("dialog error should propagate, got ok=%v err=%v", ok, err)
	}
}

func TestFynePicker_NoWindow(t *testing.T) {
	p := NewFynePicker(nil)
	if _, _, err := p.PickFolder(context.Background()); err == nil {
		t.Error("expected error without a parent window")
	}
}
