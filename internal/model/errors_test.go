package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := NewInvalidURL("URL is empty")
	if err.Error() != "InvalidUrl: URL is empty" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	if NewFileError("x").Kind.String() != "FileError" {
		t.Error("expected FileError kind name")
	}
	if NewCustomf("bad %d", 1).Message != "bad 1" {
		t.Error("expected formatted custom message")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("update settings: %w", NewFileError("Download path cannot be empty"))

	if KindOf(wrapped) != ErrorFile {
		t.Errorf("KindOf(wrapped) = %s, expected FileError", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != ErrorCustom {
		t.Error("plain errors should map to Custom")
	}
}
