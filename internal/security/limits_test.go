package security

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampMaxConcurrent(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-5, 1},
		{math.MinInt, 1},
		{1, 1},
		{5, 5},
		{10, 10},
		{11, 10},
		{100, 10},
		{math.MaxInt, 10},
	}

	for _, test := range tests {
		got := ClampMaxConcurrent(test.in)
		assert.Equal(t, test.want, got, "ClampMaxConcurrent(%d)", test.in)
		assert.Equal(t, got, ClampMaxConcurrent(got), "not idempotent for %d", test.in)
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	t.Setenv("HOME", "/home/alice")
	t.Setenv("USERPROFILE", `C:\Users\alice`)

	msg := `failed to write /home/alice/Downloads/a.mp4 and C:\Users\alice\b.mp4`
	assert.Equal(t, `failed to write ~/Downloads/a.mp4 and ~\b.mp4`, SanitizeErrorMessage(msg))
	assert.Equal(t, "nothing to hide", SanitizeErrorMessage("nothing to hide"))
}

func TestSanitizeErrorMessage_EmptyHome(t *testing.T) {
	t.Setenv("HOME", "")
	t.Setenv("USERPROFILE", "")

	assert.Equal(t, "/home/bob/x", SanitizeErrorMessage("/home/bob/x"))
}
