// Package ui contains the Fyne desktop front-end. It only talks to the
// command surface, so every value it submits goes through the same
// sanitizer as any other caller.
package ui
