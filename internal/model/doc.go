// Package model defines domain data structures shared across the app:
// download jobs and their state machine, user settings, playlist entries,
// and the structured error type surfaced to the front-end.
package model
