package model

import "testing"

func TestJobState_IsActive(t *testing.T) {
	tests := []struct {
		state    JobState
		expected bool
	}{
		{JobStateQueued, false},
		{JobStateRunning, true},
		{JobStateCompleted, false},
		{JobStateFailed, false},
		{JobStateCancelled, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("JobState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestJobState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    JobState
		expected bool
	}{
		{JobStateQueued, false},
		{JobStateRunning, false},
		{JobStateCompleted, true},
		{JobStateFailed, true},
		{JobStateCancelled, true},
	}

	for _, test := range tests {
		result := test.state.IsTerminal()
		if result != test.expected {
			t.Errorf("JobState(%s).IsTerminal() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestJobState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to JobState
		expected bool
	}{
		{JobStateQueued, JobStateRunning, true},
		{JobStateQueued, JobStateCancelled, true},
		{JobStateQueued, JobStateCompleted, false},
		{JobStateQueued, JobStateFailed, false},
		{JobStateRunning, JobStateCompleted, true},
		{JobStateRunning, JobStateFailed, true},
		{JobStateRunning, JobStateCancelled, true},
		{JobStateRunning, JobStateQueued, false},
		{JobStateCompleted, JobStateRunning, false},
		{JobStateCancelled, JobStateQueued, false},
	}

	for _, test := range tests {
		result := test.from.CanTransitionTo(test.to)
		if result != test.expected {
			t.Errorf("%s -> %s = %v, expected %v", test.from, test.to, result, test.expected)
		}
	}
}

func TestJobState_String(t *testing.T) {
	if JobStateRunning.String() != "Running" {
		t.Errorf("JobState.String() = %s, expected Running", JobStateRunning.String())
	}
}
