package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusIsValid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusWaiting, true},
		{StatusApproved, true},
		{StatusRejected, true},
		{StatusCanceled, true},
		{Status("UNKNOWN"), false},
		{Status(""), false},
		{Status("waiting"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.IsValid())
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"waiting to approved", StatusWaiting, StatusApproved, true},
		{"waiting to rejected", StatusWaiting, StatusRejected, true},
		{"waiting to canceled", StatusWaiting, StatusCanceled, true},
		{"waiting to waiting", StatusWaiting, StatusWaiting, false},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"approved to approved", StatusApproved, StatusApproved, false},
		{"rejected to approved", StatusRejected, StatusApproved, false},
		{"canceled to waiting", StatusCanceled, StatusWaiting, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusWaiting.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
}

func TestStatusBlocks(t *testing.T) {
	assert.True(t, StatusWaiting.Blocks())
	assert.True(t, StatusApproved.Blocks())
	assert.False(t, StatusRejected.Blocks())
	assert.False(t, StatusCanceled.Blocks())
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("APPROVED")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	_, err = ParseStatus("PENDING")
	assert.Error(t, err)
}
