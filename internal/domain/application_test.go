package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationTransitions(t *testing.T) {
	allowed := []struct {
		from, to ApplicationStatus
	}{
		{ApplicationPending, ApplicationLeaderApproved},
		{ApplicationPending, ApplicationRejected},
		{ApplicationPending, ApplicationCancelled},
		{ApplicationLeaderApproved, ApplicationInterviewScheduled},
		{ApplicationLeaderApproved, ApplicationApproved},
		{ApplicationInterviewScheduled, ApplicationInterviewCompleted},
		{ApplicationInterviewScheduled, ApplicationLeaderApproved},
		{ApplicationInterviewCompleted, ApplicationApproved},
		{ApplicationInterviewCompleted, ApplicationRejected},
		{ApplicationInterviewCompleted, ApplicationLeaderApproved},
		{ApplicationApproved, ApplicationSuperseded},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to ApplicationStatus
	}{
		{ApplicationPending, ApplicationApproved},
		{ApplicationPending, ApplicationInterviewScheduled},
		{ApplicationLeaderApproved, ApplicationRejected},
		{ApplicationLeaderApproved, ApplicationCancelled},
		{ApplicationApproved, ApplicationPending},
		{ApplicationApproved, ApplicationLeaderApproved},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	all := []ApplicationStatus{
		ApplicationPending, ApplicationLeaderApproved, ApplicationInterviewScheduled,
		ApplicationInterviewCompleted, ApplicationApproved, ApplicationRejected,
		ApplicationSuperseded, ApplicationCancelled,
	}

	for _, terminal := range []ApplicationStatus{ApplicationRejected, ApplicationSuperseded, ApplicationCancelled} {
		for _, to := range all {
			assert.False(t, CanTransition(terminal, to), "%s must be terminal", terminal)
		}
	}
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	app := &AddressApplication{Status: ApplicationPending}

	err := app.Transition(ApplicationApproved)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, ApplicationPending, app.Status)

	require.NoError(t, app.Transition(ApplicationLeaderApproved))
	assert.Equal(t, ApplicationLeaderApproved, app.Status)
}

func TestIsLive(t *testing.T) {
	live := []ApplicationStatus{
		ApplicationPending, ApplicationLeaderApproved,
		ApplicationInterviewScheduled, ApplicationInterviewCompleted,
	}
	for _, s := range live {
		assert.True(t, (&AddressApplication{Status: s}).IsLive(), "%s should be live", s)
	}

	settled := []ApplicationStatus{
		ApplicationApproved, ApplicationRejected, ApplicationSuperseded, ApplicationCancelled,
	}
	for _, s := range settled {
		assert.False(t, (&AddressApplication{Status: s}).IsLive(), "%s should not be live", s)
	}
}
