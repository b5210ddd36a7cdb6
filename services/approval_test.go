package services

import (
	"testing"

	"membership-console/models"

	"github.com/stretchr/testify/assert"
)

func TestAllowedActionsPending(t *testing.T) {
	actions := AllowedActions(models.ApprovalPending)
	assert.Equal(t, []ApprovalAction{ActionApprove, ActionReject, ActionDelete}, actions)
}

func TestAllowedActionsApprovedIsTerminal(t *testing.T) {
	// Approved rows only offer delete; there is no de-approval.
	actions := AllowedActions(models.ApprovalApproved)
	assert.Equal(t, []ApprovalAction{ActionDelete}, actions)
}

func TestActionPermitted(t *testing.T) {
	assert.True(t, actionPermitted(ActionApprove, models.ApprovalPending))
	assert.False(t, actionPermitted(ActionApprove, models.ApprovalApproved))

	assert.True(t, actionPermitted(ActionReject, models.ApprovalPending))
	assert.False(t, actionPermitted(ActionReject, models.ApprovalApproved))

	assert.True(t, actionPermitted(ActionDelete, models.ApprovalPending))
	assert.True(t, actionPermitted(ActionDelete, models.ApprovalApproved))
}

func TestDestructiveActionsNeedConfirmation(t *testing.T) {
	assert.False(t, needsConfirmation(ActionApprove))
	assert.True(t, needsConfirmation(ActionReject))
	assert.True(t, needsConfirmation(ActionDelete))
}
