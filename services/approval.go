package services

import "membership-console/models"

// ApprovalAction is one of the row actions governed by the approval state
// machine. Reject is not a stored state: it deletes a pending record.
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "approve"
	ActionReject  ApprovalAction = "reject"
	ActionDelete  ApprovalAction = "delete"
)

// approvalRule describes one permitted action: the statuses it applies to,
// whether it needs an explicit confirmation, and whether it removes the
// record instead of moving it to a new status.
type approvalRule struct {
	from        []models.ApprovalStatus
	to          models.ApprovalStatus
	destructive bool
	confirm     bool
}

var approvalRules = map[ApprovalAction]approvalRule{
	// Approving an already-approved record is a safe no-op remotely, but
	// the action is only offered on pending rows.
	ActionApprove: {
		from: []models.ApprovalStatus{models.ApprovalPending},
		to:   models.ApprovalApproved,
	},
	ActionReject: {
		from:        []models.ApprovalStatus{models.ApprovalPending},
		destructive: true,
		confirm:     true,
	},
	ActionDelete: {
		from:        []models.ApprovalStatus{models.ApprovalPending, models.ApprovalApproved},
		destructive: true,
		confirm:     true,
	},
}

// AllowedActions lists the actions offered for a row in the given status.
// Approved is terminal: only delete remains.
func AllowedActions(status models.ApprovalStatus) []ApprovalAction {
	if status == models.ApprovalApproved {
		return []ApprovalAction{ActionDelete}
	}
	return []ApprovalAction{ActionApprove, ActionReject, ActionDelete}
}

// actionPermitted reports whether the machine admits the action from the
// given status.
func actionPermitted(action ApprovalAction, status models.ApprovalStatus) bool {
	rule, ok := approvalRules[action]
	if !ok {
		return false
	}
	for _, s := range rule.from {
		if s == status {
			return true
		}
	}
	return false
}

// needsConfirmation reports whether the action is gated behind an explicit
// user confirmation step.
func needsConfirmation(action ApprovalAction) bool {
	return approvalRules[action].confirm
}
