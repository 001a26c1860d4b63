package service

import (
	"strings"

	"github.com/teachscope/teachscope/internal/model"
)

// Action is a lifecycle transition request.
type Action string

const (
	ActionSubmit        Action = "SUBMIT"
	ActionReview        Action = "REVIEW"
	ActionFinalize      Action = "FINALIZE"
	ActionReturnToDraft Action = "RETURN_TO_DRAFT"
)

// ParseAction normalises external representations of an action.
func ParseAction(s string) (Action, bool) {
	switch Action(strings.ToUpper(s)) {
	case ActionSubmit:
		return ActionSubmit, true
	case ActionReview:
		return ActionReview, true
	case ActionFinalize:
		return ActionFinalize, true
	case ActionReturnToDraft:
		return ActionReturnToDraft, true
	}
	return "", false
}

// transitionRule is one row of the lifecycle table: who may trigger the
// action and from which states.
type transitionRule struct {
	roles []model.Role
	from  []model.Status
}

// transitionRules is the single source of truth for role and state gating.
// SUBMIT additionally requires the actor to be the observation's observer
// (or an admin); that ownership check lives in the lifecycle service because
// it needs the record, not just the role.
var transitionRules = map[Action]transitionRule{
	ActionSubmit: {
		roles: []model.Role{model.RoleObserver, model.RoleAdmin},
		from:  []model.Status{model.StatusDraft},
	},
	ActionReview: {
		roles: []model.Role{model.RoleReviewer, model.RoleAdmin},
		from:  []model.Status{model.StatusSubmitted},
	},
	ActionFinalize: {
		roles: []model.Role{model.RoleReviewer, model.RoleAdmin},
		from:  []model.Status{model.StatusReviewed},
	},
	ActionReturnToDraft: {
		roles: []model.Role{model.RoleReviewer, model.RoleAdmin},
		from:  []model.Status{model.StatusSubmitted, model.StatusReviewed},
	},
}

// CanPerform is the single policy check every enforcement point consults.
func CanPerform(role model.Role, action Action, current model.Status) bool {
	return roleAllowed(role, action) && stateAllowed(current, action)
}

func roleAllowed(role model.Role, action Action) bool {
	rule, ok := transitionRules[action]
	if !ok {
		return false
	}
	for _, r := range rule.roles {
		if r == role {
			return true
		}
	}
	return false
}

func stateAllowed(current model.Status, action Action) bool {
	rule, ok := transitionRules[action]
	if !ok {
		return false
	}
	for _, s := range rule.from {
		if s == current {
			return true
		}
	}
	return false
}
