package service

import (
	"testing"

	"github.com/teachscope/teachscope/internal/model"
)

func TestCanPerformTable(t *testing.T) {
	cases := []struct {
		role   model.Role
		action Action
		state  model.Status
		want   bool
	}{
		{model.RoleObserver, ActionSubmit, model.StatusDraft, true},
		{model.RoleAdmin, ActionSubmit, model.StatusDraft, true},
		{model.RoleReviewer, ActionSubmit, model.StatusDraft, false},
		{model.RoleObserver, ActionSubmit, model.StatusSubmitted, false},

		{model.RoleReviewer, ActionReview, model.StatusSubmitted, true},
		{model.RoleAdmin, ActionReview, model.StatusSubmitted, true},
		{model.RoleObserver, ActionReview, model.StatusSubmitted, false},
		{model.RoleReviewer, ActionReview, model.StatusDraft, false},
		{model.RoleReviewer, ActionReview, model.StatusReviewed, false},

		{model.RoleReviewer, ActionFinalize, model.StatusReviewed, true},
		{model.RoleReviewer, ActionFinalize, model.StatusSubmitted, false},
		{model.RoleAdmin, ActionFinalize, model.StatusFinalized, false},

		{model.RoleReviewer, ActionReturnToDraft, model.StatusSubmitted, true},
		{model.RoleReviewer, ActionReturnToDraft, model.StatusReviewed, true},
		{model.RoleReviewer, ActionReturnToDraft, model.StatusDraft, false},
		{model.RoleReviewer, ActionReturnToDraft, model.StatusFinalized, false},
		{model.RoleObserver, ActionReturnToDraft, model.StatusSubmitted, false},

		// Nothing leaves FINALIZED, whoever asks.
		{model.RoleAdmin, ActionSubmit, model.StatusFinalized, false},
		{model.RoleAdmin, ActionReview, model.StatusFinalized, false},
		{model.RoleAdmin, ActionReturnToDraft, model.StatusFinalized, false},
	}

	for _, tc := range cases {
		if got := CanPerform(tc.role, tc.action, tc.state); got != tc.want {
			t.Errorf("CanPerform(%s, %s, %s) = %v, want %v", tc.role, tc.action, tc.state, got, tc.want)
		}
	}
}

func TestParseAction(t *testing.T) {
	for raw, want := range map[string]Action{
		"SUBMIT":          ActionSubmit,
		"submit":          ActionSubmit,
		"Review":          ActionReview,
		"FINALIZE":        ActionFinalize,
		"return_to_draft": ActionReturnToDraft,
	} {
		got, ok := ParseAction(raw)
		if !ok || got != want {
			t.Errorf("ParseAction(%q) = %v/%v, want %v", raw, got, ok, want)
		}
	}
	if _, ok := ParseAction("REJECT"); ok {
		t.Error("ParseAction accepted an unknown action")
	}
}

func TestParseStatus(t *testing.T) {
	got, ok := model.ParseStatus("submitted")
	if !ok || got != model.StatusSubmitted {
		t.Errorf("ParseStatus(submitted) = %v/%v", got, ok)
	}
	if _, ok := model.ParseStatus("archived"); ok {
		t.Error("ParseStatus accepted an unknown status")
	}
}
