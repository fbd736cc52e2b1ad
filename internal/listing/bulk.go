package listing

import (
	"fmt"

	"counseling/internal/apperr"
	"counseling/internal/model"
)

// BulkAction is an operation applied to a selection of users.
type BulkAction string

const (
	BulkActivate   BulkAction = "activate"
	BulkDeactivate BulkAction = "deactivate"
	BulkDelete     BulkAction = "delete"
)

// ParseBulkAction validates an action name.
func ParseBulkAction(s string) (BulkAction, error) {
	switch a := BulkAction(s); a {
	case BulkActivate, BulkDeactivate, BulkDelete:
		return a, nil
	}
	return "", apperr.Invalid("Invalid action", fmt.Sprintf("unknown bulk action %q", s))
}

// UserStore is what bulk actions modify.
type UserStore interface {
	SetStatus(ids []string, status model.UserStatus) int
	Delete(ids []string) int
}

// BulkResult reports the outcome of a bulk action.
type BulkResult struct {
	Action   BulkAction `json:"action"`
	Selected int        `json:"selected"`
	Affected int        `json:"affected"`
	Message  string     `json:"message"`
}

// ApplyBulk runs action over ids. An empty selection is rejected.
func ApplyBulk(store UserStore, action BulkAction, ids []string) (BulkResult, error) {
	if len(ids) == 0 {
		return BulkResult{}, apperr.Invalid("No users selected", "Select at least one user.")
	}
	var n int
	switch action {
	case BulkActivate:
		n = store.SetStatus(ids, model.UserActive)
	case BulkDeactivate:
		n = store.SetStatus(ids, model.UserInactive)
	case BulkDelete:
		n = store.Delete(ids)
	default:
		return BulkResult{}, apperr.Invalid("Invalid action", fmt.Sprintf("unknown bulk action %q", string(action)))
	}
	return BulkResult{
		Action:   action,
		Selected: len(ids),
		Affected: n,
		Message:  fmt.Sprintf("%s performed on %d users.", action, len(ids)),
	}, nil
}
