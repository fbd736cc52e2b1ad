// Package listing filters, paginates and exports the admin user and appointment lists.
package listing

import (
	"strings"

	"counseling/internal/apperr"
	"counseling/internal/model"
	"counseling/internal/role"
)

// Any matches every value of a categorical filter.
const Any = "all"

// UserFilter narrows the user list. Empty Role or Status means Any.
type UserFilter struct {
	Query  string `form:"q"`
	Role   string `form:"role"`
	Status string `form:"status"`
}

// Validate rejects role and status values outside their enums.
func (f UserFilter) Validate() error {
	if f.Role != "" && f.Role != Any {
		if _, err := role.Parse(f.Role); err != nil {
			return apperr.Invalid("Invalid filter", err.Error())
		}
	}
	switch model.UserStatus(f.Status) {
	case "", Any, model.UserActive, model.UserInactive:
		return nil
	}
	return apperr.Invalid("Invalid filter", "unknown user status "+f.Status)
}

// Users returns the users that match f, in input order.
func Users(users []model.User, f UserFilter) []model.User {
	q := strings.ToLower(f.Query)
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if q != "" && !containsAny(q, u.Name, u.Email, u.Department) {
			continue
		}
		if !matches(f.Role, string(u.Role)) || !matches(f.Status, string(u.Status)) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// AppointmentFilter narrows the appointment list. Date, if set, must match exactly.
type AppointmentFilter struct {
	Query  string `form:"q"`
	Status string `form:"status"`
	Date   string `form:"date"`
}

func (f AppointmentFilter) Validate() error {
	if f.Status == "" || f.Status == Any {
		return nil
	}
	if _, err := model.ParseStatus(f.Status); err != nil {
		return apperr.Invalid("Invalid filter", err.Error())
	}
	return nil
}

// Appointments returns the appointments that match f, in input order.
func Appointments(items []model.Appointment, f AppointmentFilter) []model.Appointment {
	q := strings.ToLower(f.Query)
	out := make([]model.Appointment, 0, len(items))
	for _, a := range items {
		if q != "" && !containsAny(q, a.StudentName, a.TeacherName, a.Subject, a.Course) {
			continue
		}
		if !matches(f.Status, string(a.Status)) {
			continue
		}
		if f.Date != "" && a.Date != f.Date {
			continue
		}
		out = append(out, a)
	}
	return out
}

func containsAny(q string, fields ...string) bool {
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func matches(want, got string) bool {
	return want == "" || want == Any || want == got
}
