package role

import (
	"fmt"
	"strings"
)

// Role is one of the three portal roles.
type Role string

const (
	Student Role = "student"
	Teacher Role = "teacher"
	Admin   Role = "admin"
)

// All lists every role in display order.
var All = []Role{Student, Teacher, Admin}

// Parse converts a stored or submitted role string into a Role.
func Parse(s string) (Role, error) {
	names := make([]string, len(All))
	for i, r := range All {
		if string(r) == s {
			return r, nil
		}
		names[i] = string(r)
	}
	return "", fmt.Errorf("unknown role %q, want one of %s", s, strings.Join(names, ", "))
}

func (r Role) String() string { return string(r) }

// Infer picks a role from an email address. There is no credential check behind it.
func Infer(email string) Role {
	if strings.Contains(email, "teacher") {
		return Teacher
	}
	if strings.Contains(email, "admin") {
		return Admin
	}
	return Student
}

// NavLink is a dashboard navigation entry.
type NavLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// NavLinks returns the navigation shown for r. Admins get no nav bar.
func NavLinks(r Role) ([]NavLink, error) {
	switch r {
	case Student:
		return []NavLink{
			{Href: "/dashboard", Label: "Dashboard"},
			{Href: "/dashboard/book", Label: "Book Appointment"},
		}, nil
	case Teacher:
		return []NavLink{
			{Href: "/dashboard", Label: "Dashboard"},
			{Href: "/dashboard/availability", Label: "Manage Availability"},
		}, nil
	case Admin:
		return []NavLink{}, nil
	}
	return nil, fmt.Errorf("no navigation for role %q", string(r))
}

// Dashboard names the dashboard variant a role lands on.
type Dashboard string

const (
	StudentDashboard Dashboard = "student"
	TeacherDashboard Dashboard = "teacher"
	AdminDashboard   Dashboard = "admin"
)

// DashboardKind picks the dashboard for r.
func DashboardKind(r Role) (Dashboard, error) {
	switch r {
	case Student:
		return StudentDashboard, nil
	case Teacher:
		return TeacherDashboard, nil
	case Admin:
		return AdminDashboard, nil
	}
	return "", fmt.Errorf("no dashboard for role %q", string(r))
}
