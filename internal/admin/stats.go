// Package admin computes the admin dashboard figures and keeps the activity feed and system settings.
package admin

import (
	"math"
	"sort"

	"counseling/internal/model"
	"counseling/internal/role"
)

// TeacherStat counts appointments for one teacher.
type TeacherStat struct {
	Name         string `json:"name"`
	Department   string `json:"department"`
	Appointments int    `json:"appointmentsCount"`
}

// DepartmentStat counts appointments whose teacher belongs to a department.
type DepartmentStat struct {
	Department   string `json:"department"`
	Appointments int    `json:"appointments"`
}

// Stats are the admin dashboard cards.
type Stats struct {
	TotalUsers               int              `json:"totalUsers"`
	ActiveUsers              int              `json:"activeUsers"`
	TotalTeachers            int              `json:"totalTeachers"`
	TotalStudents            int              `json:"totalStudents"`
	TotalAppointments        int              `json:"totalAppointments"`
	PendingAppointments      int              `json:"pendingAppointments"`
	ConfirmedAppointments    int              `json:"confirmedAppointments"`
	CompletedAppointments    int              `json:"completedAppointments"`
	CancelledAppointments    int              `json:"cancelledAppointments"`
	CompletionRate           int              `json:"appointmentCompletionRate"`
	TopTeachers              []TeacherStat    `json:"topTeachers"`
	AppointmentsByDepartment []DepartmentStat `json:"appointmentsByDepartment"`
}

// UnknownDepartment groups appointments whose teacher is not in the directory.
const UnknownDepartment = "Unknown"

// Compute derives Stats from the current users and appointments. topN bounds TopTeachers.
func Compute(users []model.User, appts []model.Appointment, topN int) Stats {
	var s Stats
	dept := make(map[string]string)
	for _, u := range users {
		s.TotalUsers++
		if u.Status == model.UserActive {
			s.ActiveUsers++
		}
		switch u.Role {
		case role.Teacher:
			s.TotalTeachers++
			dept[u.Name] = u.Department
		case role.Student:
			s.TotalStudents++
		}
	}

	perTeacher := make(map[string]int)
	perDept := make(map[string]int)
	for _, a := range appts {
		s.TotalAppointments++
		switch a.Status {
		case model.StatusPending:
			s.PendingAppointments++
		case model.StatusConfirmed:
			s.ConfirmedAppointments++
		case model.StatusCompleted:
			s.CompletedAppointments++
		case model.StatusCancelled:
			s.CancelledAppointments++
		}
		if a.TeacherName != "" {
			perTeacher[a.TeacherName]++
		}
		d, ok := dept[a.TeacherName]
		if !ok || d == "" {
			d = UnknownDepartment
		}
		perDept[d]++
	}
	if s.TotalAppointments > 0 {
		s.CompletionRate = int(math.Round(float64(s.CompletedAppointments) * 100 / float64(s.TotalAppointments)))
	}

	for name, n := range perTeacher {
		s.TopTeachers = append(s.TopTeachers, TeacherStat{Name: name, Department: dept[name], Appointments: n})
	}
	sort.Slice(s.TopTeachers, func(i, j int) bool {
		a, b := s.TopTeachers[i], s.TopTeachers[j]
		if a.Appointments != b.Appointments {
			return a.Appointments > b.Appointments
		}
		return a.Name < b.Name
	})
	if topN > 0 && len(s.TopTeachers) > topN {
		s.TopTeachers = s.TopTeachers[:topN]
	}

	for d, n := range perDept {
		s.AppointmentsByDepartment = append(s.AppointmentsByDepartment, DepartmentStat{Department: d, Appointments: n})
	}
	sort.Slice(s.AppointmentsByDepartment, func(i, j int) bool {
		return s.AppointmentsByDepartment[i].Department < s.AppointmentsByDepartment[j].Department
	})
	return s
}
