package listing

import (
	"encoding/csv"
	"io"
	"time"

	"counseling/internal/model"
)

// WriteUsersCSV writes users with a header row.
func WriteUsersCSV(w io.Writer, users []model.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "email", "role", "department", "status", "last_active"}); err != nil {
		return err
	}
	for _, u := range users {
		if err := cw.Write([]string{u.ID, u.Name, u.Email, u.Role.String(), u.Department, string(u.Status), u.LastActive.UTC().Format(time.RFC3339)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAppointmentsCSV writes appointments with a header row.
func WriteAppointmentsCSV(w io.Writer, items []model.Appointment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "student_id", "student_name", "teacher_name", "date", "time", "status", "subject", "course", "notes"}); err != nil {
		return err
	}
	for _, a := range items {
		if err := cw.Write([]string{a.ID, a.StudentID, a.StudentName, a.TeacherName, a.Date, a.Time, string(a.Status), a.Subject, a.Course, a.Notes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
