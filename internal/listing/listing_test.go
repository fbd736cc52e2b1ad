package listing

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counseling/internal/appointment"
	"counseling/internal/apperr"
	"counseling/internal/fixture"
	"counseling/internal/model"
)

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func userID(u model.User) string        { return u.ID }
func apptID(a model.Appointment) string { return a.ID }

func TestUsersFilter(t *testing.T) {
	users := fixture.Users()
	tests := []struct {
		name string
		f    UserFilter
		want []string
	}{
		{"empty query returns all", UserFilter{}, []string{"user1", "user2", "user3", "user4", "user5", "user6", "user7", "user8"}},
		{"department match is case-insensitive", UserFilter{Query: "COMPUTER"}, []string{"user1", "user2"}},
		{"email match", UserFilter{Query: "j.wilson@"}, []string{"user6"}},
		{"whitespace query is literal", UserFilter{Query: "   "}, []string{}},
		{"role", UserFilter{Role: "teacher"}, []string{"user2", "user4", "user6"}},
		{"role all", UserFilter{Role: Any, Status: Any}, []string{"user1", "user2", "user3", "user4", "user5", "user6", "user7", "user8"}},
		{"status", UserFilter{Status: "inactive"}, []string{"user3"}},
		{"combined", UserFilter{Query: "e", Role: "student", Status: "active"}, []string{"user1", "user5", "user7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.f.Validate())
			assert.Equal(t, tt.want, ids(Users(users, tt.f), userID))
		})
	}
}

func TestUserFilterValidate(t *testing.T) {
	assert.True(t, apperr.IsValidation(UserFilter{Role: "guest"}.Validate()))
	assert.True(t, apperr.IsValidation(UserFilter{Status: "banned"}.Validate()))
	assert.True(t, apperr.IsValidation(AppointmentFilter{Status: "archived"}.Validate()))
	assert.NoError(t, AppointmentFilter{Status: "pending"}.Validate())
}

func TestAppointmentsFilter(t *testing.T) {
	items := fixture.Appointments()
	tests := []struct {
		name string
		f    AppointmentFilter
		want []string
	}{
		{"teacher name", AppointmentFilter{Query: "williams"}, []string{"appt1", "appt4", "appt7"}},
		{"student or teacher", AppointmentFilter{Query: "Sarah"}, []string{"appt1", "appt4", "appt7"}},
		{"course", AppointmentFilter{Query: "computer science 101"}, []string{"appt1", "appt7"}},
		{"subject", AppointmentFilter{Query: "thesis"}, []string{"appt2"}},
		{"status", AppointmentFilter{Status: "pending"}, []string{"appt4", "appt8"}},
		{"exact date", AppointmentFilter{Date: "2024-05-05"}, []string{"appt6"}},
		{"no match", AppointmentFilter{Query: "chemistry"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Appointments(items, tt.f), apptID))
		})
	}
}

func TestPaginate(t *testing.T) {
	users := fixture.Users()

	p := Paginate(users, 1, 5)
	assert.Len(t, p.Items, 5)
	assert.Equal(t, 2, p.Pages)
	assert.Equal(t, 8, p.Total)
	assert.Equal(t, "Showing 5 of 8", p.Showing)

	p = Paginate(users, 2, 5)
	assert.Equal(t, []string{"user6", "user7", "user8"}, ids(p.Items, userID))

	assert.Equal(t, 1, Paginate(users, 0, 5).Page)
	assert.Equal(t, 1, Paginate(users, -3, 5).Page)
	assert.Equal(t, 2, Paginate(users, 99, 5).Page)

	empty := Paginate([]model.User{}, 3, 5)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.Pages)
	assert.Empty(t, empty.Items)

	exact := Paginate(users[:5], 2, 5)
	assert.Equal(t, 1, exact.Pages)
	assert.Equal(t, 1, exact.Page)

	assert.Equal(t, DefaultPageSize, Paginate(users, 1, 0).PageSize)
}

func TestApplyBulk(t *testing.T) {
	dir := appointment.NewDirectory(fixture.Users())

	res, err := ApplyBulk(dir, BulkDeactivate, []string{"user1", "user2"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Affected)
	assert.Equal(t, "deactivate performed on 2 users.", res.Message)
	assert.Equal(t, []string{"user1", "user2", "user3"}, ids(Users(dir.List(), UserFilter{Status: "inactive"}), userID))

	res, err = ApplyBulk(dir, BulkDelete, []string{"user3", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Selected)
	assert.Equal(t, 1, res.Affected)
	assert.Len(t, dir.List(), 7)

	_, err = ApplyBulk(dir, BulkActivate, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = ParseBulkAction("promote")
	assert.True(t, apperr.IsValidation(err))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUsersCSV(&buf, fixture.Users()[:2]))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "email", rows[0][2])
	assert.Equal(t, "s.williams@university.edu", rows[2][2])

	buf.Reset()
	require.NoError(t, WriteAppointmentsCSV(&buf, fixture.Appointments()))
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 9)
	assert.Equal(t, "completed", rows[1][6])
}
