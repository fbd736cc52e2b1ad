package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		email string
		want  Role
	}{
		{"pat.teacher@uni.edu", Teacher},
		{"pat@uni.edu", Student},
		{"admin@university.edu", Admin},
		{"teacher.admin@uni.edu", Teacher},
		{"", Student},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.email))
		})
	}
}

func TestParse(t *testing.T) {
	for _, r := range All {
		got, err := Parse(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := Parse("Student")
	assert.Error(t, err)
	_, err = Parse("")
	assert.EqualError(t, err, `unknown role "", want one of student, teacher, admin`)
}

func TestNavLinks(t *testing.T) {
	links, err := NavLinks(Student)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/book", links[1].Href)

	links, err = NavLinks(Teacher)
	require.NoError(t, err)
	assert.Equal(t, "Manage Availability", links[1].Label)

	links, err = NavLinks(Admin)
	require.NoError(t, err)
	assert.Empty(t, links)

	_, err = NavLinks(Role("guest"))
	assert.Error(t, err)
}

func TestDashboardKind(t *testing.T) {
	d, err := DashboardKind(Teacher)
	require.NoError(t, err)
	assert.Equal(t, TeacherDashboard, d)

	_, err = DashboardKind(Role(""))
	assert.Error(t, err)
}
