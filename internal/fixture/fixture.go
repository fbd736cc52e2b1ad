// Package fixture holds the hardcoded records the portal starts from.
// Every accessor returns a fresh copy so callers may mutate the result.
package fixture

import (
	"time"

	"counseling/internal/model"
	"counseling/internal/role"
)

func Teachers() []model.Teacher {
	return []model.Teacher{
		{
			ID:             "1",
			Name:           "Dr. Jane Smith",
			Department:     "Computer Science",
			Rating:         4.8,
			ReviewCount:    124,
			AvailableDates: []string{"2024-05-15", "2024-05-16", "2024-05-17", "2024-05-18", "2024-05-19"},
			Bio:            "Professor of Computer Science specializing in artificial intelligence and machine learning. Over 15 years of teaching experience.",
		},
		{
			ID:             "2",
			Name:           "Prof. Michael Johnson",
			Department:     "Mathematics",
			Rating:         4.6,
			ReviewCount:    98,
			AvailableDates: []string{"2024-05-14", "2024-05-15", "2024-05-18", "2024-05-20"},
			Bio:            "Mathematics professor with expertise in calculus, linear algebra, and statistics. Known for clear explanations of complex concepts.",
		},
		{
			ID:             "3",
			Name:           "Dr. Sarah Williams",
			Department:     "Physics",
			Rating:         4.9,
			ReviewCount:    156,
			AvailableDates: []string{"2024-05-16", "2024-05-17", "2024-05-19", "2024-05-21"},
			Bio:            "Physics professor specializing in quantum mechanics and theoretical physics. Published researcher with industry experience.",
		},
		{
			ID:             "4",
			Name:           "Prof. Robert Chen",
			Department:     "Business",
			Rating:         4.7,
			ReviewCount:    112,
			AvailableDates: []string{"2024-05-14", "2024-05-16", "2024-05-18", "2024-05-20"},
			Bio:            "Business professor with MBA and PhD in Management. Former executive with expertise in entrepreneurship and marketing.",
		},
		{
			ID:             "5",
			Name:           "Dr. Emily Davis",
			Department:     "Psychology",
			Rating:         4.8,
			ReviewCount:    135,
			AvailableDates: []string{"2024-05-15", "2024-05-17", "2024-05-19", "2024-05-21"},
			Bio:            "Clinical psychologist with research focus on cognitive behavioral therapy and student mental health.",
		},
	}
}

func Users() []model.User {
	return []model.User{
		{ID: "user1", Name: "Alex Johnson", Email: "alex.johnson@university.edu", Role: role.Student, Department: "Computer Science", Status: model.UserActive, LastActive: ts("2024-04-25T10:30:00Z")},
		{ID: "user2", Name: "Prof. Sarah Williams", Email: "s.williams@university.edu", Role: role.Teacher, Department: "Computer Science", Status: model.UserActive, LastActive: ts("2024-04-25T09:45:00Z")},
		{ID: "user3", Name: "Michael Brown", Email: "m.brown@university.edu", Role: role.Student, Department: "Engineering", Status: model.UserInactive, LastActive: ts("2024-04-20T14:15:00Z")},
		{ID: "user4", Name: "Dr. Robert Chen", Email: "r.chen@university.edu", Role: role.Teacher, Department: "Data Science", Status: model.UserActive, LastActive: ts("2024-04-24T16:20:00Z")},
		{ID: "user5", Name: "Emily Davis", Email: "e.davis@university.edu", Role: role.Student, Department: "Business", Status: model.UserActive, LastActive: ts("2024-04-23T11:10:00Z")},
		{ID: "user6", Name: "James Wilson", Email: "j.wilson@university.edu", Role: role.Teacher, Department: "Psychology", Status: model.UserActive, LastActive: ts("2024-04-24T15:00:00Z")},
		{ID: "user7", Name: "Lisa Garcia", Email: "l.garcia@university.edu", Role: role.Student, Department: "Arts", Status: model.UserActive, LastActive: ts("2024-04-22T09:30:00Z")},
		{ID: "user8", Name: "Admin User", Email: "admin@university.edu", Role: role.Admin, Department: "IT Services", Status: model.UserActive, LastActive: ts("2024-04-25T08:45:00Z")},
	}
}

func Appointments() []model.Appointment {
	return []model.Appointment{
		{ID: "appt1", StudentID: "SID12345", StudentName: "Alex Johnson", TeacherName: "Prof. Sarah Williams", Date: "2024-04-25", Time: "10:00 AM - 11:00 AM", Status: model.StatusCompleted, Subject: "Project Discussion", Course: "Computer Science 101", Notes: "Discussed project requirements and timeline"},
		{ID: "appt2", StudentID: "SID67890", StudentName: "Maria Garcia", TeacherName: "Dr. Robert Chen", Date: "2024-04-26", Time: "2:00 PM - 3:00 PM", Status: model.StatusConfirmed, Subject: "Thesis Review", Course: "Advanced Research Methods", Notes: "Initial review of thesis outline and research methodology"},
		{ID: "appt3", StudentID: "SID54321", StudentName: "John Davis", TeacherName: "Prof. James Wilson", Date: "2024-04-29", Time: "11:00 AM - 12:00 PM", Status: model.StatusConfirmed, Subject: "Career Guidance", Course: "Professional Development", Notes: "Discuss career options and industry connections"},
		{ID: "appt4", StudentID: "SID98765", StudentName: "Sarah Wilson", TeacherName: "Prof. Sarah Williams", Date: "2024-05-02", Time: "9:00 AM - 10:00 AM", Status: model.StatusPending, Subject: "Assignment Help", Course: "Data Structures", Notes: "Help with complex algorithm implementation"},
		{ID: "appt5", StudentID: "SID24680", StudentName: "Michael Brown", TeacherName: "Dr. Robert Chen", Date: "2024-05-03", Time: "1:00 PM - 2:00 PM", Status: model.StatusCancelled, Subject: "Research Discussion", Course: "Advanced Topics in AI", Notes: "Cancelled due to scheduling conflict"},
		{ID: "appt6", StudentID: "SID13579", StudentName: "Emily Taylor", TeacherName: "Prof. James Wilson", Date: "2024-05-05", Time: "3:00 PM - 4:00 PM", Status: model.StatusConfirmed, Subject: "Project Feedback", Course: "Software Engineering", Notes: "Provide feedback on project progress and next steps"},
		{ID: "appt7", StudentID: "SID97531", StudentName: "David Lee", TeacherName: "Prof. Sarah Williams", Date: "2024-05-06", Time: "10:00 AM - 11:00 AM", Status: model.StatusConfirmed, Subject: "Exam Preparation", Course: "Computer Science 101", Notes: "Review for upcoming final exam"},
		{ID: "appt8", StudentID: "SID86420", StudentName: "Jennifer Kim", TeacherName: "Dr. Robert Chen", Date: "2024-05-07", Time: "2:00 PM - 3:00 PM", Status: model.StatusPending, Subject: "Research Proposal", Course: "Data Science", Notes: "Discuss research proposal and methodology"},
	}
}

// TimeSlots are the availability records a teacher's editor opens with.
func TimeSlots(teacherID string) []model.TimeSlot {
	return []model.TimeSlot{
		{ID: "1", TeacherID: teacherID, Date: "2024-05-15", StartTime: "09:00", EndTime: "12:00"},
		{ID: "2", TeacherID: teacherID, Date: "2024-05-16", StartTime: "14:00", EndTime: "17:00"},
		{ID: "3", TeacherID: teacherID, Date: "2024-05-17", StartTime: "10:00", EndTime: "15:00"},
	}
}

// BaseTimes is the full daily set of bookable start times before availability is applied.
var BaseTimes = []string{"09:00 AM", "10:00 AM", "11:00 AM", "01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM"}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// ActivityEntry is a seed row of the admin activity feed.
type ActivityEntry struct {
	ID        string
	Type      string
	User      string
	UserType  string
	Timestamp time.Time
	Details   string
}

// Activity is the feed shown before any live events arrive, newest first.
func Activity() []ActivityEntry {
	return []ActivityEntry{
		{ID: "act1", Type: "user_registered", User: "Emily Johnson", UserType: "Student", Timestamp: ts("2024-04-25T10:30:00Z"), Details: "New student registration"},
		{ID: "act2", Type: "appointment_created", User: "Alex Davis", UserType: "Student", Timestamp: ts("2024-04-25T09:45:00Z"), Details: "Booked appointment with Prof. Williams"},
		{ID: "act3", Type: "appointment_cancelled", User: "Prof. Sarah Miller", UserType: "Teacher", Timestamp: ts("2024-04-25T09:15:00Z"), Details: "Cancelled appointment with Michael Brown"},
		{ID: "act4", Type: "user_registered", User: "Dr. Robert Chen", UserType: "Teacher", Timestamp: ts("2024-04-24T16:20:00Z"), Details: "New teacher registration"},
		{ID: "act5", Type: "appointment_completed", User: "Prof. James Wilson", UserType: "Teacher", Timestamp: ts("2024-04-24T15:00:00Z"), Details: "Completed appointment with Lisa Garcia"},
	}
}
