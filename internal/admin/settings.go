package admin

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"counseling/internal/apperr"
)

type GeneralSettings struct {
	SiteName                   string `json:"siteName" validate:"required"`
	SiteDescription            string `json:"siteDescription"`
	ContactEmail               string `json:"contactEmail" validate:"required,email"`
	MaxAppointmentsPerDay      int    `json:"maxAppointmentsPerDay" validate:"min=1,max=100"`
	DefaultAppointmentDuration int    `json:"defaultAppointmentDuration" validate:"min=15,max=240"`
}

type NotificationSettings struct {
	EmailNotifications   bool `json:"emailNotifications"`
	SMSNotifications     bool `json:"smsNotifications"`
	AppointmentReminders bool `json:"appointmentReminders"`
	ReminderTime         int  `json:"reminderTime" validate:"min=1,max=168"`
	AdminAlerts          bool `json:"adminAlerts"`
}

type SecuritySettings struct {
	TwoFactorAuth  bool `json:"twoFactorAuth"`
	PasswordExpiry int  `json:"passwordExpiry" validate:"min=0,max=365"`
	SessionTimeout int  `json:"sessionTimeout" validate:"min=5,max=1440"`
	LoginAttempts  int  `json:"loginAttempts" validate:"min=1,max=20"`
}

type IntegrationSettings struct {
	GoogleCalendar  bool   `json:"googleCalendar"`
	OutlookCalendar bool   `json:"outlookCalendar"`
	SMSProvider     string `json:"smsProvider" validate:"oneof=twilio nexmo messagebird none"`
}

// Settings is the whole system configuration edited on the admin settings page.
type Settings struct {
	General       GeneralSettings      `json:"general"`
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
	Integrations  IntegrationSettings  `json:"integrations"`
}

// DefaultSettings are the values a reset restores.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			SiteName:                   "UniSchedule",
			SiteDescription:            "University Appointment Booking System",
			ContactEmail:               "support@unischedule.edu",
			MaxAppointmentsPerDay:      10,
			DefaultAppointmentDuration: 60,
		},
		Notifications: NotificationSettings{
			EmailNotifications:   true,
			AppointmentReminders: true,
			ReminderTime:         24,
			AdminAlerts:          true,
		},
		Security: SecuritySettings{
			PasswordExpiry: 90,
			SessionTimeout: 30,
			LoginAttempts:  5,
		},
		Integrations: IntegrationSettings{
			GoogleCalendar: true,
			SMSProvider:    "twilio",
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field constraint and reports all failures in one ValidationError.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Settings.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", field, fe.Tag()))
		}
	}
	return apperr.Invalid("Invalid settings", strings.Join(msgs, "; "))
}

// SettingsStore holds the current settings in memory.
type SettingsStore struct {
	mu  sync.RWMutex
	cur Settings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{cur: DefaultSettings()}
}

func (s *SettingsStore) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update replaces the settings when next is valid.
func (s *SettingsStore) Update(next Settings) (Settings, error) {
	if err := next.Validate(); err != nil {
		return Settings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = next
	return s.cur, nil
}

// Reset restores DefaultSettings.
func (s *SettingsStore) Reset() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = DefaultSettings()
	return s.cur
}
