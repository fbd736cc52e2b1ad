// Package session keeps the signed-in identity and role of a client session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"counseling/internal/apperr"
	"counseling/internal/model"
	"counseling/internal/role"
)

const (
	KeyUser = "user"
	KeyRole = "userRole"
)

// State is what the session currently knows. Both fields are nil when signed out.
type State struct {
	User *model.SessionUser `json:"user"`
	Role *role.Role         `json:"role"`
}

// SignedIn reports whether a user is present.
func (s State) SignedIn() bool { return s.User != nil }

// RegisterData is the sign-up form.
type RegisterData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// RegisterResult is returned by Register.
type RegisterResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Provider is the session context object for one client. It is safe for concurrent use.
type Provider struct {
	store Store
	delay time.Duration

	mu    sync.Mutex
	state State
}

// NewProvider binds a provider to store. delay simulates backend latency on mutations.
func NewProvider(store Store, delay time.Duration) *Provider {
	return &Provider{store: store, delay: delay}
}

// Load reads the persisted keys. A missing user means signed out regardless of the role key.
func (p *Provider) Load(ctx context.Context) (State, error) {
	raw, ok, err := p.store.Get(ctx, KeyUser)
	if err != nil {
		return State{}, fmt.Errorf("load session user: %w", err)
	}
	var st State
	if ok {
		var u model.SessionUser
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return State{}, fmt.Errorf("decode session user: %w", err)
		}
		st.User = &u

		rs, ok, err := p.store.Get(ctx, KeyRole)
		if err != nil {
			return State{}, fmt.Errorf("load session role: %w", err)
		}
		if ok {
			if r, err := role.Parse(rs); err == nil {
				st.Role = &r
			}
		}
	}

	p.mu.Lock()
	p.state = st
	p.mu.Unlock()
	return st, nil
}

// Current returns the last loaded or written state without touching the store.
func (p *Provider) Current() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SignIn accepts any credentials and infers the role from the email.
func (p *Provider) SignIn(ctx context.Context, email, password string) (State, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return State{}, apperr.Invalid("Missing information", "Email is required")
	}
	if err := wait(ctx, p.delay); err != nil {
		return State{}, err
	}

	u := model.SessionUser{
		UID:         UserID(email),
		Email:       email,
		DisplayName: localPart(email),
	}
	r := role.Infer(email)

	raw, err := json.Marshal(u)
	if err != nil {
		return State{}, fmt.Errorf("encode session user: %w", err)
	}
	if err := p.store.Set(ctx, KeyUser, string(raw)); err != nil {
		return State{}, fmt.Errorf("store session user: %w", err)
	}
	if err := p.store.Set(ctx, KeyRole, r.String()); err != nil {
		// roll back so Load does not see a user without a role
		_ = p.store.Delete(context.WithoutCancel(ctx), KeyUser)
		return State{}, fmt.Errorf("store session role: %w", err)
	}

	st := State{User: &u, Role: &r}
	p.mu.Lock()
	p.state = st
	p.mu.Unlock()
	return st, nil
}

// Register validates the form and records the chosen role. No user record is written.
func (p *Provider) Register(ctx context.Context, d RegisterData) (RegisterResult, error) {
	if strings.TrimSpace(d.FirstName) == "" || strings.TrimSpace(d.LastName) == "" ||
		strings.TrimSpace(d.Email) == "" || d.Password == "" {
		return RegisterResult{}, apperr.Invalid("Missing information", "Please fill in all fields")
	}
	r, err := role.Parse(d.Role)
	if err != nil {
		return RegisterResult{}, apperr.Invalid("Invalid role", err.Error())
	}
	if err := wait(ctx, p.delay); err != nil {
		return RegisterResult{}, err
	}
	if err := p.store.Set(ctx, KeyRole, r.String()); err != nil {
		return RegisterResult{}, fmt.Errorf("store session role: %w", err)
	}
	return RegisterResult{Success: true, Message: "Registration successful"}, nil
}

// SignOut removes both keys and forgets the in-memory state.
func (p *Provider) SignOut(ctx context.Context) error {
	if err := wait(ctx, p.delay); err != nil {
		return err
	}
	if err := p.store.Delete(ctx, KeyUser, KeyRole); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	p.mu.Lock()
	p.state = State{}
	p.mu.Unlock()
	return nil
}

// UserID derives the stable uid for an email.
func UserID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email))).String()
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
