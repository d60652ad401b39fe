package domain

import (
	"fmt"
	"strings"
	"time"
)

// User is the domain model for a directory user. The struct doubles as the
// wire record: the directory API and the JSON helpers exchange exactly this
// shape.
type User struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Status    UserStatus     `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	Metadata  map[string]any `json:"metadata"`
}

// NewUser constructs a user with status Active, an empty metadata map and
// the creation timestamp set to now. The email check runs only here; fields
// mutated afterwards are not re-validated.
func NewUser(id, name, email string) (*User, error) {
	if !isValidEmail(email) {
		return nil, &InvalidEmailError{Email: email}
	}
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Status:    UserStatusActive,
		CreatedAt: time.Now().UTC(),
		Metadata:  make(map[string]any),
	}, nil
}

// isValidEmail requires both '@' and '.' to be present, nothing more.
// "a@b." passes; the permissiveness is intentional.
func isValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// IsActive reports whether the user status is Active.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// DisplayName returns the name, falling back to the email when the name is
// empty.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// DaysActive returns whole days elapsed since CreatedAt.
func (u *User) DaysActive() int {
	return int(time.Since(u.CreatedAt).Hours() / 24)
}

// WithStatus returns an independent copy with the status replaced. The
// receiver is left untouched.
func (u *User) WithStatus(status UserStatus) *User {
	updated := u.Clone()
	updated.Status = status
	return updated
}

// AddMetadata inserts or overwrites a metadata key in place.
func (u *User) AddMetadata(key string, value any) {
	if u.Metadata == nil {
		u.Metadata = make(map[string]any)
	}
	u.Metadata[key] = value
}

// GetMetadata looks up a metadata key.
func (u *User) GetMetadata(key string) (any, bool) {
	value, ok := u.Metadata[key]
	return value, ok
}

// Validate checks identifier, name and email format.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyUserID
	}
	if u.Name == "" {
		return ErrEmptyUserName
	}
	if !isValidEmail(u.Email) {
		return &InvalidEmailError{Email: u.Email}
	}
	return nil
}

// AgeCategory classifies the account by days active: New up to 30 days,
// Regular up to 365, Veteran beyond.
func (u *User) AgeCategory() string {
	days := u.DaysActive()
	switch {
	case days <= 30:
		return "New"
	case days <= 365:
		return "Regular"
	default:
		return "Veteran"
	}
}

// IsExpired reports a stale account: inactive for more than a year.
func (u *User) IsExpired() bool {
	return u.DaysActive() > 365 && u.Status == UserStatusInactive
}

// Clone returns a deep copy. Metadata is copied recursively so the clone
// never aliases the receiver.
func (u *User) Clone() *User {
	cloned := *u
	cloned.Metadata = cloneMetadata(u.Metadata)
	return &cloned
}

func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies the JSON-shaped containers metadata may hold.
// Scalars copy by assignment.
func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return cloneMetadata(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return typed
	}
}

func (u *User) String() string {
	return fmt.Sprintf("User(id=%s, name=%s, email=%s, status=%s)", u.ID, u.Name, u.Email, u.Status)
}
