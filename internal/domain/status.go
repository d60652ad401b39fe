package domain

import (
	"encoding/json"
	"fmt"
)

// UserStatus represents lifecycle states for a directory user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusPending   UserStatus = "pending"
	UserStatusSuspended UserStatus = "suspended"
)

// ParseUserStatus converts a wire token into a UserStatus.
func ParseUserStatus(s string) (UserStatus, error) {
	switch status := UserStatus(s); status {
	case UserStatusActive, UserStatusInactive, UserStatusPending, UserStatusSuspended:
		return status, nil
	}
	return "", fmt.Errorf("invalid user status: %q", s)
}

// String returns the lowercase wire token.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid reports business validity. Suspended is a member of the
// enumeration but not a valid standing: suspended accounts are known,
// not acceptable.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusPending:
		return true
	}
	return false
}

// UnmarshalJSON enforces token membership when decoding.
func (s *UserStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status, err := ParseUserStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}
