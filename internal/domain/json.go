package domain

import (
	"encoding/json"
	"fmt"
)

// ExportUsersJSON renders the collection as a pretty-printed JSON array.
func ExportUsersJSON(users []*User) (string, error) {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return "", &StorageError{Err: fmt.Errorf("marshal users: %w", err)}
	}
	return string(data), nil
}

// UserFromJSON parses a single user record. Malformed JSON and unknown
// status tokens both fail.
func UserFromJSON(data []byte) (*User, error) {
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, &StorageError{Err: fmt.Errorf("unmarshal user: %w", err)}
	}
	return &user, nil
}
