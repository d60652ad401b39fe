package domain

import (
	"encoding/json"
	"testing"
)

func TestParseUserStatus(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    UserStatus
		wantErr bool
	}{
		{"active", "active", UserStatusActive, false},
		{"inactive", "inactive", UserStatusInactive, false},
		{"pending", "pending", UserStatusPending, false},
		{"suspended", "suspended", UserStatusSuspended, false},
		{"unknown token", "archived", "", true},
		{"wrong case", "Active", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUserStatus(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUserStatus(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseUserStatus(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestUserStatusIsValid(t *testing.T) {
	tests := []struct {
		status UserStatus
		want   bool
	}{
		{UserStatusActive, true},
		{UserStatusInactive, true},
		{UserStatusPending, true},
		{UserStatusSuspended, false},
		{UserStatus("archived"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestUserStatusJSON(t *testing.T) {
	data, err := json.Marshal(UserStatusPending)
	if err != nil {
		t.Fatalf("marshal status: %v", err)
	}
	if string(data) != `"pending"` {
		t.Errorf("marshal = %s, want %q", data, `"pending"`)
	}

	var status UserStatus
	if err := json.Unmarshal([]byte(`"suspended"`), &status); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if status != UserStatusSuspended {
		t.Errorf("unmarshal = %q, want %q", status, UserStatusSuspended)
	}

	if err := json.Unmarshal([]byte(`"deleted"`), &status); err == nil {
		t.Error("expected error for unknown token, got nil")
	}
	if err := json.Unmarshal([]byte(`42`), &status); err == nil {
		t.Error("expected error for non-string token, got nil")
	}
}
