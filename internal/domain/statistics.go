package domain

import "fmt"

// UserStatistics is a single-pass aggregate over a user collection.
type UserStatistics struct {
	Total             int     `json:"total"`
	Active            int     `json:"active"`
	Inactive          int     `json:"inactive"`
	Pending           int     `json:"pending"`
	Suspended         int     `json:"suspended"`
	AverageDaysActive float64 `json:"average_days_active"`
}

// FilterUsersByStatus returns the users whose status matches, in input
// order. The result shares the input's pointers; nothing is copied.
func FilterUsersByStatus(users []*User, status UserStatus) []*User {
	var filtered []*User
	for _, user := range users {
		if user.Status == status {
			filtered = append(filtered, user)
		}
	}
	return filtered
}

// ComputeUserStatistics tallies per-status counts and the mean of
// DaysActive in one pass. An empty input yields all zeros with an average
// of 0.0, never a division by zero.
func ComputeUserStatistics(users []*User) UserStatistics {
	stats := UserStatistics{Total: len(users)}
	if len(users) == 0 {
		return stats
	}

	totalDays := 0
	for _, user := range users {
		switch user.Status {
		case UserStatusActive:
			stats.Active++
		case UserStatusInactive:
			stats.Inactive++
		case UserStatusPending:
			stats.Pending++
		case UserStatusSuspended:
			stats.Suspended++
		}
		totalDays += user.DaysActive()
	}

	stats.AverageDaysActive = float64(totalDays) / float64(len(users))
	return stats
}

func (s UserStatistics) String() string {
	return fmt.Sprintf("UserStats(total=%d, active=%d, inactive=%d, pending=%d, suspended=%d, avg_days=%.2f)",
		s.Total, s.Active, s.Inactive, s.Pending, s.Suspended, s.AverageDaysActive)
}
