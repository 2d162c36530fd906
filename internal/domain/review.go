package domain

import (
	"time"
)

// Moderation status constants. Every review starts as pending and may move
// freely between the three states; rejected reviews can be re-approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Review represents one submitted rating record with a moderation status.
// Timestamp is set once at creation and never changes; reviews are never
// physically deleted.
type Review struct {
	ID             string    `json:"id"`
	SupportRating  int       `json:"support_rating"`
	QualityRating  int       `json:"quality_rating"`
	FeaturesRating int       `json:"features_rating"`
	ValueRating    int       `json:"value_rating"`
	Comment        string    `json:"comment"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
}

// ValidStatuses returns the set of valid moderation statuses.
func ValidStatuses() []string {
	return []string{
		StatusPending,
		StatusApproved,
		StatusRejected,
	}
}

// IsValidStatus checks whether the given status string is a recognized
// moderation status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
