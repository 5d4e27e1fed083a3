package models

import (
	"time"
)

// CivicHourCategory enum
type CivicHourCategory string

const (
	CommunityService CivicHourCategory = "community_service"
	Environmental    CivicHourCategory = "environmental"
	EducationService CivicHourCategory = "education"
	Health           CivicHourCategory = "health"
	OtherService     CivicHourCategory = "other"
)

// CivicHourStatus enum; verified and rejected are terminal
type CivicHourStatus string

const (
	VerificationPending CivicHourStatus = "pending"
	Verified            CivicHourStatus = "verified"
	Rejected            CivicHourStatus = "rejected"
)

// ValidCivicHourCategories lists every accepted civic hour category
var ValidCivicHourCategories = map[CivicHourCategory]bool{
	CommunityService: true, Environmental: true, EducationService: true,
	Health: true, OtherService: true,
}

// CivicHour is a teacher-submitted community-service activity claim,
// verified by an official before any points are awarded
type CivicHour struct {
	ID          string            `json:"id"`
	TeacherID   string            `json:"teacherId"`
	TeacherName string            `json:"teacherName"`
	SchoolName  string            `json:"schoolName"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    CivicHourCategory `json:"category"`
	Date        time.Time         `json:"date"`
	Duration    int               `json:"duration"` // whole hours

	// Activity-in-progress and completion-proof image references,
	// both required non-empty at submission.
	Images      []string `json:"images"`
	ProofImages []string `json:"proofImages"`

	Status            CivicHourStatus `json:"status"`
	VerifiedByID      string          `json:"verifiedById,omitempty"`
	VerifiedByName    string          `json:"verifiedByName,omitempty"`
	VerifiedAt        *time.Time      `json:"verifiedAt,omitempty"`
	VerificationNotes string          `json:"verificationNotes,omitempty"`

	RewardPoints int `json:"rewardPoints"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsTerminal reports whether the claim has already been verified or rejected
func (ch *CivicHour) IsTerminal() bool {
	return ch.Status == Verified || ch.Status == Rejected
}
