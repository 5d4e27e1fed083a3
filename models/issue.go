package models

import (
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	Infrastructure  IssueCategory = "infrastructure"
	Sanitation      IssueCategory = "sanitation"
	WaterSupply     IssueCategory = "water_supply"
	Electricity     IssueCategory = "electricity"
	Roads           IssueCategory = "roads"
	Parks           IssueCategory = "parks"
	Education       IssueCategory = "education"
	Healthcare      IssueCategory = "healthcare"
	WasteManagement IssueCategory = "waste_management"
	Security        IssueCategory = "security"
	Other           IssueCategory = "other"
)

// IssueStatus enum
type IssueStatus string

const (
	NotCompleted IssueStatus = "not_completed"
	InProgress   IssueStatus = "in_progress"
	Completed    IssueStatus = "completed"
)

// IssuePriority enum, ordered low < medium < high < critical
type IssuePriority string

const (
	Low      IssuePriority = "low"
	Medium   IssuePriority = "medium"
	High     IssuePriority = "high"
	Critical IssuePriority = "critical"
)

// ValidCategories lists every accepted issue category
var ValidCategories = map[IssueCategory]bool{
	Infrastructure: true, Sanitation: true, WaterSupply: true,
	Electricity: true, Roads: true, Parks: true, Education: true,
	Healthcare: true, WasteManagement: true, Security: true, Other: true,
}

// ValidPriorities lists every accepted issue priority
var ValidPriorities = map[IssuePriority]bool{
	Low: true, Medium: true, High: true, Critical: true,
}

// Coordinates is a lat/lng pair; defaults to {0,0} when capture fails
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location holds the reported address and its coordinates
type Location struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	Ward        string      `json:"ward,omitempty"`
	District    string      `json:"district,omitempty"`
}

// Comment belongs to exactly one issue and is immutable once created
type Comment struct {
	ID         string    `json:"id"`
	IssueID    string    `json:"issueId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	AuthorRole string    `json:"authorRole"`
	Content    string    `json:"content"`
	IsOfficial bool      `json:"isOfficial"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Issue represents a civic issue reported by a user
type Issue struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    IssueCategory `json:"category"`
	Priority    IssuePriority `json:"priority"`
	Status      IssueStatus   `json:"status"`
	Location    Location      `json:"location"`

	// Proof-of-problem and proof-of-fix image references, populated
	// independently; the backend never inspects image bytes.
	Images          []string `json:"images"`
	CompletionProof []string `json:"completionProof,omitempty"`

	ReporterID           string `json:"reporterId"`
	ReporterName         string `json:"reporterName"`
	AssignedOfficialID   string `json:"assignedOfficialId,omitempty"`
	AssignedOfficialName string `json:"assignedOfficialName,omitempty"`
	CompletedByID        string `json:"completedById,omitempty"`
	CompletedByName      string `json:"completedByName,omitempty"`
	CompletedByRole      string `json:"completedByRole,omitempty"`

	Comments  []Comment `json:"comments"`
	Tags      []string  `json:"tags"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	IsPublic  bool      `json:"isPublic"`

	// RewardPoints is computed at submission, CompletionReward at
	// completion; the two use different base tables.
	RewardPoints     int `json:"rewardPoints"`
	CompletionReward int `json:"completionReward,omitempty"`

	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
	ResolvedAt              *time.Time `json:"resolvedAt,omitempty"`
	CompletedAt             *time.Time `json:"completedAt,omitempty"`
	EstimatedResolutionDate *time.Time `json:"estimatedResolutionDate,omitempty"`
}

func (i *Issue) IsCompleted() bool {
	return i.Status == Completed
}

func (i *Issue) IsInProgress() bool {
	return i.Status == InProgress
}

func (i *Issue) HasCoordinates() bool {
	return i.Location.Coordinates.Lat != 0 || i.Location.Coordinates.Lng != 0
}

// PriorityScore maps the priority enum onto its ordering
func (i *Issue) PriorityScore() int {
	switch i.Priority {
	case Low:
		return 1
	case Medium:
		return 2
	case High:
		return 3
	case Critical:
		return 4
	default:
		return 1
	}
}

func (i *Issue) OfficialComments() []Comment {
	var official []Comment
	for _, comment := range i.Comments {
		if comment.IsOfficial {
			official = append(official, comment)
		}
	}
	return official
}
