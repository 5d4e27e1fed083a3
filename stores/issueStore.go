package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"civicreport-be/models"
	"civicreport-be/rewards"

	"github.com/google/uuid"
)

// IssueStore persists the issue collection as one JSON blob, most recent
// first. Every operation is a read-modify-write of the whole collection;
// the mutex serializes writers within this process, concurrent writers in
// another process remain last-writer-wins.
type IssueStore struct {
	mu   sync.Mutex
	blob Blob
}

func NewIssueStore(blob Blob) *IssueStore {
	return &IssueStore{blob: blob}
}

func (s *IssueStore) load(ctx context.Context) ([]models.Issue, error) {
	data, err := s.blob.Get(ctx, IssuesKey)
	if err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}
	if data == nil {
		return []models.Issue{}, nil
	}
	var issues []models.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

func (s *IssueStore) save(ctx context.Context, issues []models.Issue) error {
	data, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("encode issues: %w", err)
	}
	if err := s.blob.Set(ctx, IssuesKey, data); err != nil {
		return fmt.Errorf("save issues: %w", err)
	}
	return nil
}

// Create fills the draft's missing fields with defaults, computes the
// submission reward and prepends the issue to the collection.
func (s *IssueStore) Create(ctx context.Context, draft models.Issue) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issues, err := s.load(ctx)
	if err != nil {
		return models.Issue{}, err
	}

	now := time.Now().UTC()
	issue := draft
	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}
	if issue.Title == "" {
		issue.Title = "Issue"
	}
	if issue.Category == "" {
		issue.Category = models.Other
	}
	if issue.Priority == "" {
		issue.Priority = models.Low
	}
	if issue.Status == "" {
		issue.Status = models.NotCompleted
	}
	if issue.Location.Address == "" {
		issue.Location.Address = "Unknown"
	}
	if issue.Images == nil {
		issue.Images = []string{}
	}
	if issue.Comments == nil {
		issue.Comments = []models.Comment{}
	}
	if issue.Tags == nil {
		issue.Tags = []string{}
	}
	issue.RewardPoints = rewards.SubmissionRewardWithBonus(issue.Category, issue.Status, len(issue.Images))
	issue.CreatedAt = now
	issue.UpdatedAt = now

	issues = append([]models.Issue{issue}, issues...)
	if err := s.save(ctx, issues); err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

// GetAll returns every issue in store order, newest first
func (s *IssueStore) GetAll(ctx context.Context) ([]models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *IssueStore) GetByID(ctx context.Context, id string) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issues, err := s.load(ctx)
	if err != nil {
		return models.Issue{}, err
	}
	for _, issue := range issues {
		if issue.ID == id {
			return issue, nil
		}
	}
	return models.Issue{}, fmt.Errorf("issue %s: %w", id, ErrNotFound)
}

// mutate loads the collection, applies fn to the issue with the given id
// and saves the result. fn may fail to veto the write.
func (s *IssueStore) mutate(ctx context.Context, id string, fn func(*models.Issue) error) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issues, err := s.load(ctx)
	if err != nil {
		return models.Issue{}, err
	}
	for idx := range issues {
		if issues[idx].ID != id {
			continue
		}
		if err := fn(&issues[idx]); err != nil {
			return models.Issue{}, err
		}
		issues[idx].UpdatedAt = time.Now().UTC()
		if err := s.save(ctx, issues); err != nil {
			return models.Issue{}, err
		}
		return issues[idx], nil
	}
	return models.Issue{}, fmt.Errorf("issue %s: %w", id, ErrNotFound)
}

// UpdateStatus replaces the status of an open issue. Completion always
// routes through Complete so the completion fields are set together.
func (s *IssueStore) UpdateStatus(ctx context.Context, id string, status models.IssueStatus) (models.Issue, error) {
	return s.mutate(ctx, id, func(issue *models.Issue) error {
		if status == models.Completed {
			return fmt.Errorf("status %s must go through Complete: %w", status, ErrInvalidArgument)
		}
		if issue.IsCompleted() {
			return fmt.Errorf("issue %s is completed: %w", id, ErrInvalidState)
		}
		issue.Status = status
		return nil
	})
}

func (s *IssueStore) AssignOfficial(ctx context.Context, id, officialID, officialName string) (models.Issue, error) {
	return s.mutate(ctx, id, func(issue *models.Issue) error {
		issue.AssignedOfficialID = officialID
		issue.AssignedOfficialName = officialName
		return nil
	})
}

// AddComment appends an immutable comment and bumps the parent's
// updatedAt stamp
func (s *IssueStore) AddComment(ctx context.Context, issueID string, draft models.Comment) (models.Issue, error) {
	if draft.Content == "" {
		return models.Issue{}, fmt.Errorf("comment content required: %w", ErrInvalidArgument)
	}
	return s.mutate(ctx, issueID, func(issue *models.Issue) error {
		comment := draft
		comment.ID = uuid.NewString()
		comment.IssueID = issueID
		comment.CreatedAt = time.Now().UTC()
		issue.Comments = append(issue.Comments, comment)
		return nil
	})
}

// Vote increments exactly one of the two counters. There is no per-voter
// tracking; repeated calls keep incrementing.
func (s *IssueStore) Vote(ctx context.Context, id string, direction int) (models.Issue, error) {
	if direction != 1 && direction != -1 {
		return models.Issue{}, fmt.Errorf("vote direction must be +1 or -1: %w", ErrInvalidArgument)
	}
	return s.mutate(ctx, id, func(issue *models.Issue) error {
		if direction == 1 {
			issue.Upvotes++
		} else {
			issue.Downvotes++
		}
		return nil
	})
}

// Complete transitions an issue to its terminal state. Proof images are
// required, and status, completion stamps and the completion reward are
// set together.
func (s *IssueStore) Complete(ctx context.Context, id string, proofImages []string, completedByID, completedByName, completedByRole string) (models.Issue, error) {
	if len(proofImages) == 0 {
		return models.Issue{}, fmt.Errorf("completion proof required: %w", ErrInvalidArgument)
	}
	return s.mutate(ctx, id, func(issue *models.Issue) error {
		// An issue created with a completed status but no completion stamps
		// still needs its first Complete call; only re-completion is refused.
		if issue.CompletedAt != nil {
			return fmt.Errorf("issue %s already completed: %w", id, ErrInvalidState)
		}
		now := time.Now().UTC()
		issue.Status = models.Completed
		issue.CompletionProof = proofImages
		issue.CompletedAt = &now
		issue.CompletedByID = completedByID
		issue.CompletedByName = completedByName
		issue.CompletedByRole = completedByRole
		issue.CompletionReward = rewards.CompletionReward(issue.Category, issue.Priority)
		return nil
	})
}
