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

// CivicHourStore persists teacher-submitted civic hour claims as one JSON
// blob, most recent first, with the same single-writer model as IssueStore.
type CivicHourStore struct {
	mu   sync.Mutex
	blob Blob
}

func NewCivicHourStore(blob Blob) *CivicHourStore {
	return &CivicHourStore{blob: blob}
}

func (s *CivicHourStore) load(ctx context.Context) ([]models.CivicHour, error) {
	data, err := s.blob.Get(ctx, CivicKey)
	if err != nil {
		return nil, fmt.Errorf("load civic hours: %w", err)
	}
	if data == nil {
		return []models.CivicHour{}, nil
	}
	var hours []models.CivicHour
	if err := json.Unmarshal(data, &hours); err != nil {
		return nil, fmt.Errorf("decode civic hours: %w", err)
	}
	return hours, nil
}

func (s *CivicHourStore) save(ctx context.Context, hours []models.CivicHour) error {
	data, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("encode civic hours: %w", err)
	}
	if err := s.blob.Set(ctx, CivicKey, data); err != nil {
		return fmt.Errorf("save civic hours: %w", err)
	}
	return nil
}

// Create validates the claim, forces it into the pending state and
// computes its reward from the duration. Both image sequences are
// required evidence.
func (s *CivicHourStore) Create(ctx context.Context, draft models.CivicHour) (models.CivicHour, error) {
	switch {
	case draft.Title == "":
		return models.CivicHour{}, fmt.Errorf("title required: %w", ErrInvalidArgument)
	case draft.Description == "":
		return models.CivicHour{}, fmt.Errorf("description required: %w", ErrInvalidArgument)
	case draft.SchoolName == "":
		return models.CivicHour{}, fmt.Errorf("school name required: %w", ErrInvalidArgument)
	case len(draft.Images) == 0:
		return models.CivicHour{}, fmt.Errorf("activity images required: %w", ErrInvalidArgument)
	case len(draft.ProofImages) == 0:
		return models.CivicHour{}, fmt.Errorf("proof images required: %w", ErrInvalidArgument)
	case draft.Duration < 1:
		return models.CivicHour{}, fmt.Errorf("duration must be a positive number of hours: %w", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hours, err := s.load(ctx)
	if err != nil {
		return models.CivicHour{}, err
	}

	now := time.Now().UTC()
	hour := draft
	if hour.ID == "" {
		hour.ID = uuid.NewString()
	}
	if hour.Category == "" {
		hour.Category = models.OtherService
	}
	if hour.Date.IsZero() {
		hour.Date = now
	}
	hour.Status = models.VerificationPending
	hour.RewardPoints = rewards.CivicHourReward(hour.Duration)
	hour.CreatedAt = now
	hour.UpdatedAt = now

	hours = append([]models.CivicHour{hour}, hours...)
	if err := s.save(ctx, hours); err != nil {
		return models.CivicHour{}, err
	}
	return hour, nil
}

// GetAll returns every claim in store order, newest first
func (s *CivicHourStore) GetAll(ctx context.Context) ([]models.CivicHour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Verify moves a pending claim into one of its two terminal states.
// Re-verifying a terminal claim is rejected rather than overwritten.
func (s *CivicHourStore) Verify(ctx context.Context, id string, outcome models.CivicHourStatus, verifierID, verifierName, notes string) (models.CivicHour, error) {
	if outcome != models.Verified && outcome != models.Rejected {
		return models.CivicHour{}, fmt.Errorf("outcome must be verified or rejected: %w", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hours, err := s.load(ctx)
	if err != nil {
		return models.CivicHour{}, err
	}
	for idx := range hours {
		if hours[idx].ID != id {
			continue
		}
		if hours[idx].IsTerminal() {
			return models.CivicHour{}, fmt.Errorf("civic hour %s already %s: %w", id, hours[idx].Status, ErrInvalidState)
		}
		now := time.Now().UTC()
		hours[idx].Status = outcome
		hours[idx].VerifiedByID = verifierID
		hours[idx].VerifiedByName = verifierName
		hours[idx].VerifiedAt = &now
		hours[idx].VerificationNotes = notes
		hours[idx].UpdatedAt = now
		if err := s.save(ctx, hours); err != nil {
			return models.CivicHour{}, err
		}
		return hours[idx], nil
	}
	return models.CivicHour{}, fmt.Errorf("civic hour %s: %w", id, ErrNotFound)
}
