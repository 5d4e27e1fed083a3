package stores

import (
	"context"
	"testing"

	"civicreport-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCivicHourDraft() models.CivicHour {
	return models.CivicHour{
		TeacherID:   "t1",
		TeacherName: "Ms. Iyer",
		SchoolName:  "Green Valley School",
		Title:       "Community Cleanup Drive",
		Description: "Students cleaned the riverside park",
		Category:    models.CommunityService,
		Duration:    3,
		Images:      []string{"img://activity"},
		ProofImages: []string{"img://proof"},
	}
}

func TestCivicHourCreate(t *testing.T) {
	store := NewCivicHourStore(NewMemoryBlob())
	ctx := context.Background()

	hour, err := store.Create(ctx, validCivicHourDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, hour.ID)
	assert.Equal(t, models.VerificationPending, hour.Status)
	assert.Equal(t, 30, hour.RewardPoints) // 3 hours * 10
	assert.False(t, hour.Date.IsZero())
	assert.Nil(t, hour.VerifiedAt)
}

func TestCivicHourCreateValidation(t *testing.T) {
	store := NewCivicHourStore(NewMemoryBlob())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.CivicHour)
	}{
		{"missing title", func(ch *models.CivicHour) { ch.Title = "" }},
		{"missing description", func(ch *models.CivicHour) { ch.Description = "" }},
		{"missing school", func(ch *models.CivicHour) { ch.SchoolName = "" }},
		{"no activity images", func(ch *models.CivicHour) { ch.Images = nil }},
		{"no proof images", func(ch *models.CivicHour) { ch.ProofImages = []string{} }},
		{"zero duration", func(ch *models.CivicHour) { ch.Duration = 0 }},
		{"negative duration", func(ch *models.CivicHour) { ch.Duration = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validCivicHourDraft()
			tt.mutate(&draft)
			_, err := store.Create(ctx, draft)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCivicHourNewestFirst(t *testing.T) {
	store := NewCivicHourStore(NewMemoryBlob())
	ctx := context.Background()

	first, err := store.Create(ctx, validCivicHourDraft())
	require.NoError(t, err)
	second, err := store.Create(ctx, validCivicHourDraft())
	require.NoError(t, err)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestVerifyTerminalStates(t *testing.T) {
	store := NewCivicHourStore(NewMemoryBlob())
	ctx := context.Background()

	hour, err := store.Create(ctx, validCivicHourDraft())
	require.NoError(t, err)

	rejected, err := store.Verify(ctx, hour.ID, models.Rejected, "o1", "Official", "blurry photos")
	require.NoError(t, err)

	// Rejection stamps the verification fields but never touches the
	// reward figure
	assert.Equal(t, models.Rejected, rejected.Status)
	assert.Equal(t, hour.RewardPoints, rejected.RewardPoints)
	require.NotNil(t, rejected.VerifiedAt)
	assert.Equal(t, "o1", rejected.VerifiedByID)
	assert.Equal(t, "blurry photos", rejected.VerificationNotes)

	// Terminal records stay terminal
	_, err = store.Verify(ctx, hour.ID, models.Verified, "o1", "Official", "")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestVerifyArgumentChecks(t *testing.T) {
	store := NewCivicHourStore(NewMemoryBlob())
	ctx := context.Background()

	_, err := store.Verify(ctx, "missing", models.Verified, "o1", "Official", "")
	require.ErrorIs(t, err, ErrNotFound)

	hour, err := store.Create(ctx, validCivicHourDraft())
	require.NoError(t, err)

	_, err = store.Verify(ctx, hour.ID, models.VerificationPending, "o1", "Official", "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}
