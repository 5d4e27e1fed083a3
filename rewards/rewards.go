// Package rewards holds the point policy tables for issue reporting,
// issue completion, and civic hour claims. The submission and completion
// tables are intentionally distinct: resolving an issue is worth more
// than reporting one.
package rewards

import (
	"math"

	"civicreport-be/models"
)

// Base points awarded when an issue is first reported
var submissionBase = map[models.IssueCategory]int{
	models.Sanitation:      10,
	models.WasteManagement: 12,
	models.WaterSupply:     14,
	models.Electricity:     14,
	models.Roads:           16,
	models.Infrastructure:  15,
	models.Parks:           8,
	models.Education:       9,
	models.Healthcare:      18,
	models.Security:        20,
}

// Base points awarded when an issue is completed, before the
// priority multiplier
var completionBase = map[models.IssueCategory]int{
	models.Sanitation:      15,
	models.WasteManagement: 18,
	models.WaterSupply:     20,
	models.Electricity:     20,
	models.Roads:           25,
	models.Infrastructure:  22,
	models.Parks:           12,
	models.Education:       15,
	models.Healthcare:      30,
	models.Security:        35,
}

const (
	submissionDefault = 5
	completionDefault = 10

	// Flat bonus for reporting an issue that is already fixed,
	// with at least one photo attached
	completedWithPhotoBonus = 10

	pointsPerCivicHour = 10
)

// SubmissionReward returns the points earned for reporting an issue.
// Unknown categories fall back to the lowest tier; it never fails.
func SubmissionReward(category models.IssueCategory) int {
	if base, ok := submissionBase[category]; ok {
		return base
	}
	return submissionDefault
}

// SubmissionRewardWithBonus adds the flat completed-with-photo bonus on
// top of the category base when the issue arrives already completed and
// carries at least one image.
func SubmissionRewardWithBonus(category models.IssueCategory, status models.IssueStatus, imageCount int) int {
	points := SubmissionReward(category)
	if status == models.Completed && imageCount > 0 {
		points += completedWithPhotoBonus
	}
	return points
}

// CompletionReward returns the points earned for resolving an issue:
// category base times priority multiplier, rounded to nearest integer.
// Unknown categories and priorities fall back to the lowest tier.
func CompletionReward(category models.IssueCategory, priority models.IssuePriority) int {
	base, ok := completionBase[category]
	if !ok {
		base = completionDefault
	}
	return int(math.Round(float64(base) * priorityMultiplier(priority)))
}

// CivicHourReward returns the points for a verified civic hour claim:
// a flat rate per hour, no category weighting.
func CivicHourReward(durationHours int) int {
	return durationHours * pointsPerCivicHour
}

func priorityMultiplier(priority models.IssuePriority) float64 {
	switch priority {
	case models.Critical:
		return 1.5
	case models.High:
		return 1.3
	case models.Medium:
		return 1.1
	case models.Low:
		return 1.0
	default:
		return 1.0
	}
}
