package controllers

import (
	"net/http"
	"time"

	"civicreport-be/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateCivicHour handles a teacher's submission of a community-service
// activity claim; points are awarded only after an official verifies it
func CreateCivicHour(c *gin.Context) {
	userID, userName, _, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Description string   `json:"description" binding:"required,max=1000"`
		SchoolName  string   `json:"schoolName" binding:"required,max=100"`
		Category    string   `json:"category" binding:"omitempty,oneof=community_service environmental education health other"`
		Date        string   `json:"date" binding:"omitempty"`
		Duration    int      `json:"duration" binding:"required,min=1"`
		Images      []string `json:"images" binding:"required"`
		ProofImages []string `json:"proofImages" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date time.Time
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	hour, err := civicHourStore.Create(c.Request.Context(), models.CivicHour{
		TeacherID:   userID,
		TeacherName: userName,
		SchoolName:  input.SchoolName,
		Title:       input.Title,
		Description: input.Description,
		Category:    models.CivicHourCategory(input.Category),
		Date:        date,
		Duration:    input.Duration,
		Images:      input.Images,
		ProofImages: input.ProofImages,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"civicHour":     hour,
		"pendingPoints": hour.RewardPoints,
	})
}

// GetCivicHours lists claims: officials see every claim, teachers only
// their own
func GetCivicHours(c *gin.Context) {
	userID, _, role, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	all, err := civicHourStore.GetAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if role == models.RoleOfficial {
		c.JSON(http.StatusOK, all)
		return
	}

	own := make([]models.CivicHour, 0)
	for _, hour := range all {
		if hour.TeacherID == userID {
			own = append(own, hour)
		}
	}
	c.JSON(http.StatusOK, own)
}

// VerifyCivicHour lets an official verify or reject a pending claim.
// Verification credits the teacher's reward total; rejection credits
// nothing. Either way the claim is terminal afterwards.
func VerifyCivicHour(c *gin.Context) {
	userID, userName, _, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Outcome string `json:"outcome" binding:"required,oneof=verified rejected"`
		Notes   string `json:"notes" binding:"omitempty,max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hour, err := civicHourStore.Verify(c.Request.Context(), c.Param("id"),
		models.CivicHourStatus(input.Outcome), userID, userName, input.Notes)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	awarded := 0
	if hour.Status == models.Verified {
		awarded = hour.RewardPoints
		if _, err := rewardLedger.Add(c.Request.Context(), hour.TeacherID, awarded); err != nil {
			logrus.WithError(err).Error("Failed to credit civic hour reward")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"civicHour":     hour,
		"awardedPoints": awarded,
	})
}
