package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"civicreport-be/config"
	"civicreport-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetMyRewards returns the authenticated user's running point total
func GetMyRewards(c *gin.Context) {
	userID, _, _, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	total, err := rewardLedger.Current(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// ResetMyRewards zeroes the authenticated user's point total
func ResetMyRewards(c *gin.Context) {
	userID, _, _, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := rewardLedger.Reset(c.Request.Context(), userID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": 0})
}

// GetLeaderboard returns the top point earners, with display names
// resolved from the user collection where possible
func GetLeaderboard(c *gin.Context) {
	totals, err := rewardLedger.Totals(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	type entry struct {
		UserID string `json:"userId"`
		Name   string `json:"name"`
		Points int    `json:"points"`
	}
	entries := make([]entry, 0, len(totals))
	for userID, points := range totals {
		entries = append(entries, entry{UserID: userID, Points: points})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for idx := range entries {
		objectID, err := primitive.ObjectIDFromHex(entries[idx].UserID)
		if err != nil {
			continue
		}
		var user models.User
		if err := userCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err == nil {
			entries[idx].Name = user.Name
		}
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
