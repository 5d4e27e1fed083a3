package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"civicreport-be/models"
	"civicreport-be/stores"
	authUtils "civicreport-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	issueStore     *stores.IssueStore
	civicHourStore *stores.CivicHourStore
	rewardLedger   *stores.RewardLedger
	geocoder       *authUtils.Geocoder
)

// InitStores wires the controllers to a blob backend. main passes the
// Redis-backed blob; tests pass an in-memory one.
func InitStores(blob stores.Blob) {
	issueStore = stores.NewIssueStore(blob)
	civicHourStore = stores.NewCivicHourStore(blob)
	rewardLedger = stores.NewRewardLedger(blob)
	geocoder = authUtils.NewGeocoder()
}

// CreateIssue handles the submission of a new issue and credits the
// reporter's reward total
func CreateIssue(c *gin.Context) {
	userID, userName, _, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title                   string     `json:"title" binding:"required,max=200"`
		Description             string     `json:"description" binding:"required,max=1000"`
		Category                string     `json:"category" binding:"required"`
		Priority                string     `json:"priority,omitempty"`
		Status                  string     `json:"status,omitempty"`
		Address                 string     `json:"address,omitempty"`
		Latitude                *float64   `json:"latitude,omitempty"`
		Longitude               *float64   `json:"longitude,omitempty"`
		Images                  []string   `json:"images,omitempty"`
		Tags                    []string   `json:"tags,omitempty"`
		EstimatedResolutionDate *time.Time `json:"estimatedResolutionDate,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategories[models.IssueCategory(input.Category)] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	if input.Priority != "" && !models.ValidPriorities[models.IssuePriority(input.Priority)] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}
	switch input.Status {
	case "", string(models.NotCompleted), string(models.InProgress), string(models.Completed):
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	location := models.Location{Address: input.Address}
	if input.Latitude != nil && input.Longitude != nil {
		location.Coordinates = models.Coordinates{Lat: *input.Latitude, Lng: *input.Longitude}
		if location.Address == "" {
			// Best effort; degrades to a coordinate string and never
			// blocks the submission
			location.Address = geocoder.ReverseGeocode(c.Request.Context(), *input.Latitude, *input.Longitude)
		}
	}

	draft := models.Issue{
		Title:                   input.Title,
		Description:             input.Description,
		Category:                models.IssueCategory(input.Category),
		Priority:                models.IssuePriority(input.Priority),
		Status:                  models.IssueStatus(input.Status),
		Location:                location,
		Images:                  input.Images,
		Tags:                    input.Tags,
		ReporterID:              userID,
		ReporterName:            userName,
		IsPublic:                true,
		EstimatedResolutionDate: input.EstimatedResolutionDate,
	}

	issue, err := issueStore.Create(c.Request.Context(), draft)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	resp := gin.H{
		"issue":        issue,
		"earnedPoints": issue.RewardPoints,
	}
	total, err := rewardLedger.Add(c.Request.Context(), userID, issue.RewardPoints)
	if err != nil {
		// Credit is best effort; the issue itself is already persisted.
		// The total is omitted rather than reported as zero.
		logrus.WithError(err).Error("Failed to credit submission reward")
	} else {
		resp["totalPoints"] = total
	}

	c.JSON(http.StatusCreated, resp)
}

// GetAllIssues handles retrieving all issues with filtering, search,
// sorting and pagination over the store snapshot
func GetAllIssues(c *gin.Context) {
	category := c.Query("category")
	status := c.Query("status")
	priority := c.Query("priority")
	search := strings.ToLower(c.Query("search"))
	sortOrder := c.DefaultQuery("sort", "newest")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	all, err := issueStore.GetAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	filtered := make([]models.Issue, 0, len(all))
	for _, issue := range all {
		if category != "" && category != "all" && string(issue.Category) != category {
			continue
		}
		if status != "" && status != "all" && string(issue.Status) != status {
			continue
		}
		if priority != "" && priority != "all" && string(issue.Priority) != priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(issue.Title), search) &&
			!strings.Contains(strings.ToLower(issue.Description), search) {
			continue
		}
		filtered = append(filtered, issue)
	}

	// Store order is newest first already
	if sortOrder == "oldest" {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	totalCount := len(filtered)
	totalPages := (totalCount + limit - 1) / limit

	start := (page - 1) * limit
	if start > totalCount {
		start = totalCount
	}
	end := start + limit
	if end > totalCount {
		end = totalCount
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      filtered[start:end],
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetIssue retrieves an issue by its ID
func GetIssue(c *gin.Context) {
	issue, err := issueStore.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// GetMyIssues retrieves all issues reported by the authenticated user
func GetMyIssues(c *gin.Context) {
	userID, _, _, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	all, err := issueStore.GetAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	mine := make([]models.Issue, 0)
	for _, issue := range all {
		if issue.ReporterID == userID {
			mine = append(mine, issue)
		}
	}
	c.JSON(http.StatusOK, mine)
}

// UpdateIssueStatus moves an issue between its open states. Completion
// is rejected here; it must go through CompleteIssue so the completion
// fields land together.
func UpdateIssueStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required,oneof=not_completed in_progress completed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := issueStore.UpdateStatus(c.Request.Context(), c.Param("id"), models.IssueStatus(input.Status))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// AssignOfficial puts the calling official's name on the issue, or an
// explicitly named colleague's
func AssignOfficial(c *gin.Context) {
	userID, userName, _, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		OfficialID   string `json:"officialId,omitempty"`
		OfficialName string `json:"officialName,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.OfficialID == "" {
		input.OfficialID = userID
		input.OfficialName = userName
	}

	issue, err := issueStore.AssignOfficial(c.Request.Context(), c.Param("id"), input.OfficialID, input.OfficialName)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// AddComment appends a comment to an issue; comments from officials are
// flagged as official responses
func AddComment(c *gin.Context) {
	userID, userName, role, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required,max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := issueStore.AddComment(c.Request.Context(), c.Param("id"), models.Comment{
		AuthorID:   userID,
		AuthorName: userName,
		AuthorRole: role,
		Content:    input.Content,
		IsOfficial: role == models.RoleOfficial,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// VoteIssue increments the issue's upvote or downvote counter. Votes are
// not de-duplicated per user; repeated votes keep counting.
func VoteIssue(c *gin.Context) {
	var input struct {
		Direction string `json:"direction" binding:"required,oneof=up down"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	direction := 1
	if input.Direction == "down" {
		direction = -1
	}

	issue, err := issueStore.Vote(c.Request.Context(), c.Param("id"), direction)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"issue":     issue,
		"upvotes":   issue.Upvotes,
		"downvotes": issue.Downvotes,
	})
}

// CompleteIssue closes an issue with proof images and credits the
// completion reward to whoever fixed it
func CompleteIssue(c *gin.Context) {
	userID, userName, role, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		ProofImages []string `json:"proofImages" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := issueStore.Complete(c.Request.Context(), c.Param("id"), input.ProofImages, userID, userName, role)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	resp := gin.H{
		"issue":        issue,
		"earnedPoints": issue.CompletionReward,
	}
	total, err := rewardLedger.Add(c.Request.Context(), userID, issue.CompletionReward)
	if err != nil {
		logrus.WithError(err).Error("Failed to credit completion reward")
	} else {
		resp["totalPoints"] = total
	}

	c.JSON(http.StatusOK, resp)
}

// RecentIssues returns the most recent issues that carry coordinates,
// shaped for map pins
func RecentIssues(c *gin.Context) {
	// Cap the payload so the map endpoint stays small as the store grows.
	const maxPins = 20

	all, err := issueStore.GetAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	type pin struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Latitude  float64   `json:"latitude"`
		Longitude float64   `json:"longitude"`
		Address   string    `json:"address"`
		Category  string    `json:"category,omitempty"`
		CreatedAt time.Time `json:"createdAt,omitempty"`
	}

	pins := make([]pin, 0, maxPins)
	for _, issue := range all {
		if !issue.HasCoordinates() {
			continue
		}
		pins = append(pins, pin{
			ID:        issue.ID,
			Title:     issue.Title,
			Latitude:  issue.Location.Coordinates.Lat,
			Longitude: issue.Location.Coordinates.Lng,
			Address:   issue.Location.Address,
			Category:  string(issue.Category),
			CreatedAt: issue.CreatedAt,
		})
		if len(pins) == maxPins {
			break
		}
	}

	c.JSON(http.StatusOK, pins)
}

// GetIssueAnalytics returns analytical data about issues
func GetIssueAnalytics(c *gin.Context) {
	all, err := issueStore.GetAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	// Issues grouped by category
	categoryCounts := map[string]int{}
	totalVotes := 0
	openIssues := 0
	completedIssues := 0
	for _, issue := range all {
		categoryCounts[string(issue.Category)]++
		totalVotes += issue.Upvotes + issue.Downvotes
		if issue.IsCompleted() {
			completedIssues++
		} else {
			openIssues++
		}
	}
	issuesByCategory := make([]gin.H, 0, len(categoryCounts))
	for name, value := range categoryCounts {
		issuesByCategory = append(issuesByCategory, gin.H{"name": name, "value": value})
	}
	sort.Slice(issuesByCategory, func(i, j int) bool {
		return issuesByCategory[i]["name"].(string) < issuesByCategory[j]["name"].(string)
	})

	// Issues reported over the last 7 days
	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		nextDate := date.AddDate(0, 0, 1)

		count := 0
		for _, issue := range all {
			if !issue.CreatedAt.Before(date) && issue.CreatedAt.Before(nextDate) {
				count++
			}
		}
		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	// Top voted issues
	type votedIssue struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
		Votes    int    `json:"votes"`
	}
	voted := make([]votedIssue, 0, len(all))
	for _, issue := range all {
		voted = append(voted, votedIssue{
			ID:       issue.ID,
			Title:    issue.Title,
			Category: string(issue.Category),
			Votes:    issue.Upvotes,
		})
	}
	sort.Slice(voted, func(i, j int) bool {
		return voted[i].Votes > voted[j].Votes
	})
	if len(voted) > 5 {
		voted = voted[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"issuesByCategory": issuesByCategory,
		"last7Days":        last7Days,
		"topVotedIssues":   voted,
		"totalIssues":      len(all),
		"totalVotes":       totalVotes,
		"openIssues":       openIssues,
		"completedIssues":  completedIssues,
	})
}
