package controllers

import (
	"errors"
	"net/http"

	"civicreport-be/stores"

	"github.com/gin-gonic/gin"
)

// respondStoreError maps store errors onto HTTP statuses:
// NotFound -> 404, InvalidArgument -> 400, InvalidState -> 409
func respondStoreError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, stores.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, stores.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, stores.ErrInvalidState):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentIdentity pulls the caller's identity set by the auth middleware
func currentIdentity(c *gin.Context) (id, name, role string, ok bool) {
	idVal, exists := c.Get("user_id")
	if !exists {
		return "", "", "", false
	}
	id, _ = idVal.(string)
	if id == "" {
		return "", "", "", false
	}
	if nameVal, exists := c.Get("user_name"); exists {
		name, _ = nameVal.(string)
	}
	if roleVal, exists := c.Get("user_role"); exists {
		role, _ = roleVal.(string)
	}
	return id, name, role, true
}
