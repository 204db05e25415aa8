package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/steelman-backend/internal/services"
)

type UserHandler struct {
  identityService services.IdentityService
}

func NewUserHandler(identityService services.IdentityService) *UserHandler {
  return &UserHandler{identityService: identityService}
}

// GetMe reports entitlement status. Anonymous callers get the zero status
// rather than an error, matching the submit path's anonymous tolerance.
func (uh *UserHandler) GetMe(c *gin.Context) {
  status := uh.identityService.Status(c.Request.Context(), requesterID(c))
  c.JSON(http.StatusOK, status)
}

// SyncLogin upserts the user record for an identity-provider subject.
func (uh *UserHandler) SyncLogin(c *gin.Context) {
  var req struct {
    ExternalRef string `json:"external_ref"`
    Email       string `json:"email"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  user, err := uh.identityService.SyncExternalLogin(c.Request.Context(), req.ExternalRef, req.Email)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, user)
}

// UpdateProfile merges the provided fields; absent fields stay untouched.
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
  var req struct {
    DisplayName *string `json:"display_name"`
    PhotoURL    *string `json:"photo_url"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if err := uh.identityService.UpdateProfile(c.Request.Context(), requesterID(c), req.DisplayName, req.PhotoURL); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}
