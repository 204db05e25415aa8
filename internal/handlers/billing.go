package handlers

import (
  "crypto/subtle"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/steelman-backend/internal/services"
  "github.com/yungbote/steelman-backend/internal/types"
)

type BillingHandler struct {
  identityService services.IdentityService
  webhookSecret   string
}

func NewBillingHandler(identityService services.IdentityService, webhookSecret string) *BillingHandler {
  return &BillingHandler{identityService: identityService, webhookSecret: webhookSecret}
}

// Webhook is the subscription-tier-flip notification from the billing
// processor. Applying the same notification twice is harmless: the target
// field is a tier assignment, not a counter.
func (bh *BillingHandler) Webhook(c *gin.Context) {
  sig := c.GetHeader("X-Webhook-Secret")
  if bh.webhookSecret == "" || subtle.ConstantTimeCompare([]byte(sig), []byte(bh.webhookSecret)) != 1 {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
    return
  }

  var req struct {
    UserID string `json:"user_id"`
    Tier   string `json:"tier"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  userID, err := uuid.Parse(req.UserID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
    return
  }
  tier := req.Tier
  if tier == "" {
    tier = types.TierPro
  }

  if err := bh.identityService.ApplyTierChange(c.Request.Context(), userID, tier); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"received": true})
}
