package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/steelman-backend/internal/apierr"
  "github.com/yungbote/steelman-backend/internal/requestdata"
)

// respondError maps any service error onto the wire error contract.
func respondError(c *gin.Context, err error) {
  c.JSON(apierr.StatusOf(err), gin.H{"error": apierr.CodeOf(err)})
}

// requesterID returns the attached identity, uuid.Nil when anonymous.
func requesterID(c *gin.Context) uuid.UUID {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    return uuid.Nil
  }
  return rd.UserID
}
