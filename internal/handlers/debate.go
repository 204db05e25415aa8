package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/steelman-backend/internal/apierr"
  "github.com/yungbote/steelman-backend/internal/services"
)

type DebateHandler struct {
  debateService services.DebateService
}

func NewDebateHandler(debateService services.DebateService) *DebateHandler {
  return &DebateHandler{debateService: debateService}
}

func debateIDParam(c *gin.Context) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    // An unparseable id can never match a record.
    respondError(c, apierr.NotFound(err))
    return uuid.Nil, false
  }
  return id, true
}

// Get serves the public share view; no identity is required.
func (dh *DebateHandler) Get(c *gin.Context) {
  debateID, ok := debateIDParam(c)
  if !ok {
    return
  }
  debate, err := dh.debateService.Get(c.Request.Context(), debateID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, debate)
}

func (dh *DebateHandler) History(c *gin.Context) {
  view, err := dh.debateService.History(c.Request.Context(), requesterID(c))
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, view)
}

func (dh *DebateHandler) Rename(c *gin.Context) {
  debateID, ok := debateIDParam(c)
  if !ok {
    return
  }
  var req struct {
    Title string `json:"title"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if err := dh.debateService.Rename(c.Request.Context(), debateID, requesterID(c), req.Title); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "title": req.Title})
}

func (dh *DebateHandler) Delete(c *gin.Context) {
  debateID, ok := debateIDParam(c)
  if !ok {
    return
  }
  if err := dh.debateService.Remove(c.Request.Context(), debateID, requesterID(c)); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}
