package handlers

import (
  "net/http"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/steelman-backend/internal/services"
)

type AnalysisHandler struct {
  analysisService services.AnalysisService
}

func NewAnalysisHandler(analysisService services.AnalysisService) *AnalysisHandler {
  return &AnalysisHandler{analysisService: analysisService}
}

func (ah *AnalysisHandler) Analyze(c *gin.Context) {
  var req struct {
    ArgumentText  string `json:"argument_text"`
    // Legacy clients send "argument"; both keys stay accepted.
    Argument      string `json:"argument"`
    AttachmentURL string `json:"attachment_url"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  argument := req.ArgumentText
  if strings.TrimSpace(argument) == "" {
    argument = req.Argument
  }
  if strings.TrimSpace(argument) == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "argument required"})
    return
  }

  result, err := ah.analysisService.Submit(c.Request.Context(), requesterID(c), argument, req.AttachmentURL)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, result)
}
