package handlers

import (
  "fmt"
  "net/http"
  "path/filepath"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/services"
)

const maxAttachmentBytes = 10 << 20

type UploadHandler struct {
  log           *logger.Logger
  bucketService services.BucketService
}

func NewUploadHandler(log *logger.Logger, bucketService services.BucketService) *UploadHandler {
  return &UploadHandler{log: log.With("handler", "UploadHandler"), bucketService: bucketService}
}

// Upload accepts attachment bytes and returns a publicly fetchable URL. The
// analysis pipeline only ever sees the URL string.
func (uh *UploadHandler) Upload(c *gin.Context) {
  if uh.bucketService == nil {
    c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
    return
  }

  fileHeader, err := c.FormFile("file")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
    return
  }
  if fileHeader.Size > maxAttachmentBytes {
    c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
    return
  }

  file, err := fileHeader.Open()
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
    return
  }
  defer file.Close()

  key := fmt.Sprintf("attachments/%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
  if err := uh.bucketService.UploadFile(c.Request.Context(), key, file); err != nil {
    uh.log.Warn("Attachment upload failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"url": uh.bucketService.GetPublicURL(key)})
}
