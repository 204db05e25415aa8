package middleware

import (
  "net/http"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/requestdata"
)

// identityHeader is the out-of-band identity channel. The value is an opaque
// stable identifier minted by the client or the identity provider.
const identityHeader = "X-User-ID"

type IdentityMiddleware struct {
  log *logger.Logger
}

func NewIdentityMiddleware(log *logger.Logger) *IdentityMiddleware {
  middlewareLog := log.With("middleware", "IdentityMiddleware")
  return &IdentityMiddleware{log: middlewareLog}
}

// Attach parses the identity header into the request context without
// enforcing it. Absent or malformed identity means anonymous; routes that
// need identity use RequireIdentity.
func (im *IdentityMiddleware) Attach() gin.HandlerFunc {
  return func(c *gin.Context) {
    rd := &requestdata.RequestData{}
    raw := strings.TrimSpace(c.GetHeader(identityHeader))
    if raw != "" {
      id, err := uuid.Parse(raw)
      if err != nil {
        im.log.Debug("Malformed identity header, treating as anonymous")
      } else {
        rd.UserID = id
      }
    }
    c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
    c.Next()
  }
}

// RequireIdentity rejects anonymous callers with the missing_identity class.
func (im *IdentityMiddleware) RequireIdentity() gin.HandlerFunc {
  return func(c *gin.Context) {
    rd := requestdata.GetRequestData(c.Request.Context())
    if rd == nil || rd.UserID == uuid.Nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_identity"})
      return
    }
    c.Next()
  }
}
