package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "net"
  "net/http"
  "os"
  "time"

  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/utils"
)

// CompletionClient is the boundary to the external text-completion provider.
// One call is one prompted request; concurrency and prompt pairing live in
// the gateway, not here.
type CompletionClient interface {
  Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
  Model() string
}

type completionClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client
}

func NewCompletionClient(log *logger.Logger) (CompletionClient, error) {
  apiKey := os.Getenv("COMPLETION_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing COMPLETION_API_KEY")
  }

  baseURL := os.Getenv("COMPLETION_BASE_URL")
  if baseURL == "" {
    baseURL = "https://api.perplexity.ai"
  }

  model := os.Getenv("COMPLETION_MODEL")
  if model == "" {
    model = "sonar-pro"
  }

  timeoutSec := utils.GetEnvAsInt("COMPLETION_TIMEOUT_SECONDS", 30, log)
  if timeoutSec <= 0 {
    timeoutSec = 30
  }

  return &completionClient{
    log:        log.With("service", "CompletionClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
  }, nil
}

type completionHTTPError struct {
  StatusCode int
  Body       string
}

func (e *completionHTTPError) Error() string {
  return fmt.Sprintf("completion http %d: %s", e.StatusCode, e.Body)
}

func isRetryableHTTP(code int) bool {
  if code == 408 || code == 429 {
    return true
  }
  if code >= 500 && code <= 599 {
    return true
  }
  return false
}

// IsRetryableUpstream classifies a provider failure for callers that choose
// to retry. This client never retries on its own.
func IsRetryableUpstream(err error) bool {
  if err == nil {
    return false
  }
  if errors.Is(err, context.DeadlineExceeded) {
    return true
  }
  var netErr net.Error
  if errors.As(err, &netErr) && netErr.Timeout() {
    return true
  }
  var httpErr *completionHTTPError
  if errors.As(err, &httpErr) {
    return isRetryableHTTP(httpErr.StatusCode)
  }
  return false
}

type chatCompletionsRequest struct {
  Model    string `json:"model"`
  Messages []struct {
    Role    string `json:"role"`
    Content string `json:"content"`
  } `json:"messages"`
}

type chatCompletionsResponse struct {
  Choices []struct {
    Message struct {
      Role    string `json:"role"`
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
}

func (c *completionClient) Model() string {
  return c.model
}

func (c *completionClient) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
  req := chatCompletionsRequest{Model: c.model}
  req.Messages = []struct {
    Role    string `json:"role"`
    Content string `json:"content"`
  }{
    {Role: "system", Content: systemPrompt},
    {Role: "user", Content: userPrompt},
  }

  var resp chatCompletionsResponse
  if err := c.do(ctx, "POST", "/chat/completions", req, &resp); err != nil {
    return "", err
  }
  if len(resp.Choices) == 0 {
    return "", fmt.Errorf("completion response has no choices")
  }
  return resp.Choices[0].Message.Content, nil
}

func (c *completionClient) do(ctx context.Context, method, path string, body any, out any) error {
  var buf bytes.Buffer
  if body != nil {
    if err := json.NewEncoder(&buf).Encode(body); err != nil {
      return err
    }
  }

  req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
  if err != nil {
    return err
  }
  req.Header.Set("Authorization", "Bearer "+c.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return err
  }

  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return readErr
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return &completionHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }
  if out == nil {
    return nil
  }
  if uErr := json.Unmarshal(raw, out); uErr != nil {
    return fmt.Errorf("completion decode error: %w; raw=%s", uErr, string(raw))
  }
  return nil
}
