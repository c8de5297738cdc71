package llm

import (
	"context"
	"errors"
	"net"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// isTransient classifies an engine error as retryable. Rate limits, server
// errors, and timeouts are transient; everything else (bad request, auth,
// malformed payload) is permanent and resolves straight to the fallback.
func isTransient(err error) bool {
	var oaErr *openai.APIError
	if errors.As(err, &oaErr) {
		return oaErr.HTTPStatusCode == http.StatusTooManyRequests || oaErr.HTTPStatusCode >= 500
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == http.StatusTooManyRequests || gErr.Code >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return errors.Is(err, context.DeadlineExceeded)
}
