//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"lendkit/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// PerformRequest executes an HTTP request against the router. The
// caller identity rides on the trusted user header; pass uuid.Nil to
// send the request anonymously.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if userID != uuid.Nil {
		req.Header.Set(middleware.UserIDHeader, userID.String())
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeResponseBody decodes a JSON response body into target.
func DecodeResponseBody(t *testing.T, body *bytes.Buffer, target any) error {
	t.Helper()

	err := json.NewDecoder(body).Decode(target)
	require.NoError(t, err, "Failed to decode response body")

	return err
}
