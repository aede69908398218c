package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "agora/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantKeep bool
	}{
		{name: "client id kept", header: "client-123", wantKeep: true},
		{name: "missing id minted"},
		{name: "oversized id replaced", header: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
			req := httptest.NewRequest(http.MethodGet, "/session", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			var seen string
			err := m.Process(func(c echo.Context) error {
				seen = deliverycontext.RequestIDFromContext(c.Request().Context())

				return nil
			})(c)
			require.NoError(t, err)

			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
			assert.Equal(t, seen, deliverycontext.RequestID(c))
			if tt.wantKeep {
				assert.Equal(t, tt.header, seen)
			} else {
				_, err := uuid.Parse(seen)
				assert.NoError(t, err)
			}
		})
	}
}
