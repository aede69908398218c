package postgres

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"agora/config"
	deliverycontext "agora/internal/delivery/context"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func sqlAndRows() (string, int64) {
	return "SELECT * FROM users", 1
}

func TestGormSlogLogger_Trace(t *testing.T) {
	t.Run("record not found is not logged", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), &config.Config{})

		l.Trace(context.Background(), time.Now(), sqlAndRows, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("query error is logged", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), nil)

		l.Trace(context.Background(), time.Now(), sqlAndRows, errors.New("connection refused"))

		assert.Contains(t, buf.String(), "GORM query failed")
		assert.Contains(t, buf.String(), "connection refused")
	})

	t.Run("slow query warns", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), nil)

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlAndRows, nil)

		assert.Contains(t, buf.String(), "GORM slow query")
	})

	t.Run("fast query is silent below info", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), nil)

		l.Trace(context.Background(), time.Now(), sqlAndRows, nil)

		assert.Empty(t, buf.String())
	})

	t.Run("silent mode", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(newBufferLogger(&buf), nil).LogMode(logger.Silent)

		l.Trace(context.Background(), time.Now(), sqlAndRows, errors.New("boom"))

		assert.Empty(t, buf.String())
	})
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	l := newGormSlogLogger(newBufferLogger(&base), nil)

	requestLogger := newBufferLogger(&scoped).With(slog.String("request_id", "req-1"))
	ctx := deliverycontext.WithLogger(context.Background(), requestLogger)

	l.Trace(ctx, time.Now(), sqlAndRows, errors.New("boom"))

	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), "request_id=req-1")
}
