package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with helpers for the seat service.
type Logger struct {
	*slog.Logger
}

// New creates a logger: readable text output in debug mode, JSON in
// release mode, level from LOG_LEVEL.
func New() *Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

func parseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithLeg scopes the logger to one flight leg.
func (l *Logger) WithLeg(legID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("leg_id", legID))}
}

// WithPassenger scopes the logger to one passenger.
func (l *Logger) WithPassenger(paxID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("passenger_id", paxID))}
}

// WithError attaches an error to the logger context.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// LogHTTPRequest logs one handled HTTP request.
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogSeatBooked logs a completed Book transition.
func (l *Logger) LogSeatBooked(ctx context.Context, legID, paxID, seatID string, refunds int) {
	l.Logger.InfoContext(ctx,
		"Seat Booked",
		slog.String("leg_id", legID),
		slog.String("passenger_id", paxID),
		slog.String("seat_id", seatID),
		slog.Int("refund_events", refunds),
	)
}

// LogPrivacyToggled logs a privacy hold flip.
func (l *Logger) LogPrivacyToggled(ctx context.Context, legID, paxID, seatID string) {
	l.Logger.InfoContext(ctx,
		"Privacy Toggled",
		slog.String("leg_id", legID),
		slog.String("passenger_id", paxID),
		slog.String("seat_id", seatID),
	)
}

// LogRateLimitExceeded logs a rejected request.
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

var defaultLogger = New()

// GetDefault returns the process-wide logger instance.
func GetDefault() *Logger {
	return defaultLogger
}
