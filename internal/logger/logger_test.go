package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedact(t *testing.T) {
	got := redact([]interface{}{"course_id", "c1", "catalogue_token", "abc", "password", "p", "dangling"})
	assert.Equal(t, []interface{}{"course_id", "c1", "catalogue_token", "[REDACTED]", "password", "[REDACTED]", "dangling"}, got)
}

func TestLoggerWritesRedactedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("service", "catalogue").Info("authenticated", "token", "secret-value", "attempt", 1)

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "catalogue", fields["service"])
	assert.Equal(t, "[REDACTED]", fields["token"])
	assert.Equal(t, int64(1), fields["attempt"])
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production"} {
		l, err := New(mode)
		assert.NoError(t, err)
		assert.NotNil(t, l.SugaredLogger)
	}
	Nop().Info("discarded")
}
