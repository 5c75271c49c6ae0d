package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	var tests = []struct {
		verbosity int
		expected  zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Level(test.verbosity), test.verbosity)
	}
}

func TestSetup(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer

	logger := Setup(0, &buf, true)
	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")

	buf.Reset()

	Setup(2, &buf, true)
	l := Component("bootstrap")
	l.Debug().Msg("step")

	assert.Contains(t, buf.String(), "Logger initialized")
	assert.Contains(t, buf.String(), "component=bootstrap")
}
