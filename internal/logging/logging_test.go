package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitParsesLevel(t *testing.T) {
	logger := Init("debug", "json")
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	logger = Init("warn", "console")
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestInitDefaultsOnBadLevel(t *testing.T) {
	logger := Init("shouting", "json")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger = Init("", "json")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestInitInstallsGlobalLogger(t *testing.T) {
	logger := Init("error", "json")
	assert.Equal(t, logger.GetLevel(), log.Logger.GetLevel())
}

func TestInitReturnsUsableLogger(t *testing.T) {
	// The returned value must support event chains directly, as the
	// startup path does.
	logger := Init("info", "console")
	logger.Info().Str("component", "test").Msg("boot")
}
