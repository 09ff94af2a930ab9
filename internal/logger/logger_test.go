package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "warn", "json")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("descartado")
	log.Warn().Str("slot", "10:00").Msg("slot lock unavailable")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "10:00", entry["slot"])
}

func TestSetupWriterContextFallback(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "nonsense", "json")

	log.Ctx(context.Background()).Info().Msg("sem logger na requisição")
	assert.Contains(t, buf.String(), "sem logger na requisição")
}
