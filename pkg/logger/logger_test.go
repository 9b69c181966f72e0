package logger_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/autopartes-api/pkg/logger"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "autopartes-api", Output: &buf})

	log.Component("http").Info().Str("path", "/api/marcas").Msg("request")
	log.Debug().Msg("no debe salir")

	out := buf.String()
	assert.Contains(t, out, `"service":"autopartes-api"`)
	assert.Contains(t, out, `"component":"http"`)
	assert.Contains(t, out, `"path":"/api/marcas"`)
	assert.NotContains(t, out, "no debe salir")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verboso"))
}

func TestNop_Descarta(t *testing.T) {
	log := logger.Nop()
	assert.NotPanics(t, func() { log.Component("x").Error().Msg("nada") })
}
