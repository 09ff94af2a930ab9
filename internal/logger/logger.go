package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configura o logger global. format "text" usa saída colorida para
// desenvolvimento; qualquer outro valor gera JSON.
func Setup(level, format string) zerolog.Logger {
	return SetupWriter(os.Stdout, level, format)
}

func SetupWriter(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "text" {
		w = zerolog.ConsoleWriter{Out: w}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	// log.Ctx(ctx) cai no logger global quando a requisição não tem um próprio
	zerolog.DefaultContextLogger = &log.Logger

	return log.Logger
}
