package main

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func NewLogger(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}
	return zerolog.New(writer).With().Timestamp().Logger().Level(lvl)
}
