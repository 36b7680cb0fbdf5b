package logger

import (
	"io"
	"os"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New 建立 zerolog logger 並設為全域 logger
// 開發環境使用 console 格式, 其餘輸出 json
func New(env, level, service string) *zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == string(constants.Dev) || env == string(constants.Debug) {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	l := zerolog.New(w).Level(lvl).With().Timestamp().Str("service", service).Logger()
	log.Logger = l
	return &l
}
