package state

import (
	"context"
	"log/slog"
	"os"

	"github.com/encodeous/tint"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Env carries the shared run context. It can be read from any
// goroutine.
type Env struct {
	Cfg
	Context context.Context
	Log     *slog.Logger
}

// NewEnv builds the logger fan-out: a tinted handler on stderr, plus a
// rotating text log file when cfg.LogPath is set.
func NewEnv(ctx context.Context, cfg Cfg, logLevel slog.Level) *Env {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:     logLevel,
			AddSource: false,
		}))

	if cfg.LogPath != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
		}
		handlers = append(handlers, slog.NewTextHandler(rotated, &slog.HandlerOptions{Level: logLevel}))
	}

	return &Env{
		Cfg:     cfg,
		Context: ctx,
		Log:     slog.New(slogmulti.Fanout(handlers...)),
	}
}
