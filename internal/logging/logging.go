package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New returns the application logger. Dev-friendly colored text output;
// structured attributes survive either way.
func New() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		TimeFormat: time.Kitchen,
	}))
}
