package app

import (
	"log/slog"

	"nthudata.org/api/internal/appconf"
	"nthudata.org/api/internal/buses"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config     appconf.Config
	Logger     *slog.Logger
	BusManager *buses.Manager
}
