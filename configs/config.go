package configs

import (
	"embed"
	"time"
)

//go:embed *.yaml
var Configs embed.FS

//nolint:revive
type Config struct {
	Telemetry struct {
		Logs struct {
			Level  string
			Format string
		}
	}
	Exports Exports
	Watch   struct {
		Debounce time.Duration
	}
}

type Exports struct {
	MarkerPrefix string
	// Format is either "json" (a single array) or "lines" (one value per line).
	Format string
	Indent string
}
