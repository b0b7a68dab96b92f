package pkg

import (
	"log/slog"
	"time"

	"github.com/slamdev/importtoarray/pkg/integration"
)

type CLI struct {
	Prefix string `help:"Names starting with this marker are skipped; empty keeps every name." default:"${markerPrefix}"`
	Format string `help:"Output format." enum:"json,lines" default:"${format}"`
	Indent string `help:"Indentation of the json format." default:"${indent}"`

	Convert ConvertCmd `cmd:"" help:"Print the exported values of a namespace file once."`
	Watch   WatchCmd   `cmd:"" help:"Print the exported values of a namespace file on every change."`
}

type ConvertCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML or JSON document with a mapping at its root."`
}

func (c *ConvertCmd) Run(env *runEnv) error {
	return env.emit(c.File)
}

type WatchCmd struct {
	File     string        `arg:"" type:"existingfile" help:"YAML or JSON document with a mapping at its root."`
	Debounce time.Duration `help:"Quiet period before a burst of changes is reprinted." default:"${debounce}"`
}

func (c *WatchCmd) Run(env *runEnv) error {
	changes, err := integration.WatchFile(env.ctx, c.File, c.Debounce)
	if err != nil {
		return err
	}

	if err := env.emit(c.File); err != nil {
		return err
	}

	for range changes {
		// the file may be mid-write or temporarily broken, keep watching
		if err := env.emit(c.File); err != nil {
			slog.ErrorContext(env.ctx, "failed to reprint namespace", "path", c.File, "err", err)
		}
	}
	return nil
}
