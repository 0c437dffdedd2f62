package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/butterfly"
	"github.com/gogpu/butterfly/internal/config"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:          "butterfly",
		Short:        "Subdivide triangle meshes with the butterfly scheme",
		Long:         "butterfly refines triangle meshes read from Wavefront OBJ, ASCII PLY or STL files using butterfly, linear, boundary or pascal subdivision.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.String("log-level", a.cfg.Log.Level, "log level: debug, info, warn or error")
	pf.String("log-format", a.cfg.Log.Format, "log format: text or json")

	root.AddCommand(newSubdivideCmd(a), newInfoCmd(a))
	return root
}

// setup loads the configuration file, applies flag overrides and installs
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	flags := cmd.Flags()
	overrideString(flags, "log-level", &a.cfg.Log.Level)
	overrideString(flags, "log-format", &a.cfg.Log.Format)
	overrideString(flags, "scheme", &a.cfg.Scheme)
	overrideInt(flags, "iterations", &a.cfg.Iterations)
	overrideInt(flags, "workers", &a.cfg.Workers)
	overrideString(flags, "output", &a.cfg.Output)
	overrideString(flags, "wireframe", &a.cfg.Wireframe.Path)
	overrideString(flags, "projection", &a.cfg.Wireframe.Projection)
	overrideInt(flags, "width", &a.cfg.Wireframe.Width)
	overrideInt(flags, "height", &a.cfg.Wireframe.Height)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	butterfly.SetLogger(newLogger(cmd.ErrOrStderr(), a.cfg.Log))
	return nil
}

func newLogger(w io.Writer, cfg config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// input returns the mesh path from the arguments or the configuration.
func (a *app) input(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.cfg.Input == "" {
		return "", errors.New("no input mesh: pass a file or set input in the configuration")
	}
	return a.cfg.Input, nil
}

func overrideString(flags *pflag.FlagSet, name string, dst *string) {
	if f := flags.Lookup(name); f != nil && f.Changed {
		*dst = f.Value.String()
	}
}

func overrideInt(flags *pflag.FlagSet, name string, dst *int) {
	if f := flags.Lookup(name); f != nil && f.Changed {
		if v, err := flags.GetInt(name); err == nil {
			*dst = v
		}
	}
}
