package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/cellterm/config"
)

// globals holds the persistent flags shared by every subcommand
type globals struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	logFile    io.Closer
	timeout    time.Duration
}

func newRootCmd(g *globals) *cobra.Command {
	flagCfg := config.Default()

	cmd := &cobra.Command{
		Use:           "cellterm",
		Short:         "Cell grid terminal demos",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.resolve(cmd, flagCfg)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.logFile != nil {
				return g.logFile.Close()
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "TOML config file")
	pf.StringVar(&flagCfg.Backend, "backend", flagCfg.Backend, "backend: auto, ansi, tcell, wincon, headless")
	pf.StringVar(&flagCfg.InputMode, "input-mode", flagCfg.InputMode, "escape handling: esc, alt, esc+alt")
	pf.BoolVar(&flagCfg.Mouse, "mouse", flagCfg.Mouse, "report mouse events")
	pf.DurationVar(&flagCfg.PollTimeout.Duration, "poll-timeout", flagCfg.PollTimeout.Duration, "listener poll timeout")
	pf.IntVar(&flagCfg.EventCapacity, "event-capacity", flagCfg.EventCapacity, "event channel capacity")
	pf.StringVar(&flagCfg.Bell, "bell", flagCfg.Bell, "bell: none, audio, device")
	pf.StringVar(&flagCfg.LogFile, "log-file", flagCfg.LogFile, "write a debug log to this file")
	pf.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "log level: debug, info, warn, error")
	pf.DurationVar(&g.timeout, "timeout", 0, "exit after this long (0 waits for the quit key)")

	cmd.AddCommand(
		newRectCmd(g),
		newEventsCmd(g),
		newHelloCmd(g),
	)
	return cmd
}

// flagKeys maps persistent flag names onto their config fields
var flagKeys = map[string]func(dst, src *config.Config){
	"backend":        func(d, s *config.Config) { d.Backend = s.Backend },
	"input-mode":     func(d, s *config.Config) { d.InputMode = s.InputMode },
	"mouse":          func(d, s *config.Config) { d.Mouse = s.Mouse },
	"poll-timeout":   func(d, s *config.Config) { d.PollTimeout = s.PollTimeout },
	"event-capacity": func(d, s *config.Config) { d.EventCapacity = s.EventCapacity },
	"bell":           func(d, s *config.Config) { d.Bell = s.Bell },
	"log-file":       func(d, s *config.Config) { d.LogFile = s.LogFile },
	"log-level":      func(d, s *config.Config) { d.LogLevel = s.LogLevel },
}

// resolve loads the config file, lets explicitly set flags override it and
// opens the log
func (g *globals) resolve(cmd *cobra.Command, flagCfg *config.Config) error {
	cfg := config.Default()
	if g.configPath != "" {
		loaded, err := config.Load(g.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	for name, apply := range flagKeys {
		if cmd.Flags().Changed(name) {
			apply(cfg, flagCfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}
	g.cfg = cfg

	level, _ := cfg.Level()
	logger, closer, err := setupLogging(cfg.LogFile, level)
	if err != nil {
		return err
	}
	g.logger = logger
	g.logFile = closer
	return nil
}
