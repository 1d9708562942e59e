package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sfx/command"
	"github.com/cwbudde/algo-sfx/config"
	"github.com/cwbudde/algo-sfx/history"
	"github.com/cwbudde/algo-sfx/internal/logging"
	"github.com/cwbudde/algo-sfx/preset"
	"github.com/cwbudde/algo-sfx/synth"
)

// app holds everything a subcommand needs.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	logFile io.Closer
	engine  *synth.Engine
	proc    *command.Processor
	store   *history.Store
}

// loadConfig reads the config file and applies flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("backend") {
		cfg.Audio.Backend = backend
	}
	if flags.Changed("sample-rate") {
		cfg.Audio.SampleRate = sampleRate
	}
	if noKeystrokes {
		cfg.Terminal.KeystrokeSounds = false
	}
	return cfg, cfg.Validate()
}

// newApp builds the logger, history store, engine and processor. Console
// logs go to logOut unless a log file is configured.
func newApp(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}
	if a.log, a.logFile, err = newLogger(cfg, logOut); err != nil {
		return nil, err
	}
	a.store = newStore(a)

	lib := preset.Builtin()
	if cfg.Presets.File != "" {
		if lib, err = preset.LoadJSON(cfg.Presets.File); err != nil {
			a.Close()
			return nil, fmt.Errorf("load presets: %w", err)
		}
	}

	if a.engine, err = a.openEngine(); err != nil {
		a.Close()
		return nil, err
	}

	a.proc = command.NewProcessor(
		command.WithEngine(a.engine),
		command.WithPresets(lib),
		command.WithHistory(command.NewHistory(cfg.History.Limit, a.store.Load()...)),
		command.WithLogger(a.log.With().Str("component", "command").Logger()),
	)
	return a, nil
}

func newLogger(cfg config.Config, out io.Writer) (zerolog.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		NoColor: cfg.Log.NoColor,
		Out:     out,
	})
}

func newStore(a *app) *history.Store {
	return history.NewStore(a.cfg.History.File,
		history.WithLimit(a.cfg.History.Limit),
		history.WithLogger(a.log.With().Str("component", "history").Logger()))
}

// openEngine starts the configured backend. A missing audio device falls
// back to the null output so commands still run silently.
func (a *app) openEngine() (*synth.Engine, error) {
	sc := synth.DefaultConfig()
	sc.SampleRate = a.cfg.Audio.SampleRate
	sc.MasterGain = a.cfg.Audio.MasterGain
	sc.BufferMs = a.cfg.Audio.BufferMs
	sc.Seed = a.cfg.Audio.Seed
	elog := a.log.With().Str("component", "synth").Logger()

	if a.cfg.Audio.Backend == config.BackendDevice {
		e, err := synth.New(sc, synth.WithLogger(elog))
		if err != nil {
			return nil, err
		}
		err = e.Initialize()
		if err == nil {
			return e, nil
		}
		if !errors.Is(err, synth.ErrNoDevice) {
			a.log.Warn().Err(err).Msg("audio device unavailable, sounds are muted")
		}
		_ = e.Shutdown()
		a.cfg.Audio.Backend = config.BackendNull
	}

	e, err := synth.New(sc, synth.WithLogger(elog), synth.WithOutput(synth.NewNullOutput()))
	if err != nil {
		return nil, err
	}
	return e, e.Initialize()
}

// silent reports whether sounds are discarded instead of played.
func (a *app) silent() bool {
	return a.cfg.Audio.Backend == config.BackendNull
}

func (a *app) saveHistory() {
	if a.proc == nil {
		return
	}
	if err := a.store.Save(a.proc.History().Entries()); err != nil {
		a.log.Warn().Err(err).Str("path", a.store.Path()).Msg("save history")
	}
}

func (a *app) Close() error {
	var errs []error
	if a.engine != nil {
		errs = append(errs, a.engine.Shutdown())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// stderrUnlessInteractive keeps console logs off the raw-mode prompt.
func stderrUnlessInteractive(interactive bool) io.Writer {
	if interactive {
		return nil
	}
	return os.Stderr
}
