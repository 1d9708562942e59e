package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sfx/preset"
)

func runRun(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, stderrUnlessInteractive(false))
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.saveHistory()

	res := a.proc.Process(strings.Join(args, " "))
	if res.Output != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
	}
	for _, act := range res.Actions {
		a.log.Debug().Str("action", string(act)).Msg("action ignored outside the terminal")
	}
	if a.silent() {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.engine.WaitIdle(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, stderrUnlessInteractive(false))
	if err != nil {
		return err
	}
	defer a.Close()

	lib := a.proc.Presets()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	if len(args) == 1 {
		found := lib.Search(args[0])
		if len(found) == 0 {
			return fmt.Errorf("no presets match %q", args[0])
		}
		for _, p := range found {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Category, p.Description)
		}
		return nil
	}

	for _, c := range lib.Categories() {
		fmt.Fprintf(w, "%s\n", c)
		for _, p := range lib.ByCategory(c) {
			printPreset(w, p)
		}
	}
	return nil
}

func printPreset(w *tabwriter.Writer, p preset.Preset) {
	fmt.Fprintf(w, "  %s\t%s\n", p.Name, p.Description)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a := &app{cfg: cfg}
	a.log, a.logFile, err = newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	store := newStore(a)
	if clearSavedHistory {
		return store.Save(nil)
	}
	for i, line := range store.Load() {
		fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, line)
	}
	return nil
}
