package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vuejsx/internal/prof"
)

// profSession is started by the root PersistentPreRunE and stopped in run.
var profSession *prof.Session

// startProfiling inspects the persistent profiling flags and enables the
// corresponding profilers.
func startProfiling(cmd *cobra.Command, _ []string) error {
	root := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = root.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = root.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = root.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	profSession, err = prof.Start(cfg)
	return err
}

func stopProfiling() error {
	s := profSession
	profSession = nil
	return s.Stop()
}
