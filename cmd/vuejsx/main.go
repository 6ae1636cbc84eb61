package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vuejsx/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "vuejsx",
	Short: "JSX to Vue 3 render function compiler",
	Long:  `vuejsx rewrites JSX/TSX modules into Vue 3 createVNode calls`,

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: startProfiling,
}

// exitCodeError завершает процесс с кодом без повторной печати сообщения:
// всё нужное уже выведено диагностиками.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// init sets the command version and registers subcommands and persistent flags.
func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")
}

func main() {
	os.Exit(run(rootCmd))
}

func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if stopErr := stopProfiling(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", stopErr)
	}
	if err == nil {
		return 0
	}
	var exitErr exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the terminal state of f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, errors.New("invalid --color value (expected auto|on|off)")
	}
}
