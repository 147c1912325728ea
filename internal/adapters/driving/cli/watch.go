package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/logger"
	"github.com/tradewire-labs/edix/internal/watcher"
)

var (
	watchRate float64
	watchEnv  string
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Process interchanges dropped into a directory",
	Long: `Watches a pickup directory and processes every .edi, .x12 or .txt
file as it lands. The full result is written as JSON next to each input
(file.edi -> file.edi.json) and a status line is printed as it
completes. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Float64Var(&watchRate, "rate", watcher.DefaultFilesPerSecond, "maximum files processed per second")
	watchCmd.Flags().StringVarP(&watchEnv, "environment", "e", "", "environment key for business-rule selection")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if engine == nil {
		return errors.New("engine not configured")
	}

	opts := engineOptions()
	if watchEnv != "" {
		opts.Environment = watchEnv
	}

	w := watcher.New(engine, opts)
	if watchRate > 0 {
		w.SetRate(watchRate)
	}

	err := w.Watch(cmd.Context(), args[0], func(path string, result domain.ProcessingResult) {
		if err := writeWatchResult(path, result); err != nil {
			logger.Warn("result for %s not written: %v", path, err)
			cmd.PrintErrf("warning: %v\n", err)
		}
		cmd.Printf("%s: %s", path, result.Status)
		if n := len(result.Messages); n > 0 {
			cmd.Printf(" (%d messages)", n)
		}
		cmd.Println()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// writeWatchResult persists one result as JSON beside its input. The
// ".json" suffix keeps the output outside the watched extension set, so
// result files never feed back into the watcher.
func writeWatchResult(path string, result domain.ProcessingResult) error {
	data, err := marshalProcessResult(result)
	if err != nil {
		return err
	}
	return os.WriteFile(path+".json", data, 0644)
}
