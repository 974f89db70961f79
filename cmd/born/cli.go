package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/born-ml/facade/backend/cpu"
	"github.com/born-ml/facade/internal/envconfig"
	"github.com/born-ml/facade/tensor"
)

const version = "v0.0.1-dev"

// setupLogging installs a text handler on stderr; BORN_DEBUG enables debug records.
func setupLogging() {
	level := slog.LevelInfo
	if envconfig.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "born",
		Short: "Born ML Framework tensor toolkit",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
			setupLogging()
		},
	}

	cobra.EnableCommandSorting = false

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Born ML Framework %s\n", version)
		},
	}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show BORN_* settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printEnv(cmd.OutOrStdout())
		},
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a short tensor session on the CPU engine",
		Args:  cobra.NoArgs,
		RunE:  demoHandler,
	}
	demoCmd.Flags().Int64("seed", 42, "Seed for the engine random source")
	demoCmd.Flags().Int("threads", 0, "Worker goroutines (0 uses BORN_NUM_THREADS)")

	rootCmd.AddCommand(versionCmd, envCmd, demoCmd)
	return rootCmd
}

func printEnv(w io.Writer) {
	vars := envconfig.AsMap()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		v := vars[name]
		fmt.Fprintf(w, "%-18s %-8v %s\n", name, v.Value, v.Description)
	}
}

func demoHandler(cmd *cobra.Command, args []string) error {
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return err
	}
	threads, err := cmd.Flags().GetInt("threads")
	if err != nil {
		return err
	}

	opts := []cpu.Option{cpu.WithSeed(seed)}
	if threads > 0 {
		opts = append(opts, cpu.WithNumThreads(threads))
	}
	backend := cpu.New(opts...)
	slog.Debug("demo backend ready", "backend", backend.Name(), "device", backend.Device())

	return runDemo(cmd.OutOrStdout(), backend)
}

// runDemo prints a few façade operations. Engine failures are returned, not panicked.
func runDemo(w io.Writer, backend tensor.Backend) error {
	a, err := tensor.TryFromSlice([]float64{1, 2, 3}, backend)
	if err != nil {
		return err
	}
	b, err := tensor.TryScalarSub(tensor.Float(10), a)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "a          = %v\n", a)
	fmt.Fprintf(w, "10 - a     = %v\n", b)

	labels, err := tensor.TryFromSlice([]int64{0, 2}, backend)
	if err != nil {
		return err
	}
	hot, err := labels.TryOneHot(4)
	if err != nil {
		return err
	}
	rows, err := tensor.TryToSlice2[float32](hot)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "onehot     = %v\n", rows)

	logits, err := tensor.TryFromSlice2([][]float32{{2, 0, 0, 0}, {0, 0, 1, 3}}, backend)
	if err != nil {
		return err
	}
	loss, err := logits.TryCrossEntropyForLogits(labels)
	if err != nil {
		return err
	}
	acc, err := logits.TryAccuracyForLogits(labels)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "loss       = %.4f\n", loss.Float64())
	fmt.Fprintf(w, "accuracy   = %.2f\n", acc.Float64())
	return nil
}
