package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newRootCmd builds a fresh command tree, so flag state never outlives one execution.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "quantize",
		Short:         "Reduce an image's palette with k-means clustering",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.AddCommand(newRunCmd(), newPaletteCmd())
	return rootCmd
}

func main() {
	// Create a context that can be canceled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle termination signals
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalChan
		fmt.Fprintln(os.Stderr, "Received termination signal, shutting down...")
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger builds the console logger configured by --log-level.
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}
