package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/biggeezerdevelopment/jsonnum/cmd/jsonnum/normalize"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "jsonnum: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:           "jsonnum",
		Short:         "Reads and rewrites JSON numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(normalize.Command())
	return c
}
