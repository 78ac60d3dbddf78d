package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/ccdash/internal/server"
	"github.com/theirongolddev/ccdash/internal/watch"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr  string
	flagServeWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve usage data over a local HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().BoolVar(&flagServeWatch, "watch", false, "Invalidate cached results when session logs change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	s, cfg, err := newScanner()
	if err != nil {
		return err
	}
	// Progress lines belong to the reporting commands, not a server.
	s.Progress = nil

	addr := cfg.Listen
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if flagServeWatch {
		w := watch.New(s.Root, s.Cache.Invalidate)
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Printf("watch disabled: %v", err)
			}
		}()
	}

	fmt.Printf("  ccdash listening on http://%s\n", addr)
	fmt.Printf("  Serving usage data from %s\n", s.Root)
	fmt.Printf("  Stop with Ctrl-C\n")

	srv := server.New(server.Config{Addr: addr}, s)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
