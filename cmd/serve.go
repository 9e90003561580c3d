package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/logging"
	"github.com/abhisek/lingua/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lessons over a JSON HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides LINGUA_ADDR env var)")
	serveCmd.Flags().Duration("session-ttl", time.Hour, "Drop sessions idle for longer than this (0 keeps them until deleted)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if env := os.Getenv("LINGUA_ADDR"); env != "" && !cmd.Flags().Changed("addr") {
		addr = env
	}

	api := server.New(d.orch)
	if ttl, _ := cmd.Flags().GetDuration("session-ttl"); ttl > 0 {
		go api.EvictIdle(ctx, ttl, max(ttl/4, time.Second))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log := logging.Logger()
	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).WithField("model", d.modelLabel()).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
