package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/textmath/textmath/internal/config"
	"github.com/textmath/textmath/internal/dependency"
	"github.com/textmath/textmath/internal/session"
	"github.com/textmath/textmath/internal/web"
)

var (
	serveHost    string
	servePort    int
	serveVerbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the textmath web UI",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (default from config)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Verbose logging")
}

func runServe(_ *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if serveVerbose {
		level = slog.LevelDebug
	}
	setupLogging(level)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := dependency.New(cfg)
	if errors.Is(err, config.ErrMissingCredential) {
		cred, _ := cfg.LoadCredential()
		slog.Error("Missing credential, serving configuration error page", "err", err)
		fmt.Printf("❌ %s\n", web.CredentialBanner(cred.EnvVar))
		fmt.Printf("%s Error page on http://%s\n", logo, addr)
		return web.ListenAndServe(ctx, addr, web.CredentialErrorHandler(cred.EnvVar))
	}
	if err != nil {
		return err
	}

	janitor, err := session.NewJanitor(container.Sessions(), cfg.Server.JanitorSpec)
	if err != nil {
		return err
	}
	srv := web.NewServer(container.Sessions(), container.Controller())

	slog.Info("Starting textmath",
		"model", cfg.Agents.Defaults.Model,
		"mode", cfg.Agents.Defaults.Mode,
		"tools", container.Tools().Names(),
		"credential", container.Credential().Source,
	)
	fmt.Printf("%s textmath running on http://%s (Ctrl+C to stop)\n", logo, addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return web.ListenAndServe(gctx, addr, srv.Handler()) })
	g.Go(func() error { return janitor.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}
