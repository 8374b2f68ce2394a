package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-match3/internal/platform/httpapi"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagSessionTTL  int
	flagOrigins     []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over SSH and a JSON API",
	Long: `Start an SSH server for terminal play and an HTTP JSON API for other
clients. Both share one score database, so SSH players and API sessions
end up on the same leaderboard. Pass an empty address to disable a server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.match3/match3_host_key

Examples:
  match3 serve                           # SSH on :2222, HTTP on :8080
  match3 serve --http ""                 # SSH only
  match3 serve --ssh "" --http :9000     # HTTP only
  match3 serve --cors http://localhost:5173

Users can connect with:
  ssh localhost -p 2222
  curl -X POST localhost:8080/sessions -d '{"level": 1}'`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default :2222, or MATCH3_SSH_ADDR)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (default :8080, or MATCH3_HTTP_ADDR)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagSessionTTL, "session-ttl", 60, "Minutes an untouched API session is kept")
	serveCmd.Flags().StringSliceVar(&flagOrigins, "cors", nil, "Allowed CORS origins (default any)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if !cmd.Flag("ssh").Changed {
		flagSSHAddr = env.SSHAddr
	}
	if !cmd.Flag("http").Changed {
		flagHTTPAddr = env.HTTPAddr
	}
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return fmt.Errorf("nothing to serve: both --ssh and --http are empty")
	}

	// On failure both servers run without scores; the SSH server is given
	// no DBPath so it does not retry the open.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			Store:       store,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
			Logger:      logger.WithPrefix("match3-ssh"),
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return sshServer.Serve(ctx) })
	}

	if flagHTTPAddr != "" {
		api := httpapi.New(httpapi.Options{
			Store:          store,
			Logger:         logger.WithPrefix("match3-http"),
			AllowedOrigins: flagOrigins,
			SessionTTL:     time.Duration(flagSessionTTL) * time.Minute,
			MaxSessions:    1000,
		})
		g.Go(func() error { return api.Serve(ctx, flagHTTPAddr) })
	}

	logger.Info("serving", "ssh", flagSSHAddr, "http", flagHTTPAddr, "db", flagDBPath)
	fmt.Println("Press Ctrl+C to stop")
	return g.Wait()
}
