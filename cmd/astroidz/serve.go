package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/astroidz/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the astroidz SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own independent game. All sessions share the
server's leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.astroidz/host_key

Examples:
  astroidz serve                           # Listen on :23234 with auto-generated key
  astroidz serve --ssh :2222               # Listen on port 2222
  astroidz serve --host-key ./my_host_key  # Use specific host key
  astroidz serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger("astroidz-ssh")

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	board := openBoard(ctx, cfg, logger)
	defer board.Close()

	status := "SSH"
	if board.status == statusOffline {
		status = statusOffline
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        cfg,
		TickRate:    flagFPS,
		Board:       board.Board,
		Status:      status,
		Logger:      logger,
	})
	if err != nil {
		board.Close()
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting astroidz SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		board.Close()
		fail("server: %v", err)
	}
}
