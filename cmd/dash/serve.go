package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/games/dash"
	"github.com/vovakirdan/tui-dash/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dash SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game. Progress is kept per SSH user in the
run history database, and every finished run lands in the shared history.

Unset flags fall back to DASH_SSH_ADDR, DASH_HOST_KEY, DASH_DB and
DASH_IDLE_TIMEOUT, read from the environment or a .env file in the
working directory.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dash/host_key

Examples:
  dash serve                           # Listen on :23234 with auto-generated key
  dash serve --ssh :2222               # Listen on port 2222
  dash serve --host-key ./my_host_key  # Use specific host key
  dash serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

// serveEnv maps serve flags to environment variables.
var serveEnv = map[string]string{
	"ssh":          "DASH_SSH_ADDR",
	"host-key":     "DASH_HOST_KEY",
	"db":           "DASH_DB",
	"idle-timeout": "DASH_IDLE_TIMEOUT",
}

// applyEnv fills flags the user did not set from the environment. A missing
// .env file is not an error.
func applyEnv(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	flags := cmd.Flags()
	for name, env := range serveEnv {
		v := os.Getenv(env)
		if v == "" || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := applyEnv(cmd); err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		GameID:      dash.ID,
		TickRate:    flagFPS,
		HoldTimeout: time.Duration(flagHoldMS) * time.Millisecond,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting dash SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: %s\n", connectHint(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// connectHint returns the ssh command for the listen address. A wildcard host
// becomes localhost and the default ssh port needs no -p.
func connectHint(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "ssh " + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	if port == "" || port == "22" {
		return "ssh " + host
	}
	return fmt.Sprintf("ssh %s -p %s", host, port)
}
