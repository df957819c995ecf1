package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/scaff/internal/server"
	"github.com/conneroisu/scaff/internal/watcher"
)

var (
	serveHost   string
	servePort   int
	serveNoOpen bool
	serveDir    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview generated outputs in the browser with live reload",
	Long: `Serve the pipeline output directory: an index of generated artifacts,
raw file views, and WebSocket-driven reload when outputs change.

Examples:
  scaff serve
  scaff serve --port 9000 --no-open
  scaff serve --dir ./generated`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind (default from tool config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to bind (default from tool config)")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "do not open the browser")
	serveCmd.Flags().StringVar(&serveDir, "dir", "", "output directory to serve (default from tool config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadToolConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	serverCfg := cfg.Server
	if serveHost != "" {
		serverCfg.Host = serveHost
	}
	if servePort != 0 {
		serverCfg.Port = servePort
	}
	if serveNoOpen {
		serverCfg.Open = false
	}

	dir := serveDir
	if dir == "" {
		dir = cfg.Output.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	w, err := watcher.New(cfg.Watch.Debounce(), log)
	if err != nil {
		return err
	}
	defer w.Stop()

	srv := server.New(serverCfg, dir, w, log)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Serving %s at %s (Ctrl-C to stop)\n", dir, srv.URL())
	if serverCfg.Open {
		openBrowser(srv.URL())
	}

	return srv.Start(ctx)
}

// openBrowser is best-effort; a headless environment just skips it.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
