// Command escaperoom runs the Escape Room game.
//
// It supports three commands:
//  1. "serve" (default) – runs the HTTP server exposing the REST API, WebSocket, the browser board and an /mcp endpoint
//  2. "play" – plays one game in the terminal
//  3. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Every flag can also be set from the environment or a .env file, and
// serve can optionally publish itself through an ngrok tunnel.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/escaperoom/api"
	"github.com/wricardo/escaperoom/game/config"
	"github.com/wricardo/escaperoom/game/engine"
	"github.com/wricardo/escaperoom/game/service"
	"github.com/wricardo/escaperoom/game/session"
	"github.com/wricardo/escaperoom/transport/console"
	"github.com/wricardo/escaperoom/transport/mcp"
	"github.com/wricardo/escaperoom/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Escape Room"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("Error loading .env file")
		}
	} else {
		log.Debug("Loaded environment variables from .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout).Run(ctx, os.Args); err != nil {
		log.WithError(err).Fatal("escaperoom failed")
	}
}

// newApp builds the command tree. in and out are used by the play command.
func newApp(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "escaperoom",
		Usage:   "grid maze game: collect the prizes, avoid the walls and the hidden traps",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing room configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "log format: text or json",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, configureLogging(cmd.Bool("debug"), cmd.String("log-format"), log.InfoLevel)
		},
		Commands: []*cli.Command{
			serveCommand(),
			playCommand(in, out),
			mcpCommand(),
		},
		DefaultCommand: "serve",
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "HTTP server port",
			Sources: cli.EnvVars("PORT"),
		},
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "HTTP server host",
			Sources: cli.EnvVars("HOST"),
		},
		&cli.DurationFlag{
			Name:    "session-ttl",
			Value:   24 * time.Hour,
			Usage:   "remove sessions idle for longer than this",
			Sources: cli.EnvVars("SESSION_TTL"),
		},
		&cli.BoolFlag{
			Name:    "ngrok",
			Usage:   "publish the server through an ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    "ngrok-auth",
			Usage:   "ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "ngrok-domain",
			Usage:   "custom ngrok domain (optional)",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"server", "http"},
		Usage:   "run the HTTP server with REST API, WebSocket, browser board and MCP endpoint",
		Flags:   serveFlags(),
		Action:  runServe,
	}
}

func playCommand(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play one game in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "room",
				Value:   config.DefaultConfigName,
				Usage:   "room configuration to play",
				Sources: cli.EnvVars("ROOM"),
			},
			&cli.Int64Flag{
				Name:    "seed",
				Usage:   "layout seed (0 picks one from the clock)",
				Sources: cli.EnvVars("SEED"),
			},
			&cli.BoolFlag{
				Name:  "board",
				Usage: "print the board after every command",
			},
			&cli.BoolFlag{
				Name:  "reveal",
				Usage: "draw hidden traps on the board (implies --board)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPlay(ctx, cmd, in, out)
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "run an MCP stdio server backed by a running or internal HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   "http://localhost:8080",
				Usage:   "API server to use when it is reachable",
				Sources: cli.EnvVars("ESCAPEROOM_API_URL"),
			},
		},
		Action: runMCP,
	}
}

// configureLogging sets level and format of the package-level logger
func configureLogging(debug bool, format string, level log.Level) error {
	switch format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q (use text or json)", format)
	}

	if debug {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	return nil
}

// loadConfigs opens the config directory, falling back to the built-in
// classic room when it does not exist
func loadConfigs(dir string) *config.Manager {
	configs, err := config.NewManager(dir)
	if err != nil {
		log.WithError(err).WithField("dir", dir).Warn("Using the built-in classic room")
		return config.NewBuiltinManager()
	}
	return configs
}

// runPlay plays one console game
func runPlay(ctx context.Context, cmd *cli.Command, in io.Reader, out io.Writer) error {
	// Game text goes to stdout; keep the log quiet unless asked
	if err := configureLogging(cmd.Bool("debug"), cmd.String("log-format"), log.WarnLevel); err != nil {
		return err
	}

	room, err := loadConfigs(cmd.String("config-dir")).LoadConfig(cmd.String("room"))
	if err != nil {
		return fmt.Errorf("failed to load room %q: %w", cmd.String("room"), err)
	}

	var opts []engine.Option
	if seed := cmd.Int64("seed"); seed != 0 {
		opts = append(opts, engine.WithSeed(seed))
	}
	eng, err := engine.NewEngine(room, opts...)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	var consoleOpts []console.Option
	if cmd.Bool("board") || cmd.Bool("reveal") {
		consoleOpts = append(consoleOpts, console.WithBoard(cmd.Bool("reveal")))
	}

	game := console.New(eng, in, out, consoleOpts...)

	type played struct {
		summary *console.Summary
		err     error
	}
	done := make(chan played, 1)
	go func() {
		summary, err := game.Run(ctx)
		done <- played{summary, err}
	}()

	// A pending read on the terminal does not see ctx; stop waiting for it
	var result played
	select {
	case result = <-done:
	case <-ctx.Done():
		return nil
	}
	if result.err != nil && !errors.Is(result.err, context.Canceled) {
		return result.err
	}

	log.WithFields(log.Fields{
		"room":     room.Name,
		"seed":     eng.GetSeed(),
		"score":    result.summary.Score,
		"steps":    result.summary.Steps,
		"round":    result.summary.Round,
		"commands": result.summary.Commands,
	}).Debug("Game finished")
	return nil
}

// initializeServices wires the session and config managers into the game
// service and starts the session sweeper
func initializeServices(ctx context.Context, configDir string, ttl time.Duration) service.GameService {
	sessionManager := session.NewManager()
	sessionManager.StartSweeper(ctx, time.Hour, ttl)

	return service.NewGameService(sessionManager, loadConfigs(configDir))
}

// newHandler mounts the API at the root and the MCP JSON-RPC endpoint at /mcp
func newHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runServe starts the HTTP server with REST API, WebSocket hub and the /mcp
// endpoint. With --ngrok it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gameService := initializeServices(ctx, cmd.String("config-dir"), cmd.Duration("session-ttl"))

	hub := websocket.NewHub()
	go hub.Run(ctx)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	handler := newHandler(api.NewServer(gameService, hub), mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.WithFields(log.Fields{
			"addr":      addr,
			"api":       fmt.Sprintf("http://%s/api", addr),
			"websocket": fmt.Sprintf("ws://%s/ws?session=<session_id>", addr),
			"mcp":       fmt.Sprintf("http://%s/mcp", addr),
		}).Infof("%s v%s listening", AppName, Version)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runTunnel(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), handler)
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		log.Info("Shutting down...")
	case err = <-serveErr:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.WithError(shutdownErr).Warn("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info("Server stopped")
	return err
}

// runTunnel serves handler through ngrok until ctx is done
func runTunnel(ctx context.Context, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		log.Warn("Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN or NGROK_AUTH_TOKEN)")
		return
	}

	log.Info("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.WithField("domain", domain).Info("Using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.WithError(err).Error("Failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.WithError(err).Warn("Failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.WithFields(log.Fields{
		"api":       ngrokURL + "/api",
		"websocket": ngrokURL + "/ws?session=<session_id>",
		"mcp":       ngrokURL + "/mcp",
		"board":     ngrokURL + "/",
	}).Infof("Ngrok tunnel established: %s", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.WithError(err).Error("Ngrok server error")
	}
	log.Info("Ngrok tunnel closed")
}

// apiAvailable reports whether an API server answers at baseURL
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalServer serves the API on a random loopback port and returns
// its base URL
func startInternalServer(ctx context.Context, gameService service.GameService) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to get available port: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}

	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Internal HTTP server error")
		}
	}()
	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	return fmt.Sprintf("http://%s", listener.Addr().String()), nil
}

// runMCP runs an MCP stdio server. It reuses the API at --api-url when it
// answers; otherwise it starts an internal API on a loopback port.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	baseURL := cmd.String("api-url")

	log.WithField("url", baseURL).Info("Checking for external API server")
	if apiAvailable(baseURL) {
		log.Info("MCP stdio server ready (using external HTTP server)")
	} else {
		gameService := initializeServices(ctx, cmd.String("config-dir"), 24*time.Hour)

		var err error
		baseURL, err = startInternalServer(ctx, gameService)
		if err != nil {
			return err
		}
		log.WithField("url", baseURL).Info("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
