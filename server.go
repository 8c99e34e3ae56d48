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

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/snakesladders/api"
	"github.com/wricardo/mcp-training/snakesladders/game/config"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
	"github.com/wricardo/mcp-training/snakesladders/game/session"
	"github.com/wricardo/mcp-training/snakesladders/transport/mcp"
	"github.com/wricardo/mcp-training/snakesladders/transport/websocket"
)

// app holds the wired services shared by the commands
type app struct {
	settings Settings
	logger   *zap.Logger
	sessions *session.Manager
	service  service.GameService
}

// newApp wires the session and tier managers into the game service
func newApp(s Settings, logger *zap.Logger) (*app, error) {
	var tiers *config.Manager
	var err error
	if s.TierDir != "" {
		tiers, err = config.NewManager(s.TierDir)
	} else {
		tiers, err = config.NewDefaultManager()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create tier manager: %w", err)
	}

	sessions := session.NewManager()
	return &app{
		settings: s,
		logger:   logger,
		sessions: sessions,
		service:  service.NewGameService(sessions, tiers, service.WithLogger(logger)),
	}, nil
}

// handler combines the REST API, WebSocket and the /mcp endpoint.
// baseURL is where the MCP proxy reaches the REST API.
func (a *app) handler(hub *websocket.Hub, baseURL string) http.Handler {
	apiServer := api.NewServer(a.service, hub, a.logger)
	mcpClient := mcp.NewClient(baseURL)

	mux := http.NewServeMux()
	mux.Handle("/", apiServer)
	mux.HandleFunc("/mcp", mcpHandler(mcpClient.GetMCPServer()))
	return mux
}

// mcpHandler serves single JSON-RPC messages over HTTP POST
func mcpHandler(mcpServer *server.MCPServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		response := mcpServer.HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// runHTTPServer serves until ctx is cancelled or a signal arrives.
// If ngrok is enabled, it also provisions a public tunnel.
func (a *app) runHTTPServer(ctx context.Context) error {
	ctx, stop := notifyContext(ctx)
	defer stop()

	addr := a.settings.Addr()

	hub := websocket.NewHub(a.logger)
	go hub.Run(ctx)

	handler := a.handler(hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.sessionCleanupRoutine(ctx)
	}()

	if a.settings.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.serveNgrok(ctx, handler)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server listening",
			zap.String("addr", addr),
			zap.String("api", fmt.Sprintf("http://%s/api", addr)),
			zap.String("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)),
			zap.String("mcp", fmt.Sprintf("http://%s/mcp", addr)))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case serveErr = <-errCh:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	wg.Wait()
	a.logger.Info("server stopped")
	if serveErr != nil {
		return fmt.Errorf("HTTP server failed: %w", serveErr)
	}
	return nil
}

// serveNgrok exposes handler through an ngrok tunnel until ctx is done
func (a *app) serveNgrok(ctx context.Context, handler http.Handler) {
	if a.settings.NgrokAuthToken == "" {
		a.logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if a.settings.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(a.settings.NgrokDomain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(a.settings.NgrokAuthToken))
	if err != nil {
		a.logger.Error("failed to start ngrok tunnel", zap.Error(err))
		return
	}

	url := tun.URL()
	a.logger.Info("ngrok tunnel established",
		zap.String("url", url),
		zap.String("api", url+"/api"),
		zap.String("mcp", url+"/mcp"))

	srv := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
		tun.Close()
	}()

	if err := srv.Serve(tun); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Warn("ngrok server error", zap.Error(err))
	}
	a.logger.Info("ngrok tunnel closed")
}

// sessionCleanupRoutine removes sessions idle for longer than the configured TTL
func (a *app) sessionCleanupRoutine(ctx context.Context) {
	ttl := a.settings.SessionTTL
	if ttl <= 0 {
		return
	}

	interval := time.Hour
	if ttl/2 < interval {
		interval = ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := a.sessions.CleanupExpiredSessions(ttl); removed > 0 {
				a.logger.Info("cleaned up expired sessions", zap.Int("removed", removed))
			}
		}
	}
}

// runStdioMCP runs an MCP stdio server.
// It reuses an API already listening on the configured address; otherwise it
// starts an internal HTTP API on a random loopback port and targets that.
func (a *app) runStdioMCP(ctx context.Context) error {
	ctx, stop := notifyContext(ctx)
	defer stop()

	externalURL := fmt.Sprintf("http://%s", a.settings.Addr())
	baseURL := externalURL

	if !apiAvailable(ctx, externalURL) {
		a.logger.Info("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = fmt.Sprintf("http://%s", listener.Addr().String())

		hub := websocket.NewHub(a.logger)
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: a.handler(hub, baseURL)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("internal HTTP server error", zap.Error(err))
			}
		}()
		defer httpServer.Close()

		go a.sessionCleanupRoutine(ctx)
	}

	a.logger.Info("MCP stdio server ready", zap.String("api", baseURL))

	mcpClient := mcp.NewClient(baseURL)
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiAvailable reports whether a healthy API answers at baseURL
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
