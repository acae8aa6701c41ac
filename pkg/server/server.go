package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Layr-Labs/colorchain-go/pkg/bridge"
	"github.com/Layr-Labs/colorchain-go/pkg/config"
	"go.uber.org/zap"
)

/*
Server exposes the bridge operations to hosts that talk HTTP.

  POST /address
    - Request: { privateKey }
    - Response: { address } in short display form

  POST /balance
    - Request: { address, rpcUrl, callbackUrl? }
    - Response: { callbacks: [{ handler: "set_balance", args: ["<wei>"] }] }

  POST /color
    - Request: { privateKey, chainId, contractAddress, rpcUrl, callbackUrl? }
    - Response: { callbacks: [{ handler: "set_color", args: ["{\"r\":..,\"g\":..,\"b\":..}"] }] }

  POST /color/send
    - Request: { privateKey, chainId, contractAddress, rpcUrl, color: { r, g, b } }
    - Response: { receipt } once the transaction is mined

When callbackUrl is set the callback is also POSTed there. Failures return
{ kind, message } and never produce a callback.
*/

// DefaultCallbackTimeout bounds delivery of a callback to a host URL
const DefaultCallbackTimeout = 10 * time.Second

// Server handles HTTP requests for the bridge
type Server struct {
	bridge         *bridge.Bridge
	logger         *zap.Logger
	callbackClient *http.Client
	httpServer     *http.Server
}

// NewServer creates a new server instance
func NewServer(b *bridge.Bridge, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		bridge:         b,
		logger:         logger,
		callbackClient: &http.Client{Timeout: DefaultCallbackTimeout},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/address", s.handleGetAddress)
	mux.HandleFunc("/balance", s.handleGetBalance)
	mux.HandleFunc("/color", s.handleGetColor)
	mux.HandleFunc("/color/send", s.handleSendColor)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go func() {
		s.logger.Sugar().Infow("Starting HTTP server", "port", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Sugar().Errorw("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Stop waits for in flight requests to finish, up to ctx's deadline
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// GetHandler returns the HTTP handler (for testing)
func (s *Server) GetHandler() http.Handler {
	return s.httpServer.Handler
}
