// Package chassis runs the whole serving surface on one port.
//
// A TCP listener carries HTTP/1.1 and HTTP/2 over TLS for the REST API.
// A UDP listener on the same address carries QUIC and splits incoming
// connections by negotiated ALPN:
//
//	"h3"                -> HTTP/3, same handler as the TCP side
//	"orthograph-mcp-v1" -> MCP JSON-RPC over a QUIC stream
//
// Every HTTP response advertises the QUIC side through Alt-Svc, so
// capable clients migrate to HTTP/3 on their own. Without configured
// cert/key files the chassis mints a self-signed ECDSA P-256 certificate
// for development use.
package chassis

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"

	"github.com/scriptorivm/orthograph/pkg/mcpquic"
)

// Server owns the paired TCP and UDP listeners and their HTTP/3 and MCP
// frontends.
type Server struct {
	addr       string
	logger     *slog.Logger
	tlsConf    *tls.Config
	apiHandler http.Handler
	mcpHandler *mcpquic.Handler

	mu      sync.Mutex
	httpSrv *http.Server
	h3Srv   *http3.Server
	udpLn   *quic.Listener
}

// Config configures the chassis.
type Config struct {
	Addr      string            // listen address, one port for TCP and UDP (e.g. ":8443")
	TLS       *tls.Config       // nil: derive from CertFile/KeyFile or self-sign
	CertFile  string            // PEM cert path for production
	KeyFile   string            // PEM key path for production
	Handler   http.Handler      // API mux served on every HTTP variant
	MCPServer *server.MCPServer // nil disables the MCP ALPN branch
	Logger    *slog.Logger
}

// New validates the config and prepares TLS material. No socket is
// opened until Start.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	tlsConf, err := resolveTLS(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr:       cfg.Addr,
		logger:     cfg.Logger,
		tlsConf:    tlsConf,
		apiHandler: cfg.Handler,
	}
	if cfg.MCPServer != nil {
		s.mcpHandler = mcpquic.NewHandler(cfg.MCPServer, cfg.Logger)
	}
	return s, nil
}

func resolveTLS(cfg Config) (*tls.Config, error) {
	if cfg.TLS != nil {
		return cfg.TLS, nil
	}
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		tc, err := ProductionTLSConfig(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS cert: %w", err)
		}
		cfg.Logger.Info("TLS: production certs loaded")
		return tc, nil
	}
	tc, err := DevelopmentTLSConfig()
	if err != nil {
		return nil, fmt.Errorf("generate dev TLS: %w", err)
	}
	cfg.Logger.Info("TLS: self-signed dev cert generated")
	return tc, nil
}

// hardenHeaders sets the standard response headers. The CSP allows
// nothing at all since the API serves only JSON.
func hardenHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// advertiseH3 attaches the Alt-Svc header pointing clients at the QUIC
// listener on the same port.
func advertiseH3(addr string, next http.Handler) http.Handler {
	_, port, _ := net.SplitHostPort(addr)
	if port == "" {
		port = "8443"
	}
	value := fmt.Sprintf(`h3=":%s"; ma=86400`, port)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Alt-Svc", value)
		next.ServeHTTP(w, r)
	})
}

// Start opens both listeners and blocks until ctx is cancelled or either
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	wrapped := hardenHeaders(advertiseH3(s.addr, s.apiHandler))

	tcpTLS := s.tlsConf.Clone()
	tcpTLS.NextProtos = []string{"h2", "http/1.1"}

	udpLn, err := quic.ListenAddr(s.addr, s.tlsConf, mcpquic.ProductionQUICConfig())
	if err != nil {
		return fmt.Errorf("QUIC listen: %w", err)
	}

	s.mu.Lock()
	s.httpSrv = &http.Server{Addr: s.addr, Handler: wrapped, TLSConfig: tcpTLS}
	s.h3Srv = &http3.Server{Handler: wrapped}
	s.udpLn = udpLn
	s.mu.Unlock()

	s.logger.Info("chassis started",
		"addr", s.addr,
		"tcp", "HTTP/1.1+HTTP/2 (TLS)",
		"udp", "QUIC (HTTP/3 + MCP)",
	)

	errCh := make(chan error, 2)
	go s.serveTCP(tcpTLS, errCh)
	go s.acceptQUIC(ctx, udpLn, errCh)

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) serveTCP(tcpTLS *tls.Config, errCh chan<- error) {
	ln, err := tls.Listen("tcp", s.addr, tcpTLS)
	if err != nil {
		errCh <- fmt.Errorf("TCP listen: %w", err)
		return
	}
	s.logger.Info("TCP listener ready", "addr", s.addr, "proto", "HTTP/1.1+HTTP/2")
	if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
		errCh <- fmt.Errorf("TCP serve: %w", err)
	}
}

// acceptQUIC routes each QUIC connection by its negotiated ALPN.
func (s *Server) acceptQUIC(ctx context.Context, ln *quic.Listener, errCh chan<- error) {
	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			errCh <- fmt.Errorf("QUIC accept: %w", err)
			return
		}

		switch alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn {
		case "h3":
			go func() {
				if err := s.h3Srv.ServeQUICConn(conn); err != nil {
					s.logger.Debug("HTTP/3 conn done", "remote", conn.RemoteAddr(), "error", err)
				}
			}()
		case mcpquic.ALPNProtocolMCP:
			if s.mcpHandler == nil {
				conn.CloseWithError(quic.ApplicationErrorCode(0x10), "MCP not enabled")
				continue
			}
			go s.mcpHandler.ServeConn(ctx, conn)
		default:
			s.logger.Warn("unknown ALPN, closing", "alpn", alpn, "remote", conn.RemoteAddr())
			conn.CloseWithError(quic.ApplicationErrorCode(0x11), "unsupported ALPN: "+alpn)
		}
	}
}

// Stop drains the HTTP server and closes the QUIC side. The first error
// wins; later ones are dropped.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("chassis stopping")

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.httpSrv != nil {
		keep(s.httpSrv.Shutdown(ctx))
	}
	if s.udpLn != nil {
		keep(s.udpLn.Close())
	}
	if s.h3Srv != nil {
		keep(s.h3Srv.Close())
	}

	s.logger.Info("chassis stopped")
	return firstErr
}
