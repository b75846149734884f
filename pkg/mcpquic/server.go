package mcpquic

import (
	"bufio"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"

	"github.com/scriptorivm/orthograph/pkg/kit"
)

// Handler serves individual MCP-over-QUIC connections without owning a
// listener. The chassis hands it connections after ALPN demuxing; the
// standalone Listener below wraps it with its own accept loop.
type Handler struct {
	srv    *server.MCPServer
	logger *slog.Logger
}

func NewHandler(srv *server.MCPServer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{srv: srv, logger: logger}
}

// newSessionID mints a short random session identifier.
func newSessionID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return "quic_" + hex.EncodeToString(b)
}

// ServeConn runs one QUIC connection as one MCP session: accept the
// stream, check the preamble, register with the MCP server, then pump
// JSON-RPC lines both ways until the peer goes away.
func (h *Handler) ServeConn(ctx context.Context, conn *quic.Conn) {
	remote := conn.RemoteAddr().String()
	h.logger.Info("MCP peer connected", "remote", remote)

	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		h.logger.Error("MCP stream accept failed", "remote", remote, "error", err)
		conn.CloseWithError(ConnErrorProtocolViolation, "stream accept failed")
		return
	}

	if err := ValidateMagicBytes(stream); err != nil {
		h.logger.Error("MCP preamble rejected", "remote", remote, "error", err)
		stream.CancelWrite(StreamErrorProtocolConfusion)
		stream.CancelRead(StreamErrorProtocolConfusion)
		conn.CloseWithError(ConnErrorProtocolViolation, "invalid magic bytes")
		return
	}

	sid := newSessionID()
	sess := newSession(sid, stream)
	if err := h.srv.RegisterSession(ctx, sess); err != nil {
		h.logger.Error("MCP session register failed", "session", sid, "error", err)
		stream.Close()
		return
	}
	defer h.srv.UnregisterSession(ctx, sid)
	h.logger.Info("MCP session open", "session", sid, "remote", remote)

	ctx = kit.WithTransport(ctx, "mcp_quic")
	ctx = h.srv.WithContext(ctx, sess)

	go sess.pumpNotifications(ctx)

	h.serveStream(ctx, sess, stream)
	h.logger.Info("MCP session closed", "session", sid, "remote", remote)
}

// serveStream reads newline-delimited JSON-RPC messages until the stream
// closes or a message exceeds MaxMessageSize.
func (h *Handler) serveStream(ctx context.Context, sess *session, stream *quic.Stream) {
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 64*1024), MaxMessageSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := h.srv.HandleMessage(ctx, json.RawMessage(line))
		if resp == nil {
			continue // notification, nothing to send back
		}

		data, err := json.Marshal(resp)
		if err != nil {
			h.logger.Error("MCP marshal failed", "session", sess.id, "error", err)
			continue
		}
		if err := sess.writeLine(data); err != nil {
			h.logger.Error("MCP write error", "session", sess.id, "error", err)
			return
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			h.logger.Error("MCP message too large", "session", sess.id, "limit", MaxMessageSize)
			stream.CancelRead(StreamErrorMessageTooLarge)
			stream.CancelWrite(StreamErrorMessageTooLarge)
			return
		}
		if ctx.Err() == nil {
			h.logger.Error("MCP read error", "session", sess.id, "error", err)
		}
	}
}

// Listener is the standalone accept loop for deployments that expose MCP
// on its own port instead of behind the chassis.
type Listener struct {
	ln      *quic.Listener
	handler *Handler
	logger  *slog.Logger
}

func NewListener(addr string, tlsConf *tls.Config, srv *server.MCPServer, logger *slog.Logger) (*Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ln, err := quic.ListenAddr(addr, tlsConf, ProductionQUICConfig())
	if err != nil {
		return nil, err
	}
	logger.Info("MCP QUIC listener ready", "addr", addr)
	return &Listener{ln: ln, handler: NewHandler(srv, logger), logger: logger}, nil
}

func (l *Listener) Serve(ctx context.Context) error {
	for {
		conn, err := l.ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Error("MCP accept error", "error", err)
			continue
		}

		if alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn != ALPNProtocolMCP {
			conn.CloseWithError(ConnErrorUnsupportedALPN, "unsupported ALPN: "+alpn)
			continue
		}

		go l.handler.ServeConn(ctx, conn)
	}
}

func (l *Listener) Close() error { return l.ln.Close() }

// session implements server.ClientSession for one QUIC connection. Every
// stream write goes through writeLine so responses and notifications
// never interleave mid-message.
type session struct {
	id            string
	notifications chan mcp.JSONRPCNotification
	initialized   atomic.Bool

	mu  sync.Mutex
	out io.Writer
}

func newSession(id string, out io.Writer) *session {
	return &session{
		id:            id,
		notifications: make(chan mcp.JSONRPCNotification, 100),
		out:           out,
	}
}

func (s *session) SessionID() string                                   { return s.id }
func (s *session) NotificationChannel() chan<- mcp.JSONRPCNotification { return s.notifications }
func (s *session) Initialize()                                         { s.initialized.Store(true) }
func (s *session) Initialized() bool                                   { return s.initialized.Load() }

// writeLine appends the NDJSON delimiter and writes the whole message
// under the session lock.
func (s *session) writeLine(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.out.Write(append(data, '\n'))
	return err
}

func (s *session) pumpNotifications(ctx context.Context) {
	for {
		select {
		case notif := <-s.notifications:
			data, err := json.Marshal(notif)
			if err != nil {
				continue
			}
			_ = s.writeLine(data)
		case <-ctx.Done():
			return
		}
	}
}
