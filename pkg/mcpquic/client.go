package mcpquic

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/quic-go/quic-go"
)

var errNotConnected = errors.New("client not connected")

// Client dials an MCP server over QUIC and wraps the mcp-go client on
// top of the stream.
type Client struct {
	addr    string
	tlsConf *tls.Config

	conn   *quic.Conn
	stream *quic.Stream
	mcp    *client.Client
}

func NewClient(addr string, tlsConf *tls.Config) *Client {
	if tlsConf == nil {
		tlsConf = ClientTLSConfig(true) // dev default: insecure
	}
	return &Client{addr: addr, tlsConf: tlsConf}
}

// Connect dials the server, verifies ALPN, opens the stream with the
// magic preamble and runs the MCP initialize round trip.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.dial(ctx); err != nil {
		return err
	}
	return c.handshake(ctx)
}

func (c *Client) dial(ctx context.Context) error {
	conn, err := quic.DialAddr(ctx, c.addr, c.tlsConf, ProductionQUICConfig())
	if err != nil {
		return fmt.Errorf("quic dial %s: %w", c.addr, err)
	}
	if alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn != ALPNProtocolMCP {
		conn.CloseWithError(ConnErrorUnsupportedALPN, "bad ALPN")
		return fmt.Errorf("%w: got %q", ErrUnsupportedALPN, alpn)
	}

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(ConnErrorProtocolViolation, "stream open failed")
		return fmt.Errorf("open stream: %w", err)
	}
	if err := SendMagicBytes(stream); err != nil {
		stream.Close()
		conn.CloseWithError(ConnErrorProtocolViolation, "magic bytes failed")
		return err
	}

	c.conn = conn
	c.stream = stream
	return nil
}

func (c *Client) handshake(ctx context.Context) error {
	mc := client.NewClient(transport.NewIO(c.stream, &streamWriteCloser{c.stream}, nopReadCloser{}))
	if err := mc.Start(ctx); err != nil {
		c.closeTransport()
		return fmt.Errorf("mcp start: %w", err)
	}

	var req mcp.InitializeRequest
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    "orthograph-quic-client",
		Version: "1.0.0",
	}

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := mc.Initialize(initCtx, req); err != nil {
		c.closeTransport()
		return fmt.Errorf("mcp initialize: %w", err)
	}

	c.mcp = mc
	return nil
}

func (c *Client) ListTools(ctx context.Context) (*mcp.ListToolsResult, error) {
	if c.mcp == nil {
		return nil, errNotConnected
	}
	return c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
}

func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if c.mcp == nil {
		return nil, errNotConnected
	}
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return c.mcp.CallTool(ctx, req)
}

func (c *Client) Ping(ctx context.Context) error {
	if c.mcp == nil {
		return errNotConnected
	}
	return c.mcp.Ping(ctx)
}

// Close shuts the MCP client down first, then the stream and connection.
func (c *Client) Close() error {
	if c.mcp != nil {
		c.mcp.Close()
	}
	return c.closeTransport()
}

func (c *Client) closeTransport() error {
	if c.stream != nil {
		c.stream.Close()
	}
	if c.conn != nil {
		c.conn.CloseWithError(ConnErrorNoError, "client closing")
	}
	return nil
}

// Underlying exposes the wrapped mcp-go client for callers that need the
// full API.
func (c *Client) Underlying() *client.Client { return c.mcp }

// streamWriteCloser adapts the stream's write half for transport.NewIO.
// Close shuts only the write direction.
type streamWriteCloser struct{ stream *quic.Stream }

func (w *streamWriteCloser) Write(p []byte) (int, error) { return w.stream.Write(p) }
func (w *streamWriteCloser) Close() error                { return w.stream.Close() }

// nopReadCloser stands in for the stderr reader transport.NewIO expects;
// a QUIC stream has no separate error channel.
type nopReadCloser struct{}

func (nopReadCloser) Read([]byte) (int, error) { return 0, io.EOF }
func (nopReadCloser) Close() error             { return nil }
