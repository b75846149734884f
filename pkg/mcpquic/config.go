package mcpquic

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"net"
	"time"

	"github.com/quic-go/quic-go"
)

// Wire protocol parameters. Client and server must agree on all of them.
const (
	// ALPNProtocolMCP names the protocol during the TLS handshake.
	ALPNProtocolMCP = "orthograph-mcp-v1"

	// MagicBytesMCP opens every MCP stream, before any JSON-RPC.
	MagicBytesMCP = "MCP1"

	// MaxMessageSize caps a single JSON-RPC line.
	MaxMessageSize = 10 * 1024 * 1024

	DefaultHandshakeTimeout = 10 * time.Second
	DefaultIdleTimeout      = 5 * time.Minute
	DefaultKeepAlive        = 30 * time.Second
)

// ProductionQUICConfig sizes flow-control windows for JSON-RPC traffic
// and keeps idle sessions alive across NAT timeouts.
func ProductionQUICConfig() *quic.Config {
	return &quic.Config{
		MaxStreamReceiveWindow:     10 * 1024 * 1024,
		MaxConnectionReceiveWindow: 50 * 1024 * 1024,
		MaxIdleTimeout:             DefaultIdleTimeout,
		KeepAlivePeriod:            DefaultKeepAlive,
		Allow0RTT:                  false,
		EnableDatagrams:            false,
	}
}

// alpnTLS is the TLS 1.3 base config every variant shares.
func alpnTLS(certs []tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: certs,
		NextProtos:   []string{ALPNProtocolMCP},
		MinVersion:   tls.VersionTLS13,
	}
}

// ServerTLSConfig loads the configured cert/key pair.
func ServerTLSConfig(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, err
	}
	return alpnTLS([]tls.Certificate{cert}), nil
}

// SelfSignedTLSConfig mints a one-year localhost certificate for
// development setups without cert files.
func SelfSignedTLSConfig() (*tls.Config, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("generate serial: %w", err)
	}

	now := time.Now()
	tmpl := x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{Organization: []string{"Orthograph Dev"}},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")},
		NotBefore:    now,
		NotAfter:     now.Add(365 * 24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}

	return alpnTLS([]tls.Certificate{{
		Certificate: [][]byte{der},
		PrivateKey:  key,
	}}), nil
}

// ClientTLSConfig is the dialer-side config. insecure skips certificate
// verification for development against self-signed servers.
func ClientTLSConfig(insecure bool) *tls.Config {
	cfg := alpnTLS(nil)
	cfg.InsecureSkipVerify = insecure
	return cfg
}
