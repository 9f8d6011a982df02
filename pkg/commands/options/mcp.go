package options

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// MCPOptions configures how the MCP server is exposed.
type MCPOptions struct {
	Transport string
	Host      string
	Port      int
	Path      string
	TLSCert   string
	TLSKey    string
}

func AddMCPArgs(cmd *cobra.Command, o *MCPOptions) {
	cmd.Flags().StringVar(&o.Transport, "transport", "stdio", "Transport to serve on: stdio or http.")
	cmd.Flags().StringVar(&o.Host, "http-host", "127.0.0.1", "Interface to bind for the http transport.")
	cmd.Flags().IntVar(&o.Port, "http-port", 8080, "Port for the http transport, 0 picks a free one.")
	cmd.Flags().StringVar(&o.Path, "http-path", "/mcp", "Endpoint path for the http transport.")
	cmd.Flags().StringVar(&o.TLSCert, "http-tls-cert", "", "TLS certificate file, serves https together with --http-tls-key.")
	cmd.Flags().StringVar(&o.TLSKey, "http-tls-key", "", "TLS private key file.")
}

// Mode returns the normalized transport name.
func (o *MCPOptions) Mode() (string, error) {
	switch t := strings.ToLower(strings.TrimSpace(o.Transport)); t {
	case "", "stdio":
		return "stdio", nil
	case "http":
		return "http", nil
	default:
		return "", fmt.Errorf("unsupported transport %q, expected stdio or http", o.Transport)
	}
}

// Addr is the listen address for the http transport.
func (o *MCPOptions) Addr() (string, error) {
	if o.Port < 0 || o.Port > 65535 {
		return "", fmt.Errorf("invalid http-port %d", o.Port)
	}
	host := strings.TrimSpace(o.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, strconv.Itoa(o.Port)), nil
}

// Endpoint is the http path, always rooted.
func (o *MCPOptions) Endpoint() string {
	p := strings.TrimSpace(o.Path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// TLS returns the certificate pair. Both or neither must be set.
func (o *MCPOptions) TLS() (cert, key string, err error) {
	cert, key = strings.TrimSpace(o.TLSCert), strings.TrimSpace(o.TLSKey)
	if (cert == "") != (key == "") {
		return "", "", fmt.Errorf("--http-tls-cert and --http-tls-key go together")
	}
	return cert, key, nil
}
