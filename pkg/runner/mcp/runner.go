package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/logging"
)

// Transport selects how the server is exposed.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	defaultEndpoint = "/mcp"
)

// Runner serves a session over MCP until ctx is done or stdin closes.
type Runner struct {
	Session *app.Session
	Logger  *log.Logger
	Version string

	Transport Transport
	// http only
	Addr     string
	Endpoint string
	CertFile string
	KeyFile  string
	Out      io.Writer
}

// NewServer builds the MCP server with every tool and resource registered.
func NewServer(version string, svc *Service) *server.MCPServer {
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		"tick MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and edit the active markdown task list. Task ids change when task text changes, so list tasks again after editing text."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) Do(ctx context.Context) error {
	if r.Session == nil {
		return errors.New("can not serve mcp, no session")
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if err := r.Session.Load(ctx); err != nil {
		return err
	}
	srv := NewServer(r.Version, NewService(r.Session))

	updates, err := r.Session.Watch(ctx)
	switch {
	case err == nil:
		go func() {
			for range updates {
				logger.Debug("active document reloaded")
			}
		}()
	case !errors.Is(err, app.ErrNoWatch):
		logger.Warn("watch unavailable", "err", err)
	}

	switch r.Transport {
	case "", TransportStdio:
		logger.Info("serving mcp", "transport", TransportStdio)
		return server.ServeStdio(srv)
	case TransportHTTP:
		return r.serveHTTP(ctx, srv, logger)
	default:
		return fmt.Errorf("unknown mcp transport %q", r.Transport)
	}
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, logger *log.Logger) error {
	if (r.CertFile == "") != (r.KeyFile == "") {
		return errors.New("mcp: tls needs both a certificate and a key")
	}
	addr := r.Addr
	if addr == "" {
		addr = defaultAddr
	}
	endpoint := r.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	mux := http.NewServeMux()
	mux.Handle(endpoint, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logger.Info("serving mcp", "transport", TransportHTTP, "addr", ln.Addr().String(), "path", endpoint)
	r.announce(ln.Addr(), endpoint)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.CertFile != "" {
		err = httpSrv.ServeTLS(ln, r.CertFile, r.KeyFile)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// announce prints a URL a client can paste. Wildcard binds are shown as
// loopback.
func (r Runner) announce(a net.Addr, endpoint string) {
	w := r.Out
	if w == nil {
		w = color.Output
	}
	host, port := "127.0.0.1", ""
	if tcp, ok := a.(*net.TCPAddr); ok {
		port = fmt.Sprint(tcp.Port)
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	} else {
		host = a.String()
	}
	scheme := "http"
	if r.CertFile != "" {
		scheme = "https"
	}
	hostport := host
	if port != "" {
		hostport = net.JoinHostPort(host, port)
	}
	_, _ = fmt.Fprintf(w, "MCP server listening on %s://%s%s\n", scheme, hostport, endpoint)
}
