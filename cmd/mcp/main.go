package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/evgeniy-krivenko/flomo-relay/internal/api/mcptools"
	"github.com/evgeniy-krivenko/flomo-relay/internal/config"
	"github.com/evgeniy-krivenko/flomo-relay/internal/flomo"
	"github.com/evgeniy-krivenko/flomo-relay/internal/usecase/notes"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/gwserver"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/logger/slogx"
)

// Version is set at build time via ldflags.
var Version = "dev"

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run mcp server: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("parse cfg: %v", err)
	}

	// stdout carries the protocol on stdio, so logs always go to stderr.
	if err := slogx.InitGlobal(os.Stderr, cfg.App.LogLevel, cfg.App.Pretty); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	endpoint, err := cfg.Endpoint()
	if err != nil {
		return fmt.Errorf("resolve FLOMO_API_URL: %w", err)
	}

	client, err := flomo.New(flomo.NewOptions(
		endpoint,
		flomo.WithTimeout(cfg.Flomo.Timeout),
		flomo.WithUserAgent(cfg.Flomo.UserAgent),
		flomo.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init flomo client: %v", err)
	}

	uc, err := notes.New(notes.NewOptions(client))
	if err != nil {
		return fmt.Errorf("init notes usecase: %v", err)
	}

	s := mcptools.NewServer(uc, Version)

	slogx.Info(ctx, "starting mcp server")

	switch cfg.MCP.Transport {
	case transportStdio:
		stdio := server.NewStdioServer(s)
		stdio.SetErrorLogger(log.New(os.Stderr, "mcp: ", log.LstdFlags))

		err = stdio.Listen(ctx, os.Stdin, os.Stdout)
	case transportHTTP:
		err = serveHTTP(ctx, cfg.MCP.Addr, s)
	default:
		return fmt.Errorf("unknown MCP_TRANSPORT %q", cfg.MCP.Transport)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func serveHTTP(ctx context.Context, addr string, s *server.MCPServer) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s))

	srv, err := gwserver.New(gwserver.NewOptions(
		addr,
		mux,
		gwserver.WithMiddlewares(gwserver.RequestID, gwserver.AccessLog, gwserver.Recover),
		gwserver.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init mcp http server: %v", err)
	}

	return srv.Run(ctx)
}
