package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/evgeniy-krivenko/flomo-relay/internal/api/notes"
	"github.com/evgeniy-krivenko/flomo-relay/internal/api/relay"
	"github.com/evgeniy-krivenko/flomo-relay/internal/config"
	"github.com/evgeniy-krivenko/flomo-relay/internal/flomo"
	notesuc "github.com/evgeniy-krivenko/flomo-relay/internal/usecase/notes"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/grpcx"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/gwserver"
	"github.com/evgeniy-krivenko/flomo-relay/pkg/logger/slogx"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("parse cfg: %v", err)
	}

	if err := slogx.InitGlobal(os.Stdout, cfg.App.LogLevel, cfg.App.Pretty); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	endpoint, err := cfg.Endpoint()
	if err != nil {
		return fmt.Errorf("resolve FLOMO_API_URL: %w", err)
	}

	flomoClient, err := flomo.New(flomo.NewOptions(
		endpoint,
		flomo.WithTimeout(cfg.Flomo.Timeout),
		flomo.WithUserAgent(cfg.Flomo.UserAgent),
		flomo.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init flomo client: %v", err)
	}

	notesUC, err := notesuc.New(notesuc.NewOptions(flomoClient))
	if err != nil {
		return fmt.Errorf("init notes usecase: %v", err)
	}

	httpSrv, err := gwserver.New(gwserver.NewOptions(
		cfg.HTTP.Addr,
		relay.New(notesUC).Routes(),
		gwserver.WithMiddlewares(gwserver.RequestID, gwserver.AccessLog, gwserver.Recover),
		gwserver.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init http server: %v", err)
	}

	grpcSrv, err := grpcx.New(grpcx.NewOptions(
		cfg.GRPC.Addr,
		grpcx.WithServices(notes.New(notesUC)),
		grpcx.WithUnaryInterceptors(slogx.LoggingInterceptor),
		grpcx.WithLogger(slogx.Default()),
		grpcx.WithTime(cfg.GRPC.KeepaliveTime),
		grpcx.WithTimeout(cfg.GRPC.KeepaliveTimeout),
		grpcx.WithMaxConcurrentStreams(cfg.GRPC.MaxConcurrentStreams),
	))
	if err != nil {
		return fmt.Errorf("init grpc server: %v", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return httpSrv.Run(ctx) })
	eg.Go(func() error { return grpcSrv.Run(ctx) })

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %v", err)
	}

	return nil
}
