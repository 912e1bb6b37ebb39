package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/The-Wary-One/lens-protocol/internal/adapters/cache"
	"github.com/The-Wary-One/lens-protocol/internal/adapters/clients"
	eventadapter "github.com/The-Wary-One/lens-protocol/internal/adapters/events"
	httpadapter "github.com/The-Wary-One/lens-protocol/internal/adapters/http"
	"github.com/The-Wary-One/lens-protocol/internal/adapters/postgres"
	"github.com/The-Wary-One/lens-protocol/internal/adapters/security"
	"github.com/The-Wary-One/lens-protocol/internal/application"
	"github.com/The-Wary-One/lens-protocol/internal/ports"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	outbox     *eventadapter.OutboxWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	var cacheStore ports.Cache
	var redisCloser io.Closer
	if cfg.RedisURL != "" {
		redisClient, redisErr := cache.Connect(ctx, cfg.RedisURL)
		if redisErr != nil {
			_ = sqlDB.Close()
			return nil, redisErr
		}
		cacheStore = cache.NewRedisCache(redisClient)
		redisCloser = redisClient
	}

	collaborators, err := buildCollaborators(cfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	repos := postgres.NewRepositories(db)
	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:    cfg.ServiceID,
			ConfigCacheTTL: cfg.ConfigCacheTTL,
		},
		Configs:   repos.Configs,
		Follows:   repos.Follows,
		Outbox:    repos.Outbox,
		Receipts:  collaborators.receipts,
		Streams:   collaborators.streams,
		Registry:  collaborators.registry,
		Transfers: collaborators.transfers,
		Cache:     cacheStore,
	})

	var verifier ports.HostTokenVerifier
	if cfg.HostAuthSecret != "" {
		verifier, err = security.NewHostTokenVerifier(cfg.HostAuthSecret, cfg.HostAuthIssuer)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	} else {
		logger.WarnContext(ctx, "host auth secret not set, mutating endpoints are unauthenticated")
	}

	handler := httpadapter.NewHandler(service, verifier)
	router := httpadapter.NewRouter(logger, handler, func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return sqlDB.PingContext(pingCtx)
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		if redisCloser != nil {
			_ = redisCloser.Close()
		}
		_ = sqlDB.Close()
		return nil, err
	}

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	var closers []io.Closer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			"follow.recorded":            cfg.KafkaTopicFollowRecorded,
			"follow.profile_initialized": cfg.KafkaTopicProfileInitDone,
		})
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}
	}
	outbox := eventadapter.NewOutboxWorker(logger, repos.Outbox, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		outbox:     outbox,
		cleanupFn: func(context.Context) {
			for _, closer := range closers {
				_ = closer.Close()
			}
			if redisCloser != nil {
				_ = redisCloser.Close()
			}
			_ = sqlDB.Close()
		},
	}, nil
}

type collaboratorSet struct {
	receipts  ports.ReceiptRegistry
	streams   ports.StreamLedger
	registry  ports.ModuleRegistry
	transfers ports.TokenTransfer
}

// buildCollaborators wires HTTP clients for each configured collaborator
// URL and memory-backed stand-ins for the rest. Partial wiring is
// deliberate: a staging ledger can be exercised against in-process
// receipts and transfers.
func buildCollaborators(cfg Config) (collaboratorSet, error) {
	set := collaboratorSet{
		receipts:  clients.NewMemoryReceiptRegistry(),
		streams:   clients.NewMemoryStreamLedger(),
		registry:  clients.NewMemoryModuleRegistry("", 0),
		transfers: clients.NewMemoryTokenTransfer(),
	}
	if cfg.ReceiptRegistryURL != "" {
		receipts, err := clients.NewReceiptRegistryClient(cfg.ReceiptRegistryURL, nil)
		if err != nil {
			return collaboratorSet{}, err
		}
		set.receipts = receipts
	}
	if cfg.StreamLedgerURL != "" {
		streams, err := clients.NewStreamLedgerClient(cfg.StreamLedgerURL, nil)
		if err != nil {
			return collaboratorSet{}, err
		}
		set.streams = streams
	}
	if cfg.ModuleRegistryURL != "" {
		registry, err := clients.NewModuleRegistryClient(cfg.ModuleRegistryURL, nil)
		if err != nil {
			return collaboratorSet{}, err
		}
		set.registry = registry
	}
	if cfg.TokenTransferURL != "" {
		transfers, err := clients.NewTokenTransferClient(cfg.TokenTransferURL, nil)
		if err != nil {
			return collaboratorSet{}, err
		}
		set.transfers = transfers
	}
	return set, nil
}

func Build(ctx context.Context, configPath string) (*Runtime, error) {
	return NewRuntime(ctx, configPath)
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := r.outbox.Run(ctx)
	r.cleanupFn(context.Background())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
