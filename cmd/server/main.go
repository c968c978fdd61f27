package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anonid/internal/audit"
	"anonid/internal/auth"
	"anonid/internal/disclosure"
	disclosurehandler "anonid/internal/disclosure/handler"
	"anonid/internal/identity"
	identityhandler "anonid/internal/identity/handler"
	"anonid/internal/platform/config"
	"anonid/internal/platform/httpserver"
	"anonid/internal/platform/logger"
	"anonid/internal/platform/metrics"
	"anonid/internal/platform/postgres"
	platformredis "anonid/internal/platform/redis"
	"anonid/internal/registry"
	"anonid/internal/risk"
	riskhandler "anonid/internal/risk/handler"
	"anonid/internal/storage"
	httptransport "anonid/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence: in-memory by default, Postgres when configured, with an
	// optional Redis read-through cache in front.
	var identityStore storage.IdentityStore = storage.NewInMemoryIdentityStore()
	var auditStore audit.Store = audit.NewInMemoryStore()
	var orgStore auth.OrganizationStore = auth.NewInMemoryOrganizationStore()

	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pgIdentity := storage.NewPostgresIdentityStore(pool)
		pgAudit := audit.NewPostgresStore(pool)
		pgOrgs := auth.NewPostgresOrganizationStore(pool)
		for _, ensure := range []func(context.Context) error{
			pgIdentity.EnsureSchema, pgAudit.EnsureSchema, pgOrgs.EnsureSchema,
		} {
			if err := ensure(ctx); err != nil {
				log.Error("schema setup failed", "error", err)
				os.Exit(1)
			}
		}
		identityStore = pgIdentity
		auditStore = pgAudit
		orgStore = pgOrgs
		log.Info("postgres storage enabled")
	}

	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis connect failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		identityStore = storage.NewCachedIdentityStore(identityStore, redisClient.Client, config.RecordCacheTTL, log)
		log.Info("redis record cache enabled")
	}

	// Audit pipeline: recorder -> inbox -> worker -> store (+ optional Kafka).
	var publisher audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := audit.NewKafkaPublisher(ctx, cfg.KafkaBrokers, log)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("kafka audit stream enabled", "topic", audit.Topic)
	}

	inbox := make(chan audit.Event, 256)
	recorder := audit.NewRecorder(inbox, log)
	worker := audit.NewWorker(inbox, auditStore, publisher, log, m)
	workerDone := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(workerDone)
	}()

	// Domain services.
	scorer := risk.NewScorer()
	registrar := identity.NewRegistrar(
		identityStore,
		registry.NewMockSource(),
		identity.DefaultPolicy(),
		cfg.Passphrase,
		log,
		m,
	)
	gate := disclosure.NewGate(registrar, scorer, log, m)

	tokens := auth.NewJWTService(cfg.JWTSigningKey, "anonid", "anonid-api")
	authService := auth.NewService(orgStore, tokens, cfg.TokenTTL)

	deps := httptransport.Deps{
		Identity:   identityhandler.New(registrar, scorer, recorder, auditStore, log),
		Risk:       riskhandler.New(scorer, log, m),
		Disclosure: disclosurehandler.New(gate, registrar, recorder, log),
		Auth:       auth.NewHandler(authService, log),
	}
	if cfg.AuthRequired {
		deps.AuthMiddleware = auth.RequireOrganization(tokens, log)
		log.Info("organization auth required on disclosure endpoints")
	}

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(deps))

	go func() {
		log.Info("starting anonid server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	// The worker drains its inbox once the root context is cancelled.
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
	}
}
