package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/vendwatch/fleet-gateway/internal/api"
	"github.com/vendwatch/fleet-gateway/internal/core/ports"
	"github.com/vendwatch/fleet-gateway/internal/core/service"
	"github.com/vendwatch/fleet-gateway/internal/infrastructure/config"
	"github.com/vendwatch/fleet-gateway/internal/infrastructure/db/jsonfile"
	"github.com/vendwatch/fleet-gateway/internal/infrastructure/db/mongo"
	"github.com/vendwatch/fleet-gateway/internal/infrastructure/db/redis"
	"github.com/vendwatch/fleet-gateway/internal/infrastructure/session"
	"github.com/vendwatch/fleet-gateway/internal/infrastructure/upstream"
	"github.com/vendwatch/fleet-gateway/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Directory store ---
	var (
		directory ports.DirectoryStore
		mongoDB   *gomongo.Database
	)
	switch cfg.Store.Driver {
	case "mongo":
		conn, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = conn.Close(context.Background()) }()
		mongoDB = conn.DB
		directory = mongo.NewDirectoryStore(conn.DB)
	case "file":
		directory = jsonfile.NewDirectoryStore(cfg.Store.UsersPath, cfg.Store.MachinesPath)
	default:
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("unknown store driver")
	}

	// --- Session store ---
	var (
		sessionStore ports.SessionStore
		redisClient  *goredis.Client
	)
	switch cfg.Sessions.Store {
	case "redis":
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = client.Close() }()
		redisClient = client
		sessionStore = session.NewRedisStore(client)
	case "memory":
		sessionStore = session.NewMemoryStore()
	default:
		log.Fatal().Str("store", cfg.Sessions.Store).Msg("unknown session store")
	}

	// --- Credential scheme ---
	var verifier ports.CredentialVerifier
	switch cfg.CredentialScheme {
	case "bcrypt":
		verifier = service.BcryptVerifier{}
	case "plaintext":
		log.Warn().Msg("plaintext credential scheme selected; do not use in production")
		verifier = service.PlaintextVerifier{}
	default:
		log.Fatal().Str("scheme", cfg.CredentialScheme).Msg("unknown credential scheme")
	}

	auditLog := jsonfile.NewAuditLog(cfg.Store.AuditPath)
	upstreamClient := upstream.NewClient(
		cfg.Upstream.BaseURL,
		time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second,
	)

	e := api.NewRouter(api.Dependencies{
		Sessions:      service.NewSessionService(sessionStore, directory, verifier, log),
		Fleet:         service.NewFleetService(directory, auditLog, verifier, log),
		Audit:         service.NewAuditService(auditLog, log),
		Telemetry:     service.NewTelemetryProxy(upstreamClient, log),
		SessionSecret: cfg.SessionSecret,
		PublicDir:     cfg.PublicDir,
		Mongo:         mongoDB,
		Redis:         redisClient,
		Logger:        log,
	})

	log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("fleet gateway listening")
	if err := e.Start(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
