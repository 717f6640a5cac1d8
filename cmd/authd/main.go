package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/authd/internal/auth/password"
	"github.com/skillsenselab/authd/internal/auth/token"
	"github.com/skillsenselab/authd/internal/authapi"
	"github.com/skillsenselab/authd/internal/config"
	"github.com/skillsenselab/authd/internal/logger"
	"github.com/skillsenselab/authd/internal/server"
	"github.com/skillsenselab/authd/internal/server/middleware"
	"github.com/skillsenselab/authd/internal/server/respond"
	"github.com/skillsenselab/authd/internal/store"
)

const serviceName = "authd"

func main() {
	var cfg config.Config
	if err := config.Load(serviceName, &cfg); err != nil {
		logger.Fatal("Failed to load configuration", logger.ErrorFields("load_config", err))
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	respond.SetProduction(cfg.App.IsProduction())

	log.Info("Starting service", map[string]interface{}{
		"service":     serviceName,
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.Database, log.WithComponent("store"))
	if err != nil {
		log.Fatal("Failed to open database", logger.ErrorFields("open_store", err))
	}
	defer db.Close()

	tokens, err := token.NewService(cfg.Token)
	if err != nil {
		log.Fatal("Failed to create token service", logger.ErrorFields("token_service", err))
	}

	hasher := password.NewHasher(cfg.Password)

	limiter := middleware.NewLimiter(cfg.RateLimit)
	defer limiter.Close()

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(serviceName)

	handler := authapi.NewHandler(db.Users(), hasher, tokens, log)
	authapi.RegisterRoutes(srv.GinEngine(), handler, limiter, tokens)

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", logger.ErrorFields("start_server", err))
	}

	<-ctx.Done()

	if err := srv.Stop(context.Background()); err != nil {
		log.Error("Shutdown error", logger.ErrorFields("stop_server", err))
	}
}
