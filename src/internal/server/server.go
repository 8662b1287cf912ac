package server

import (
	"commerce-admin-svc/src/clients"
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/dependency"
	"commerce-admin-svc/src/internal/middleware"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

type Server struct {
	cfg  *config.Configuration
	deps *dependency.Manager
	http *http.Server
}

func New(cfg *config.Configuration) (*Server, error) {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	mongodb, err := clients.NewMongoDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	redisClient, err := clients.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	rabbitMQ, err := clients.NewRabbitMQ(&cfg.Queue)
	if err != nil {
		return nil, err
	}

	if err := rabbitMQ.SetupExchange(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	deps := dependency.NewDependencyManager(router, mongodb, redisClient, rabbitMQ, cfg)
	SetupRoutes(deps)

	indexCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.Timeout)*time.Second)
	defer cancel()
	if err := deps.ProductRepository.EnsureIndexes(indexCtx); err != nil {
		log.WithError(err).Warn("Failed to ensure product indexes")
	}

	return &Server{
		cfg:  cfg,
		deps: deps,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		},
	}, nil
}

// Start runs the HTTP listener and blocks until a shutdown signal arrives.
func (s *Server) Start() error {
	errCh := make(chan error, 1)

	go func() {
		log.WithFields(logrus.Fields{
			"port":    s.cfg.Server.Port,
			"service": s.cfg.App.Name,
			"version": s.cfg.App.Version,
		}).Info("Server starting")

		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	return s.shutdown()
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
		return err
	}

	if err := s.deps.RabbitMQ.Close(); err != nil {
		log.WithError(err).Warn("Failed to close RabbitMQ connection")
	}

	if err := s.deps.Redis.Close(); err != nil {
		log.WithError(err).Warn("Failed to close Redis connection")
	}

	if err := s.deps.Mongodb.Close(ctx); err != nil {
		log.WithError(err).Warn("Failed to close MongoDB connection")
	}

	log.Info("Server stopped")
	return nil
}
