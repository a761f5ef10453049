package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/Carbonetx/pkg/http/router"
	"github.com/lintang-b-s/Carbonetx/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Carbonetx/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. starts the api in the background, Wait returns its error once ctx is cancelled or it fails.
func (s *Server) Use(
	ctx context.Context,
	useRateLimit bool,
	plannerService controllers.PlannerService,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "1000s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	api := http_router.NewAPI(s.Log)

	s.g.Go(func() error {
		return api.Run(ctx, config, useRateLimit, plannerService)
	})

	return s, nil
}

func (s *Server) Wait() error {
	return s.g.Wait()
}

// GracefulShutdown. blocks until SIGINT or SIGTERM
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
