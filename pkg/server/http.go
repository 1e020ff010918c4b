package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/Depado/ginprom"
	"github.com/armii/platform-admin/app/api/routes"
	"github.com/armii/platform-admin/pkg/config"
	"github.com/armii/platform-admin/pkg/domains/connection"
	"github.com/armii/platform-admin/pkg/domains/platform"
	"github.com/armii/platform-admin/pkg/middleware"
	"github.com/armii/platform-admin/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// NewRouter wires middleware and every route group of the admin API.
func NewRouter(cfg *config.Config, platforms platform.Service, tracker connection.Tracker) (*gin.Engine, error) {
	gin.SetMode(ginMode(cfg.App.Mode))
	if err := utils.RegisterBindingValidations(); err != nil {
		return nil, err
	}

	app := gin.New()
	app.Use(gin.LoggerWithFormatter(func(log gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] - %s \"%s %s %s %d %s\"\n",
			log.TimeStamp.Format("2006-01-02 15:04:05"),
			log.ClientIP,
			log.Method,
			log.Path,
			log.Request.Proto,
			log.StatusCode,
			log.Latency,
		)
	}))
	app.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	app.Use(gin.Recovery())
	app.Use(otelgin.Middleware(cfg.App.Name))
	app.Use(middleware.RequestID())
	app.Use(middleware.ClaimIp())
	app.Use(cors.New(cors.Config{
		AllowMethods:     cfg.Allows.Methods,
		AllowHeaders:     append(slices.Clone(cfg.Allows.Headers), middleware.RequestIDHeader),
		AllowOrigins:     cfg.Allows.Origins,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	p := ginprom.New(
		ginprom.Engine(app),
		ginprom.Registry(prometheus.NewRegistry()),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/docs/*any"),
	)
	app.Use(p.Instrument())

	api := app.Group("/api/v1")
	routes.IndexRoutes(api)
	routes.PlatformRoutes(api, platforms)
	routes.PairRoutes(api.Group("/pairs"), platforms)
	routes.ConnectionRoutes(api.Group("/connections"), tracker)

	return app, nil
}

// LaunchHttpServer serves the router until ctx is cancelled, then shuts the
// server down gracefully.
func LaunchHttpServer(ctx context.Context, appc config.App, handler http.Handler) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(appc.Host, appc.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server: listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}
