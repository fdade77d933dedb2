// Package api exposes the analytics engine as a JSON HTTP service.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillpulse/skillpulse/internal/logger"
)

// NewRouter registers every route on a new gin engine.
func NewRouter(h *Handler, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	{
		users := v1.Group("/users/:user")
		users.POST("/answers", h.RecordAnswer)
		users.GET("/stats", h.Stats)
		users.GET("/profile", h.GetProfile)
		users.PATCH("/profile", h.UpdateProfile)
		users.POST("/profile/command", h.ProfileCommand)
		users.GET("/next", h.NextQuiz)
		users.GET("/recommendations", h.Recommendations)
		users.GET("/milestones", h.Milestones)

		v1.POST("/team/aggregates", h.ComputeAggregate)
		v1.GET("/team/aggregates", h.GetAggregate)
	}
	return r
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, addr string, handler http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
