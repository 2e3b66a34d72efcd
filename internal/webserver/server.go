package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/talkincode/shopcore/config"
	"github.com/talkincode/shopcore/internal/storage"
	"go.uber.org/zap"
)

// Server wraps the echo instance serving the shop API.
type Server struct {
	cfg  *config.AppConfig
	root *echo.Echo
}

func New(cfg *config.AppConfig) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("16M"))
	e.Use(ZapLogger())

	return &Server{cfg: cfg, root: e}
}

func (s *Server) Echo() *echo.Echo {
	return s.root
}

// ServeUploads exposes the local upload directory so local image references
// resolve to the original bytes. Only meaningful for the local backend; the
// remote backend returns absolute URLs.
func (s *Server) ServeUploads(fs storage.FileStore) {
	if local, ok := fs.(*storage.LocalStore); ok {
		s.root.Static("/uploads", local.Dir())
	}
}

// Start runs the HTTP listener until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("Web server listening on %s", addr)
		errCh <- s.root.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.root.Shutdown(shutdownCtx)
	}
}
