package api

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/jayswal433/unsigned-gen/config"
	"github.com/jayswal433/unsigned-gen/internal/schema"
	"github.com/jayswal433/unsigned-gen/internal/taskqueue"
	"github.com/jayswal433/unsigned-gen/internal/unsigned"
)

type Server struct {
	echo      *echo.Echo
	mem       *badger.DB
	generator *unsigned.Generator
	queue     *taskqueue.Queue
	issuer    schema.Issuer
	appName   string
}

func NewServer(generator *unsigned.Generator,
	mem *badger.DB,
	queue *taskqueue.Queue,
	issuer schema.Issuer,
	appName string) *Server {
	return &Server{
		mem:       mem,
		generator: generator,
		queue:     queue,
		issuer:    issuer,
		appName:   appName,
	}
}

func (s *Server) Start(cfg config.APIConf) error {
	log.Infof("API server starting...")

	s.echo = s.makeEcho()

	err := s.echo.Start(fmt.Sprintf("%s:%s", cfg.Host, cfg.Port))
	if err != nil {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	const shutdownTimeout = time.Second * 10

	ctx, cancelTimeout := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelTimeout()

	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}

	return nil
}

func (s *Server) makeEcho() *echo.Echo {
	e := echo.New()
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	handlers := NewHandlers(s.generator, s.mem, s.queue, s.issuer, s.appName)

	certGroup := e.Group("/cert")
	certGroup.POST("/generate", handlers.GenerateCert)
	certGroup.POST("/get", handlers.GetCert)

	return e
}

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
