package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jayswal433/unsigned-gen/config"
	"github.com/jayswal433/unsigned-gen/internal/api"
	"github.com/jayswal433/unsigned-gen/internal/taskqueue"
	"github.com/jayswal433/unsigned-gen/internal/unsigned"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	log.Info("api service init...")
	defer log.Info("api service stop")

	ctx, cancelCancel := context.WithCancel(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	if err := godotenv.Load(".env"); err != nil {
		var pathError *fs.PathError
		if !errors.As(err, &pathError) {
			log.Fatalf("parsing .env file: %v", err)
		}
	}

	configPath := os.Getenv("CONFIG_PATH")

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		log.Fatalf("yamlFile.Get err #%v .path: %s", err, configPath)
	}

	cfg := config.Config{}
	err = yaml.Unmarshal(yamlFile, &cfg)
	if err != nil {
		log.Fatalf("unmarshal: %v", err)
	}

	var opts []unsigned.Option
	if os.Getenv("LEGACY_FIELD_MERGE") != "" {
		opts = append(opts, unsigned.WithFieldMergePolicy(unsigned.MergeLegacySecond))
	}
	generator := unsigned.NewGenerator(opts...)

	opt := badger.DefaultOptions("").WithInMemory(true)
	db, err := badger.Open(opt)
	if err != nil {
		log.Fatalf("failed to open badger %v", err)
	}
	defer db.Close()

	queue := taskqueue.NewQueue(1)
	defer queue.Close()

	server := api.NewServer(generator, db, queue, cfg.Issuer.Issuer(), cfg.App.Name)

	go func() {
		if err := server.Start(cfg.APIConf); err != nil && (!errors.Is(err, http.ErrServerClosed)) {
			log.WithError(err).Fatal("shutting down the server")
		}
	}()

	waiting := make(chan struct{})
	go func() {
		defer close(waiting)
		select {
		case <-quit:
			log.Info("Gracefully stopping…")
			cancelCancel()

			if err := server.Stop(); err != nil {
				log.WithError(err).Fatal()
			}
		case <-ctx.Done():
			return
		}
	}()
	<-waiting
	log.Info("🏁 finished.")
}
