package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/config"
	"github.com/cinegraph/cinegraph/internal/gql"
	httpserver "github.com/cinegraph/cinegraph/internal/http"
	"github.com/cinegraph/cinegraph/internal/objectstore"
	"github.com/cinegraph/cinegraph/internal/repository"
	"github.com/cinegraph/cinegraph/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[cinegraph] ", log.LstdFlags|log.Lshortfile)

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnIdleTime: time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime: time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:     time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		Logger:          logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	var uploads objectstore.Client
	if cfg.UploadEndpoint != "" {
		uploads, err = objectstore.NewMinioClient(dbCtx, objectstore.Options{
			Endpoint:  cfg.UploadEndpoint,
			AccessKey: cfg.UploadAccessKey,
			SecretKey: cfg.UploadSecretKey,
			Bucket:    cfg.UploadBucket,
			UseSSL:    cfg.UploadUseSSL,
			Expiry:    time.Duration(cfg.UploadExpirySecs) * time.Second,
			Logger:    logger,
		})
		if err != nil {
			log.Fatalf("init object store: %v", err)
		}
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMins)*time.Minute)
	repo := repository.New(st)
	resolver := gql.NewResolver(gql.Options{
		Repo:       repo,
		Tokens:     tokens,
		Uploads:    uploads,
		Logger:     logger,
		BcryptCost: cfg.BcryptCost,
	})
	schema := gql.NewSchema(resolver)
	server := httpserver.New(cfg, st, schema, tokens, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}
