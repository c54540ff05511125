package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damia-cpu/Wellness-Cafe/internal/config"
	"github.com/damia-cpu/Wellness-Cafe/internal/database"
	"github.com/damia-cpu/Wellness-Cafe/internal/logger"
	"github.com/damia-cpu/Wellness-Cafe/internal/pos"
	"github.com/damia-cpu/Wellness-Cafe/internal/router"
	"github.com/damia-cpu/Wellness-Cafe/internal/store"
	"github.com/damia-cpu/Wellness-Cafe/internal/util"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default ./config.yaml if present)")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash for a password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := util.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.Auth.JWTSecret == "" {
		// sessions will not survive a restart
		secret, err := util.RandomString(48)
		if err != nil {
			log.Fatal().Err(err).Msg("generate jwt secret")
		}
		cfg.Auth.JWTSecret = secret
		log.Warn().Msg("auth.jwt_secret not set, using a random one")
	}

	db, err := database.Init(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}
	defer func() { _ = database.Close(db) }()

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	s := store.New(db)
	if cfg.Business.SeedMenu {
		seeded, err := s.SeedCatalog(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("seed catalog")
		}
		if seeded {
			log.Info().Msg("empty catalog seeded with the default menu")
		}
	}

	cipher, err := util.NewCipher(cfg.Security.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("init cipher")
	}

	clock := util.SystemClock{Location: cfg.Location()}
	r := router.SetupRouter(router.Deps{
		Config: cfg,
		Store:  s,
		Cart:   pos.NewCart(clock),
		Cipher: cipher,
		Clock:  clock,
		Log:    log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("business", cfg.Business.Name).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("run server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
