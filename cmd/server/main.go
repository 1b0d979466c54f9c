package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/api"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/config"
	internalhttp "github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/http"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/storage"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var kv storage.KV
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer client.Close()
		kv = storage.NewRedis(client, cfg.SessionTTL)
	} else {
		log.Print("no REDIS_ADDR configured, keeping sessions in memory")
		kv = storage.NewMemory()
	}

	server := internalhttp.NewServer(cfg, kv, api.New(cfg.BackendURL, nil, cfg.RequestTimeout))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("promtec gateway listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
