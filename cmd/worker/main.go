package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"counseling/internal/admin"
	"counseling/internal/config"
	"counseling/internal/logging"
	"counseling/internal/queue"
	"counseling/internal/store"
	"counseling/internal/worker"
)

// Worker consumes portal events from Redis and records them in the shared activity feed.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.QueueBackend != "redis" {
		logger.Fatal("worker needs QUEUE_BACKEND=redis; the memory queue is drained inside the api process")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()
	if !redisClient.Healthy(ctx) {
		logger.Warn("redis not reachable, consumer will keep retrying", zap.String("addr", cfg.RedisAddr))
	}

	feed := admin.NewRedisFeed(redisClient.Client, "", cfg.ActivityFeedSize)
	q := queue.NewRedisQueue(redisClient.Client, queue.DefaultKey)

	if err := worker.NewProcessor(feed, logger).Run(ctx, q); err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}
}
