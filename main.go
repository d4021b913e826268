package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"restaurant-api/config"
	"restaurant-api/internal/aggregator"
	httpapi "restaurant-api/internal/api/http"
	"restaurant-api/internal/logger"
	"restaurant-api/internal/service"
	"restaurant-api/internal/storage"
)

const orderEventsTopic = "order-events"

func main() {
	log := logger.New("restaurant-api")

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Error("failed to ensure schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := config.MustInitRedis()
	cache := storage.NewAggregateCache(rdb, 5*time.Minute)

	writer := config.NewKafkaWriter(orderEventsTopic)
	defer writer.Close()
	publisher := storage.NewKafkaPublisher(writer)

	reader := config.NewKafkaReader(orderEventsTopic, "stats-aggregator")
	defer reader.Close()
	consumer := aggregator.NewConsumer(reader, cache, log)
	go consumer.Start(context.Background())

	receipts := service.ReceiptQRGenerator{BaseURL: config.PublicBaseURL()}

	dishSvc := service.NewDishService(repo, cache, log)
	orderSvc := service.NewOrderService(repo, repo, cache, publisher, receipts, log)
	statsSvc := service.NewStatsService(repo, cache, log)

	handler := httpapi.NewHandler(dishSvc, orderSvc, statsSvc)
	router := httpapi.NewRouter(handler)

	addr := config.HTTPAddr()
	log.Info("restaurant API starting", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
