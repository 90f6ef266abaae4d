package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/plastinin/receiptgate/internal/adapter/http/handler"
	"github.com/plastinin/receiptgate/internal/adapter/ocr"
	"github.com/plastinin/receiptgate/internal/adapter/repository"
	"github.com/plastinin/receiptgate/internal/adapter/tempstore"
	"github.com/plastinin/receiptgate/internal/config"
	"github.com/plastinin/receiptgate/internal/usecase"
	"github.com/plastinin/receiptgate/pkg/logger"
	"go.uber.org/zap"

	apphttp "github.com/plastinin/receiptgate/internal/adapter/http"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Инициализируем логгер
	log := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	log.Info("Starting receiptgate API",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("ocr_url", cfg.OCR.URL()),
	)

	// Отсутствие ключа не валит сервис: запросы к провайдеру будут
	// завершаться как upstream ошибка, а не крэшем обработчика
	if cfg.OCR.APIKey == "" {
		log.Warn("OCR API key is not configured, provider requests will fail")
	}

	// Контекст с отменой для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем PostgreSQL
	dbPool, err := repository.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()
	log.Info("Connected to PostgreSQL")

	// Инициализируем временное хранилище загрузок
	tempStore, err := tempstore.New(cfg.Upload.TempDir)
	if err != nil {
		log.Fatal("Failed to init temp store", zap.Error(err))
	}
	log.Info("Temp store ready", zap.String("dir", tempStore.Dir()))

	// Janitor подчищает осиротевшие файлы после аварийных завершений
	janitor := tempstore.NewJanitor(tempStore, cfg.Upload.OrphanTTL, cfg.Upload.SweepInterval, log)
	go janitor.Run(ctx)

	// Инициализируем клиента OCR провайдера
	ocrClient := ocr.NewClient(cfg.OCR, log)

	// Инициализируем репозитории
	receiptRepo := repository.NewReceiptRepository(dbPool)

	// Инициализируем use cases
	relayUC := usecase.NewRelayUseCase(tempStore, ocrClient, cfg.Upload.MaxSizeBytes(), log)
	receiptUC := usecase.NewReceiptUseCase(receiptRepo, log)

	// Инициализируем handlers
	ocrHandler := handler.NewOCRHandler(relayUC, cfg.Upload.MaxSizeBytes(), log)
	receiptHandler := handler.NewReceiptHandler(receiptUC, log)
	healthHandler := handler.NewHealthHandler(cfg.OCR, cfg.Upload)

	// Создаём роутер
	router := apphttp.NewRouter(ocrHandler, receiptHandler, healthHandler, cfg.CORS, log)

	// Создаём HTTP сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", cfg.Server.Addr()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
