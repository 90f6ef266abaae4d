package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/plastinin/receiptgate/internal/adapter/http/handler"
	httpmiddleware "github.com/plastinin/receiptgate/internal/adapter/http/middleware"
	"github.com/plastinin/receiptgate/internal/config"
	"go.uber.org/zap"
)

// NewRouter создаёт и настраивает HTTP роутер
func NewRouter(
	ocrHandler *handler.OCRHandler,
	receiptHandler *handler.ReceiptHandler,
	healthHandler *handler.HealthHandler,
	corsCfg config.CORSConfig,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.NewLoggingMiddleware(logger))
	// Recoverer держит инвариант "ответ отправляется ровно один раз":
	// любой panic ниже по стеку превращается в 500
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(middleware.Compress(5))

	// Health check (вне версионирования API)
	r.Get("/health", healthHandler.Check)

	// API
	r.Route("/api", func(r chi.Router) {
		// Распознавание чеков
		r.Post("/ocr/receipt", ocrHandler.Recognize)

		// CRUD по записям о чеках
		r.Route("/receipts", func(r chi.Router) {
			r.Post("/", receiptHandler.Create)
			r.Get("/", receiptHandler.List)
			r.Get("/{id}", receiptHandler.GetByID)
			r.Patch("/{id}", receiptHandler.Patch)
			r.Delete("/{id}", receiptHandler.Delete)
		})
	})

	return r
}
