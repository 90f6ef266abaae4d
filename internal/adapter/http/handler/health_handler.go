package handler

import (
	"encoding/json"
	"net/http"

	"github.com/plastinin/receiptgate/internal/config"
)

// HealthHandler обработчик health check запросов
type HealthHandler struct {
	ocrCfg    config.OCRConfig
	uploadCfg config.UploadConfig
}

// NewHealthHandler создаёт новый HealthHandler
func NewHealthHandler(ocrCfg config.OCRConfig, uploadCfg config.UploadConfig) *HealthHandler {
	return &HealthHandler{
		ocrCfg:    ocrCfg,
		uploadCfg: uploadCfg,
	}
}

// HealthResponse ответ health check с эхом конфигурации
type HealthResponse struct {
	Status string           `json:"status"`
	OCR    healthOCRInfo    `json:"ocr"`
	Upload healthUploadInfo `json:"upload"`
}

type healthOCRInfo struct {
	BaseURL          string `json:"base_url"`
	Path             string `json:"path"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

type healthUploadInfo struct {
	MaxSizeMB int `json:"max_size_mb"`
}

// Check проверяет состояние сервиса
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status: "ok",
		OCR: healthOCRInfo{
			BaseURL:          h.ocrCfg.BaseURL,
			Path:             h.ocrCfg.Path,
			APIKeyConfigured: h.ocrCfg.APIKey != "",
		},
		Upload: healthUploadInfo{
			MaxSizeMB: h.uploadCfg.MaxSizeMB,
		},
	})
}
