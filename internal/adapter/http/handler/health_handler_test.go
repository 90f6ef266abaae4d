package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/plastinin/receiptgate/internal/config"
)

func TestHealthCheckEchoesConfig(t *testing.T) {
	h := NewHealthHandler(
		config.OCRConfig{
			BaseURL: "https://api.ocr.space",
			Path:    "/parse/image",
			APIKey:  "secret",
		},
		config.UploadConfig{MaxSizeMB: 10},
	)

	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.OCR.BaseURL != "https://api.ocr.space" || resp.OCR.Path != "/parse/image" {
		t.Errorf("ocr echo = %+v", resp.OCR)
	}
	// Сам ключ наружу не отдаём, только факт его наличия
	if !resp.OCR.APIKeyConfigured {
		t.Error("api_key_configured = false")
	}
	if resp.Upload.MaxSizeMB != 10 {
		t.Errorf("max_size_mb = %d", resp.Upload.MaxSizeMB)
	}
}

func TestHealthCheckMissingAPIKey(t *testing.T) {
	h := NewHealthHandler(config.OCRConfig{}, config.UploadConfig{MaxSizeMB: 10})

	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.OCR.APIKeyConfigured {
		t.Error("api_key_configured = true for empty key")
	}
}
