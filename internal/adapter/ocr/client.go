package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/plastinin/receiptgate/internal/config"
	"go.uber.org/zap"
)

// Имя файлового поля в multipart запросе, зафиксировано контрактом провайдера
const fileFieldName = "file"

// UpstreamError ответ провайдера со статусом вне 2xx.
// Тело сохраняется дословно: диагностика провайдера — забота вызывающего.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ocr provider returned status %d: %s", e.StatusCode, e.Body)
}

// Client клиент внешнего OCR провайдера
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создаёт новый экземпляр Client
func NewClient(cfg config.OCRConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		url:    cfg.URL(),
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// Recognize пересылает один файл провайдеру и возвращает нормализованный текст
// вместе с исходным телом ответа. Ровно один исходящий запрос, без повторов.
// Статус вне 2xx возвращается как *UpstreamError, сетевая ошибка или таймаут —
// как обёрнутая transport ошибка.
func (c *Client) Recognize(ctx context.Context, file io.Reader, fileName, contentType string) (string, []byte, error) {
	body, formContentType, err := buildMultipartBody(file, fileName, contentType)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", formContentType)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to reach ocr provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	c.logger.Debug("OCR request completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("status_code", resp.StatusCode),
		zap.Int("body_size", len(raw)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", nil, &UpstreamError{StatusCode: resp.StatusCode, Body: raw}
	}

	return NormalizeText(raw), raw, nil
}

// buildMultipartBody собирает multipart тело с единственным файловым полем.
// Оригинальное имя и content type передаются без изменений: часть провайдеров
// определяет формат по расширению файла.
func buildMultipartBody(file io.Reader, fileName, contentType string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileFieldName, fileName))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
