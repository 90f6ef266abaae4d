package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/plastinin/receiptgate/internal/adapter/http/dto"
	"github.com/plastinin/receiptgate/internal/adapter/ocr"
	"github.com/plastinin/receiptgate/internal/domain"
	"github.com/plastinin/receiptgate/internal/usecase"
	"go.uber.org/zap"
)

// Запас на multipart границы и служебные поля поверх лимита самого файла
const multipartOverhead = 1 << 20 // 1 MB

// OCRHandler обработчик HTTP запросов распознавания чеков
type OCRHandler struct {
	relayUC *usecase.RelayUseCase
	maxSize int64
	logger  *zap.Logger
}

// NewOCRHandler создаёт новый OCRHandler
func NewOCRHandler(relayUC *usecase.RelayUseCase, maxSize int64, logger *zap.Logger) *OCRHandler {
	return &OCRHandler{
		relayUC: relayUC,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Recognize принимает изображение чека и возвращает распознанный текст
// POST /api/ocr/receipt
// Content-Type: multipart/form-data
// - file: изображение чека (jpeg/png)
func (h *OCRHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	// Ограничиваем размер загрузки
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)

	// Парсим multipart форму
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge, domain.ErrFileTooLarge.Error())
			return
		}
		h.logger.Warn("Failed to parse multipart form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "failed to parse form data")
		return
	}

	// Получаем файл; если его нет — временный файл не создавался,
	// чистить нечего
	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, domain.ErrMissingFile.Error())
		return
	}
	defer file.Close()

	result, err := h.relayUC.Relay(r.Context(), usecase.RelayInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		FileReader:  file,
	})
	if err != nil {
		h.respondRelayError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NewSuccessResponse(dto.OCRData{
		Text: result.Text,
		Raw:  dto.RawBody(result.Raw),
	}))
}

// respondRelayError единственное место, где исход пересылки превращается
// в HTTP статус и тело ответа
func (h *OCRHandler) respondRelayError(w http.ResponseWriter, err error) {
	var upstreamErr *ocr.UpstreamError

	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType) || errors.Is(err, domain.ErrMissingFile):
		h.respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrFileTooLarge):
		h.respondError(w, http.StatusRequestEntityTooLarge, err.Error())

	case errors.As(err, &upstreamErr):
		// Статус провайдера пробрасываем как есть, тело — дословно
		status := upstreamErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		h.respondJSON(w, status, dto.NewErrorResponse(dto.RawBody(upstreamErr.Body)))

	default:
		// Транспортная или внутренняя ошибка
		h.logger.Error("Relay failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to process upload")
	}
}

// respondJSON отправляет JSON ответ
func (h *OCRHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError отправляет ответ с ошибкой
func (h *OCRHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, dto.NewErrorResponse(message))
}
