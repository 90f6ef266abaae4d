package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/plastinin/receiptgate/internal/adapter/http/dto"
	"github.com/plastinin/receiptgate/internal/domain"
	"github.com/plastinin/receiptgate/internal/usecase"
	"go.uber.org/zap"
)

// ReceiptHandler обработчик HTTP запросов для записей о чеках
type ReceiptHandler struct {
	receiptUC *usecase.ReceiptUseCase
	logger    *zap.Logger
}

// NewReceiptHandler создаёт новый ReceiptHandler
func NewReceiptHandler(receiptUC *usecase.ReceiptUseCase, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		receiptUC: receiptUC,
		logger:    logger,
	}
}

// Create создаёт новую запись о чеке
// POST /api/receipts
func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.receiptUC.Create(r.Context(), usecase.CreateReceiptInput{
		StoreName:   req.StoreName,
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
		PurchasedAt: req.PurchasedAt,
		Text:        req.Text,
		Raw:         req.Raw,
	})
	if err != nil {
		h.logger.Error("Failed to create receipt", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to create receipt")
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.NewSuccessResponse(dto.ReceiptFromDomain(receipt)))
}

// GetByID возвращает запись о чеке по ID
// GET /api/receipts/{id}
func (h *ReceiptHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	receipt, err := h.receiptUC.GetByID(r.Context(), id)
	if err != nil {
		h.respondRepoError(w, id, err, "get")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NewSuccessResponse(dto.ReceiptFromDomain(receipt)))
}

// List возвращает список чеков
// GET /api/receipts?page=1&page_size=20&store_name=...
func (h *ReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	// Парсим параметры пагинации
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	pagination := domain.NewPagination(page, pageSize)

	// Парсим фильтры
	filter := domain.ReceiptFilter{}
	if storeName := r.URL.Query().Get("store_name"); storeName != "" {
		filter.StoreName = &storeName
	}

	result, err := h.receiptUC.List(r.Context(), filter, pagination)
	if err != nil {
		h.logger.Error("Failed to list receipts", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list receipts")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NewSuccessResponse(dto.ReceiptListFromDomain(result)))
}

// Patch частично обновляет запись о чеке
// PATCH /api/receipts/{id}
func (h *ReceiptHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var patch domain.ReceiptPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.receiptUC.Patch(r.Context(), id, patch)
	if err != nil {
		h.respondRepoError(w, id, err, "update")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NewSuccessResponse(dto.ReceiptFromDomain(receipt)))
}

// Delete удаляет запись о чеке
// DELETE /api/receipts/{id}
func (h *ReceiptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.receiptUC.Delete(r.Context(), id); err != nil {
		h.respondRepoError(w, id, err, "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseID разбирает идентификатор из пути
func (h *ReceiptHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid receipt ID format")
		return uuid.Nil, false
	}
	return id, true
}

// respondRepoError отображает ошибку хранилища в HTTP статус
func (h *ReceiptHandler) respondRepoError(w http.ResponseWriter, id uuid.UUID, err error, op string) {
	if errors.Is(err, domain.ErrReceiptNotFound) {
		h.respondError(w, http.StatusNotFound, "receipt not found")
		return
	}
	h.logger.Error("Receipt operation failed",
		zap.String("receipt_id", id.String()),
		zap.String("op", op),
		zap.Error(err),
	)
	h.respondError(w, http.StatusInternalServerError, "failed to "+op+" receipt")
}

// respondJSON отправляет JSON ответ
func (h *ReceiptHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError отправляет ответ с ошибкой
func (h *ReceiptHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, dto.NewErrorResponse(message))
}
