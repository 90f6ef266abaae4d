package dto

import (
	"encoding/json"
	"time"

	"github.com/plastinin/receiptgate/internal/domain"
)

// CreateReceiptRequest запрос на создание записи о чеке
type CreateReceiptRequest struct {
	StoreName   string          `json:"store_name"`
	TotalAmount int64           `json:"total_amount"`
	Currency    string          `json:"currency"`
	PurchasedAt *time.Time      `json:"purchased_at,omitempty"`
	Text        string          `json:"text"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}

// ReceiptResponse ответ с информацией о чеке
type ReceiptResponse struct {
	ID          string          `json:"id"`
	StoreName   string          `json:"store_name"`
	TotalAmount int64           `json:"total_amount"`
	Currency    string          `json:"currency"`
	PurchasedAt *time.Time      `json:"purchased_at,omitempty"`
	Text        string          `json:"text"`
	Raw         json.RawMessage `json:"raw,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ReceiptFromDomain конвертирует доменную модель в DTO
func ReceiptFromDomain(receipt *domain.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:          receipt.ID.String(),
		StoreName:   receipt.StoreName,
		TotalAmount: receipt.TotalAmount,
		Currency:    receipt.Currency,
		PurchasedAt: receipt.PurchasedAt,
		Text:        receipt.Text,
		Raw:         receipt.Raw,
		CreatedAt:   receipt.CreatedAt,
		UpdatedAt:   receipt.UpdatedAt,
	}
}

// ReceiptListResponse ответ со списком чеков
type ReceiptListResponse struct {
	Receipts   []*ReceiptResponse `json:"receipts"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ReceiptListFromDomain конвертирует результат списка в DTO
func ReceiptListFromDomain(result *domain.ReceiptListResult) *ReceiptListResponse {
	receipts := make([]*ReceiptResponse, len(result.Receipts))
	for i, receipt := range result.Receipts {
		receipts[i] = ReceiptFromDomain(receipt)
	}

	totalPages := result.Total / result.Pagination.PageSize
	if result.Total%result.Pagination.PageSize > 0 {
		totalPages++
	}

	return &ReceiptListResponse{
		Receipts:   receipts,
		Total:      result.Total,
		Page:       result.Pagination.Page,
		PageSize:   result.Pagination.PageSize,
		TotalPages: totalPages,
	}
}
