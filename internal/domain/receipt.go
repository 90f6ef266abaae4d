package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Ошибки домена
var (
	ErrReceiptNotFound = errors.New("receipt not found")
)

// Receipt сохранённая запись о чеке
type Receipt struct {
	ID          uuid.UUID       `json:"id"`
	StoreName   string          `json:"store_name"`             // Название магазина
	TotalAmount int64           `json:"total_amount"`           // Сумма в минорных единицах (копейки/центы)
	Currency    string          `json:"currency"`               // Код валюты (ISO 4217)
	PurchasedAt *time.Time      `json:"purchased_at,omitempty"` // Дата покупки
	Text        string          `json:"text"`                   // Распознанный текст чека
	Raw         json.RawMessage `json:"raw,omitempty"`          // Исходный ответ OCR провайдера
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewReceipt создаёт новую запись о чеке
func NewReceipt(storeName string, totalAmount int64, currency string, purchasedAt *time.Time, text string, raw json.RawMessage) *Receipt {
	now := time.Now()

	return &Receipt{
		ID:          uuid.New(),
		StoreName:   storeName,
		TotalAmount: totalAmount,
		Currency:    currency,
		PurchasedAt: purchasedAt,
		Text:        text,
		Raw:         raw,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ReceiptPatch частичное обновление записи; nil-поля не меняются
type ReceiptPatch struct {
	StoreName   *string    `json:"store_name,omitempty"`
	TotalAmount *int64     `json:"total_amount,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
	Text        *string    `json:"text,omitempty"`
}

// Apply применяет частичное обновление к записи
func (r *Receipt) Apply(patch ReceiptPatch) {
	if patch.StoreName != nil {
		r.StoreName = *patch.StoreName
	}
	if patch.TotalAmount != nil {
		r.TotalAmount = *patch.TotalAmount
	}
	if patch.Currency != nil {
		r.Currency = *patch.Currency
	}
	if patch.PurchasedAt != nil {
		r.PurchasedAt = patch.PurchasedAt
	}
	if patch.Text != nil {
		r.Text = *patch.Text
	}
	r.UpdatedAt = time.Now()
}
