package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/plastinin/receiptgate/internal/domain"
	"go.uber.org/zap"
)

// ReceiptUseCase бизнес-логика работы с записями о чеках.
// Тонкий фасад над хранилищем: сохраняем то, что передали.
type ReceiptUseCase struct {
	receiptRepo ReceiptRepository
	logger      *zap.Logger
}

// NewReceiptUseCase создаёт новый экземпляр ReceiptUseCase
func NewReceiptUseCase(receiptRepo ReceiptRepository, logger *zap.Logger) *ReceiptUseCase {
	return &ReceiptUseCase{
		receiptRepo: receiptRepo,
		logger:      logger,
	}
}

// CreateReceiptInput входные данные для создания записи
type CreateReceiptInput struct {
	StoreName   string
	TotalAmount int64
	Currency    string
	PurchasedAt *time.Time
	Text        string
	Raw         json.RawMessage
}

// Create создаёт новую запись о чеке
func (uc *ReceiptUseCase) Create(ctx context.Context, input CreateReceiptInput) (*domain.Receipt, error) {
	receipt := domain.NewReceipt(
		input.StoreName,
		input.TotalAmount,
		input.Currency,
		input.PurchasedAt,
		input.Text,
		input.Raw,
	)

	if err := uc.receiptRepo.Create(ctx, receipt); err != nil {
		uc.logger.Error("Failed to save receipt",
			zap.String("receipt_id", receipt.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	uc.logger.Info("Receipt created",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("store_name", receipt.StoreName),
	)

	return receipt, nil
}

// GetByID возвращает запись о чеке по ID
func (uc *ReceiptUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	return uc.receiptRepo.GetByID(ctx, id)
}

// List возвращает список чеков
func (uc *ReceiptUseCase) List(ctx context.Context, filter domain.ReceiptFilter, pagination domain.Pagination) (*domain.ReceiptListResult, error) {
	return uc.receiptRepo.List(ctx, filter, pagination)
}

// Patch частично обновляет запись о чеке
func (uc *ReceiptUseCase) Patch(ctx context.Context, id uuid.UUID, patch domain.ReceiptPatch) (*domain.Receipt, error) {
	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	receipt.Apply(patch)

	if err := uc.receiptRepo.Update(ctx, receipt); err != nil {
		uc.logger.Error("Failed to update receipt",
			zap.String("receipt_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return receipt, nil
}

// Delete удаляет запись о чеке
func (uc *ReceiptUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.receiptRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Receipt deleted",
		zap.String("receipt_id", id.String()),
	)

	return nil
}
