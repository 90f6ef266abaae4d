package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/plastinin/receiptgate/internal/domain"
)

// TempStore интерфейс временного хранилища загрузок
type TempStore interface {
	Save(r io.Reader, originalName string) (path string, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// RelayClient интерфейс клиента внешнего OCR провайдера
type RelayClient interface {
	Recognize(ctx context.Context, file io.Reader, fileName, contentType string) (text string, raw []byte, err error)
}

// ReceiptRepository интерфейс хранилища записей о чеках
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error)
	Update(ctx context.Context, receipt *domain.Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.ReceiptFilter, pagination domain.Pagination) (*domain.ReceiptListResult, error)
}
