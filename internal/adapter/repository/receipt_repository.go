package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plastinin/receiptgate/internal/domain"
)

// ReceiptRepository реализация репозитория чеков для PostgreSQL
type ReceiptRepository struct {
	pool *pgxpool.Pool
}

// NewReceiptRepository создаёт новый экземпляр ReceiptRepository
func NewReceiptRepository(pool *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{pool: pool}
}

// Create создаёт новую запись о чеке в БД
func (r *ReceiptRepository) Create(ctx context.Context, receipt *domain.Receipt) error {
	query := `
		INSERT INTO receipts (id, store_name, total_amount, currency, purchased_at, text, raw, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		receipt.ID,
		receipt.StoreName,
		receipt.TotalAmount,
		receipt.Currency,
		receipt.PurchasedAt,
		receipt.Text,
		receipt.Raw,
		receipt.CreatedAt,
		receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	return nil
}

// GetByID возвращает запись о чеке по ID
func (r *ReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	query := `
		SELECT id, store_name, total_amount, currency, purchased_at, text, raw, created_at, updated_at
		FROM receipts
		WHERE id = $1
	`

	receipt := &domain.Receipt{}

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&receipt.ID,
		&receipt.StoreName,
		&receipt.TotalAmount,
		&receipt.Currency,
		&receipt.PurchasedAt,
		&receipt.Text,
		&receipt.Raw,
		&receipt.CreatedAt,
		&receipt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	return receipt, nil
}

// Update обновляет запись о чеке в БД
func (r *ReceiptRepository) Update(ctx context.Context, receipt *domain.Receipt) error {
	query := `
		UPDATE receipts
		SET store_name = $2, total_amount = $3, currency = $4, purchased_at = $5, text = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		receipt.ID,
		receipt.StoreName,
		receipt.TotalAmount,
		receipt.Currency,
		receipt.PurchasedAt,
		receipt.Text,
		receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrReceiptNotFound
	}

	return nil
}

// Delete удаляет запись о чеке из БД
func (r *ReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM receipts WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrReceiptNotFound
	}

	return nil
}

// List возвращает список чеков с пагинацией и фильтрацией
func (r *ReceiptRepository) List(ctx context.Context, filter domain.ReceiptFilter, pagination domain.Pagination) (*domain.ReceiptListResult, error) {
	// Базовый запрос
	baseQuery := `FROM receipts WHERE 1=1`
	args := []any{}
	argIndex := 1

	// Добавляем фильтр по магазину
	if filter.StoreName != nil {
		baseQuery += fmt.Sprintf(" AND store_name = $%d", argIndex)
		args = append(args, *filter.StoreName)
		argIndex++
	}

	// Запрос на подсчёт общего количества
	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count receipts: %w", err)
	}

	// Запрос на получение данных
	selectQuery := fmt.Sprintf(`
		SELECT id, store_name, total_amount, currency, purchased_at, text, raw, created_at, updated_at
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseQuery, argIndex, argIndex+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer rows.Close()

	receipts := make([]*domain.Receipt, 0)
	for rows.Next() {
		receipt := &domain.Receipt{}

		err := rows.Scan(
			&receipt.ID,
			&receipt.StoreName,
			&receipt.TotalAmount,
			&receipt.Currency,
			&receipt.PurchasedAt,
			&receipt.Text,
			&receipt.Raw,
			&receipt.CreatedAt,
			&receipt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}

		receipts = append(receipts, receipt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return &domain.ReceiptListResult{
		Receipts:   receipts,
		Total:      total,
		Pagination: pagination,
	}, nil
}
