package usecase

import (
	"context"
	"fmt"

	"github.com/plastinin/receiptgate/internal/domain"
	"go.uber.org/zap"
)

// RelayUseCase бизнес-логика пересылки чека внешнему OCR провайдеру
type RelayUseCase struct {
	tempStore TempStore
	relay     RelayClient
	maxSize   int64
	logger    *zap.Logger
}

// NewRelayUseCase создаёт новый экземпляр RelayUseCase
func NewRelayUseCase(
	tempStore TempStore,
	relay RelayClient,
	maxSize int64,
	logger *zap.Logger,
) *RelayUseCase {
	return &RelayUseCase{
		tempStore: tempStore,
		relay:     relay,
		maxSize:   maxSize,
		logger:    logger,
	}
}

// Relay проводит файл через валидацию, временное хранилище и провайдера.
// Инвариант: временный файл, если был создан, удаляется ровно один раз
// на любом пути выхода, включая panic выше по стеку.
func (uc *RelayUseCase) Relay(ctx context.Context, input RelayInput) (*RelayResult, error) {
	upload := domain.Upload{
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Size:        input.Size,
	}
	// До валидации никаких side effects: ни файла, ни запроса к провайдеру
	if err := domain.ValidateUpload(upload, uc.maxSize); err != nil {
		return nil, err
	}

	path, err := uc.tempStore.Save(input.FileReader, input.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	defer uc.cleanup(path)

	uc.logger.Debug("Upload stored",
		zap.String("path", path),
		zap.String("file_name", input.FileName),
		zap.Int64("size", input.Size),
	)

	file, err := uc.tempStore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stored upload: %w", err)
	}
	defer file.Close()

	text, raw, err := uc.relay.Recognize(ctx, file, input.FileName, input.ContentType)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Receipt recognized",
		zap.String("file_name", input.FileName),
		zap.Int("text_len", len(text)),
	)

	return &RelayResult{Text: text, Raw: raw}, nil
}

// cleanup удаляет временный файл; ошибка удаления только логируется
// и никогда не перекрывает уже принятый результат запроса
func (uc *RelayUseCase) cleanup(path string) {
	if err := uc.tempStore.Remove(path); err != nil {
		uc.logger.Warn("Failed to remove temp file",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
