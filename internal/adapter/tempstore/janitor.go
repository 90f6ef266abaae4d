package tempstore

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Janitor периодически подчищает осиротевшие временные файлы.
// В штатном режиме файл удаляется в конце запроса; janitor страхует
// от утечек после аварийного завершения процесса.
type Janitor struct {
	store    *Store
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewJanitor создаёт новый Janitor
func NewJanitor(store *Store, ttl, interval time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		store:    store,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Run запускает цикл очистки до отмены контекста
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep удаляет файлы старше TTL и возвращает количество удалённых
func (j *Janitor) Sweep() int {
	entries, err := os.ReadDir(j.store.Dir())
	if err != nil {
		j.logger.Warn("Failed to read temp dir", zap.String("dir", j.store.Dir()), zap.Error(err))
		return 0
	}

	removed := 0
	now := time.Now()

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if now.Sub(info.ModTime()) <= j.ttl {
			continue
		}

		path := filepath.Join(j.store.Dir(), entry.Name())
		if err := os.Remove(path); err != nil {
			j.logger.Warn("Failed to remove orphan temp file", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info("Removed orphan temp files", zap.Int("count", removed))
	}

	return removed
}
