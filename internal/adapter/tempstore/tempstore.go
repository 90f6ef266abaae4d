package tempstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store файловое хранилище для временных загрузок.
// Каждый файл живёт не дольше одного запроса; имена уникальны (uuid),
// поэтому параллельные запросы не конфликтуют.
type Store struct {
	dir string
}

// New создаёт хранилище и директорию для него, если её нет
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir возвращает директорию хранилища
func (s *Store) Dir() string {
	return s.dir
}

// Save записывает содержимое в новый временный файл и возвращает его путь.
// Расширение оригинального имени сохраняется для удобства отладки.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return path, nil
}

// Open открывает временный файл на чтение
func (s *Store) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open temp file: %w", err)
	}
	return f, nil
}

// Remove удаляет временный файл. Отсутствие файла ошибкой не считается
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temp file: %w", err)
	}
	return nil
}
