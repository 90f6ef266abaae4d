package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Ошибки валидации загрузки
var (
	ErrMissingFile         = errors.New("file is required")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Upload метаданные загружаемого файла, полученные при разборе multipart формы
type Upload struct {
	FileName    string // Оригинальное имя файла
	ContentType string // Заявленный MIME тип
	Size        int64  // Размер в байтах
}

// Подстроки подтипа, которые считаем изображением чека.
// Сравнение по подстроке: "image/jpeg", "image/jpg" и "image/png;charset=..."
// проходят одинаково.
var allowedSubtypes = []string{"jpeg", "jpg", "png"}

// ValidateUpload проверяет тип и размер файла до обращения к провайдеру.
// Решение принимается только по метаданным, файл не читается.
func ValidateUpload(u Upload, maxSizeBytes int64) error {
	if !isAllowedContentType(u.ContentType) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, u.ContentType)
	}
	if u.Size > maxSizeBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, u.Size, maxSizeBytes)
	}
	return nil
}

// isAllowedContentType проверяет, что заявленный тип — image/jpeg или image/png
func isAllowedContentType(contentType string) bool {
	// Убираем параметры типа charset
	ct := strings.Split(contentType, ";")[0]
	ct = strings.TrimSpace(strings.ToLower(ct))

	kind, subtype, ok := strings.Cut(ct, "/")
	if !ok || kind != "image" {
		return false
	}

	for _, allowed := range allowedSubtypes {
		if strings.Contains(subtype, allowed) {
			return true
		}
	}
	return false
}
