package usecase

import (
	"io"
)

// RelayInput входные данные для пересылки файла провайдеру
type RelayInput struct {
	FileName    string    // Оригинальное имя файла
	ContentType string    // Заявленный MIME тип
	Size        int64     // Размер файла в байтах
	FileReader  io.Reader // Содержимое файла
}

// RelayResult результат успешной пересылки
type RelayResult struct {
	Text string // Нормализованный текст
	Raw  []byte // Исходное тело ответа провайдера
}
