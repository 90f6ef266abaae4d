package dto

import "encoding/json"

// Response единый конверт ответа API
type Response struct {
	OK    bool `json:"ok"`
	Data  any  `json:"data,omitempty"`
	Error any  `json:"error,omitempty"`
}

// NewSuccessResponse создаёт успешный ответ
func NewSuccessResponse(data any) *Response {
	return &Response{OK: true, Data: data}
}

// NewErrorResponse создаёт ответ с ошибкой
func NewErrorResponse(err any) *Response {
	return &Response{OK: false, Error: err}
}

// OCRData результат распознавания чека
type OCRData struct {
	Text string          `json:"text"`
	Raw  json.RawMessage `json:"raw"`
}

// RawBody упаковывает тело провайдера для встраивания в JSON ответ.
// Валидный JSON передаётся дословно, всё остальное — как JSON строка.
func RawBody(raw []byte) json.RawMessage {
	if json.Valid(raw) && len(raw) > 0 {
		return json.RawMessage(raw)
	}
	encoded, _ := json.Marshal(string(raw))
	return encoded
}
