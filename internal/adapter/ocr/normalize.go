package ocr

import "encoding/json"

// Провайдеры и их версии вкладывают распознанный текст по-разному.
// probe достаёт кандидата из разобранного тела; пустая строка — промах.
type probe func(body any) string

// Порядок фиксирован: первый непустой результат побеждает
var probes = []probe{
	plainString,
	textAt("text"),
	textAt("data", "text"),
	textAt("result", "text"),
	textAt("data", "data", "text"),
}

// NormalizeText извлекает плоское текстовое поле из тела ответа провайдера.
// Отсутствие знакомой формы — нормальный исход, возвращается пустая строка.
func NormalizeText(raw []byte) string {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		// Не-JSON тело считаем готовым текстом
		return string(raw)
	}

	for _, p := range probes {
		if text := p(body); text != "" {
			return text
		}
	}
	return ""
}

// plainString тело целиком является строкой
func plainString(body any) string {
	s, _ := body.(string)
	return s
}

// textAt строковое поле по пути из вложенных объектов
func textAt(path ...string) probe {
	return func(body any) string {
		current := body
		for _, key := range path {
			obj, ok := current.(map[string]any)
			if !ok {
				return ""
			}
			current = obj[key]
		}
		s, _ := current.(string)
		return s
	}
}
