package botapi

import (
	"errors"
	"fmt"
)

// ErrRequestFailed — общий класс ошибок запроса к серверу.
//
// Сюда попадают сетевые ошибки, ответы с не-2xx статусом
// и тела, которые не удалось разобрать. Транзиентные и постоянные
// ошибки не различаются: клиент не делает retry.
var ErrRequestFailed = errors.New("request failed")

// RequestError — ошибка запроса с контекстом.
type RequestError struct {
	Method     string // HTTP-метод
	Path       string // путь относительно базового URL
	StatusCode int    // 0, если ответа не было
	Message    string // сообщение из тела ошибки сервера
	RequestID  string // значение X-Request-ID
	Err        error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Method, e.Path)
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: HTTP %d: %s", msg, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP %d", msg, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	default:
		return msg + ": " + ErrRequestFailed.Error()
	}
}

// Unwrap возвращает базовую ошибку.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать любую RequestError с ErrRequestFailed.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}
