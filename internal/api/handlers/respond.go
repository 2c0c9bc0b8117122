package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машиночитаемые коды ошибок в envelope
const (
	CodeInvalidRequest        = "InvalidRequest"
	CodeNotFound              = "NotFound"
	CodePastDate              = "PastDate"
	CodeTooSoon               = "TooSoon"
	CodeForbidden             = "Forbidden"
	CodeSlotLocked            = "SlotLocked"
	CodeBusy                  = "Busy"
	CodeSlotUnavailable       = "SlotUnavailable"
	CodeDailyLimit            = "DailyLimit"
	CodeAdvisorUnavailable    = "AdvisorUnavailable"
	CodeQuestionnaireRequired = "QuestionnaireRequired"
	CodeInternal              = "Internal"
)

// ErrorResponse envelope ошибки
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в структуру
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON сериализует payload в тело ответа
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет envelope ошибки с машиночитаемым кодом
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}

// RespondBadRequest отправляет 400 с указанным кодом
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondForbidden отправляет 403
func RespondForbidden(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusForbidden, code, message)
}

// RespondConflict отправляет 409 с указанным кодом
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondInternalError отправляет 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, "внутренняя ошибка сервиса")
}
