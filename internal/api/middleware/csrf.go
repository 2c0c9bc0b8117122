package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/LL-SlotBookingService/internal/api/handlers"
)

const (
	csrfHeader = "X-CSRF-Token"
	csrfCookie = "csrf_token"
)

// CSRF double-submit проверка для мутирующих запросов:
// заголовок X-CSRF-Token должен совпадать с cookie csrf_token
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get(csrfHeader)
		cookie, err := r.Cookie(csrfCookie)
		if token == "" || err != nil ||
			subtle.ConstantTimeCompare([]byte(token), []byte(cookie.Value)) != 1 {
			handlers.RespondForbidden(w, handlers.CodeForbidden, "некорректный CSRF токен")
			return
		}

		next.ServeHTTP(w, r)
	})
}
