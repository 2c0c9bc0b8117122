package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/LL-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/LL-SlotBookingService/internal/domain"
)

// Заголовки аутентификации, проставляемые шлюзом
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type userCtxKey struct{}

// User аутентифицированный пользователь запроса
type User struct {
	ID   int64
	Role string
}

// IsAdmin пользователь имеет роль администратора
func (u User) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// Auth проверяет заголовки аутентификации и кладет пользователя в контекст.
// Запросы без корректной пары X-User-ID / X-User-Role отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeForbidden, "требуется аутентификация")
			return
		}

		role := r.Header.Get(HeaderUserRole)
		switch role {
		case domain.RoleTeacher, domain.RoleStudent, domain.RoleAdmin:
		default:
			handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeForbidden, "неизвестная роль пользователя")
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey{}, User{ID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext возвращает пользователя запроса
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(User)
	return u, ok
}
