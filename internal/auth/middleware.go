package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID  ctxKey = "usuarioID"
	CtxIsAdmin ctxKey = "isAdmin"
)

// ContextoComUsuario grava o usuário autenticado no contexto.
func ContextoComUsuario(ctx context.Context, userID uint, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, CtxUserID, userID)
	return context.WithValue(ctx, CtxIsAdmin, isAdmin)
}

// Usuario lê o usuário gravado por MiddlewareAutenticacao.
func Usuario(r *http.Request) (userID uint, isAdmin bool) {
	userID, _ = r.Context().Value(CtxUserID).(uint)
	isAdmin, _ = r.Context().Value(CtxIsAdmin).(bool)
	return userID, isAdmin
}

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		claims, err := ValidarAccessToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := ContextoComUsuario(r.Context(), claims.UserID, claims.IsAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, isAdmin := Usuario(r); !isAdmin {
			http.Error(w, "acesso restrito a administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireArquiteto bloqueia administradores em rotas de sessão do arquiteto
// (rascunho, envio de proposta).
func RequireArquiteto(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, isAdmin := Usuario(r)
		if isAdmin || userID == 0 {
			http.Error(w, "acesso restrito a arquitetos", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
