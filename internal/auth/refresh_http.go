package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"
)

// TokenResponse é devolvido no login e no refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func novaResposta(access string) TokenResponse {
	return TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: int(AccessTTL.Seconds())}
}

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// Em localhost o cookie precisa de Secure=false; em produção COOKIE_SECURE=true.
func setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   getCookieSeguro(),
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   getCookieSeguro(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func criarRefresh(db *gorm.DB, w http.ResponseWriter, userID uint, isAdmin bool, familia string) error {
	raw, err := genRaw()
	if err != nil {
		return err
	}
	rt := RefreshToken{
		UserID:    userID,
		IsAdmin:   isAdmin,
		FamilyID:  familia,
		Hash:      hashRaw(raw),
		ExpiresAt: time.Now().Add(RefreshTTL),
	}
	if err := db.Create(&rt).Error; err != nil {
		return err
	}
	setRTCookie(w, raw, rt.ExpiresAt)
	return nil
}

// EmitirTokensNoLogin é chamado pelos handlers de login depois de validar a senha.
func EmitirTokensNoLogin(db *gorm.DB, w http.ResponseWriter, userID uint, isAdmin bool) (TokenResponse, error) {
	access, err := GerarAccessToken(userID, isAdmin)
	if err != nil {
		return TokenResponse{}, err
	}
	if err := criarRefresh(db, w, userID, isAdmin, uuid.NewString()); err != nil {
		return TokenResponse{}, err
	}
	return novaResposta(access), nil
}

// RevogarSessoes revoga todos os refresh tokens ativos do usuário.
// O access token já emitido vale até expirar.
func RevogarSessoes(db *gorm.DB, userID uint, isAdmin bool) error {
	now := time.Now()
	res := db.Model(&RefreshToken{}).
		Where("user_id = ? AND is_admin = ? AND revoked_at IS NULL", userID, isAdmin).
		Update("revoked_at", &now)
	if res.Error != nil {
		return res.Error
	}
	log.Printf("[auth][sessao] revogados=%d user=%d admin=%t", res.RowsAffected, userID, isAdmin)
	return nil
}

// POST /auth/refresh
// Rotaciona o refresh token. Reapresentar um token já revogado revoga a família inteira.
func RefreshHTTPHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(RefreshCookie)
		if err != nil || c.Value == "" {
			http.Error(w, "refresh ausente", http.StatusUnauthorized)
			return
		}
		tx := db.WithContext(r.Context())

		var cur RefreshToken
		if err := tx.Where("hash = ?", hashRaw(c.Value)).First(&cur).Error; err != nil {
			clearRTCookie(w)
			http.Error(w, "refresh inválido", http.StatusUnauthorized)
			return
		}
		now := time.Now()
		if cur.RevokedAt != nil {
			log.Printf("[auth][refresh] reuso de token revogado familia=%s user=%d", cur.FamilyID, cur.UserID)
			_ = tx.Model(&RefreshToken{}).
				Where("family_id = ? AND revoked_at IS NULL", cur.FamilyID).
				Update("revoked_at", &now).Error
			clearRTCookie(w)
			http.Error(w, "refresh revogado", http.StatusUnauthorized)
			return
		}
		if now.After(cur.ExpiresAt) {
			clearRTCookie(w)
			http.Error(w, "refresh expirado", http.StatusUnauthorized)
			return
		}

		if err := tx.Model(&cur).Update("revoked_at", &now).Error; err != nil {
			http.Error(w, "erro ao rotacionar refresh", http.StatusInternalServerError)
			return
		}

		access, err := GerarAccessToken(cur.UserID, cur.IsAdmin)
		if err != nil {
			clearRTCookie(w)
			http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
			return
		}
		if err := criarRefresh(tx, w, cur.UserID, cur.IsAdmin, cur.FamilyID); err != nil {
			clearRTCookie(w)
			http.Error(w, "erro ao gerar refresh", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(novaResposta(access))
	}
}

// POST /auth/logout
// aoEncerrar recebe o dono do refresh token, para limpar o estado de sessão.
func LogoutHTTPHandler(db *gorm.DB, aoEncerrar func(userID uint, isAdmin bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
			tx := db.WithContext(r.Context())
			var cur RefreshToken
			if err := tx.Where("hash = ?", hashRaw(c.Value)).First(&cur).Error; err == nil {
				now := time.Now()
				_ = tx.Model(&RefreshToken{}).
					Where("family_id = ? AND revoked_at IS NULL", cur.FamilyID).
					Update("revoked_at", &now).Error
				if aoEncerrar != nil {
					aoEncerrar(cur.UserID, cur.IsAdmin)
				}
			}
		}
		clearRTCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}
