package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	PapelArquiteto = "arquiteto"
	PapelAdmin     = "admin"
)

// Claims do access token. Arquitetos e administradores vivem em tabelas
// separadas, então o par (UserID, IsAdmin) identifica o usuário.
type Claims struct {
	UserID  uint   `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	Papel   string `json:"papel"`
	jwt.RegisteredClaims
}

const AccessTTL = 15 * time.Minute

func papel(isAdmin bool) string {
	if isAdmin {
		return PapelAdmin
	}
	return PapelArquiteto
}

// GerarAccessToken assina um JWT RS256 com kid, iss, aud, iat, nbf e jti.
func GerarAccessToken(userID uint, isAdmin bool) (string, error) {
	priv := getPriv()
	if priv == nil {
		return "", ErrChavesNaoConfiguradas
	}

	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		Papel:   papel(isAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    getIssuer(),
			Audience:  []string{getAudience()},
			Subject:   fmt.Sprintf("%s:%d", papel(isAdmin), userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ID:        fmt.Sprintf("%d-%d", userID, now.UnixNano()),
		},
	}

	tok := jwt.NewWithClaims(signMethod(), claims)
	tok.Header["kid"] = getKID()
	return tok.SignedString(priv)
}

// ValidarAccessToken confere assinatura, iss, aud e exp.
func ValidarAccessToken(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(getIssuer()),
		jwt.WithAudience(getAudience()),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("kid ausente")
		}
		pub, ok := getPub(kid)
		if !ok {
			return nil, errors.New("kid desconhecido")
		}
		return pub, nil
	})
	if err != nil {
		return nil, err
	}

	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("token inválido")
	}
	return c, nil
}
