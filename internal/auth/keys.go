package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Opcoes vem de config.Auth.
type Opcoes struct {
	ChavePrivadaPath string
	KID              string
	Issuer           string
	Audience         string
	CookieSeguro     bool
}

var ErrChavesNaoConfiguradas = errors.New("chaves de assinatura não configuradas")

var (
	mu sync.RWMutex

	privKey      *rsa.PrivateKey
	pubKeys      = map[string]*rsa.PublicKey{} // kid -> pub
	activeKID    string
	issuer       string
	audience     string
	cookieSeguro bool
)

// Inicializar carrega a chave RSA (PKCS#1 ou PKCS#8) do arquivo indicado.
func Inicializar(o Opcoes) error {
	if o.ChavePrivadaPath == "" || o.KID == "" || o.Issuer == "" || o.Audience == "" {
		return errors.New("faltam AUTH_RSA_PRIVATE_PATH/AUTH_KID/AUTH_ISSUER/AUTH_AUDIENCE")
	}
	b, err := os.ReadFile(o.ChavePrivadaPath)
	if err != nil {
		return fmt.Errorf("ler chave privada: %w", err)
	}
	priv, err := parseChavePrivada(b)
	if err != nil {
		return err
	}
	ConfigurarChaves(priv, o.KID, o.Issuer, o.Audience)
	ConfigurarCookie(o.CookieSeguro)
	return nil
}

func parseChavePrivada(b []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("pem da chave privada inválido")
	}
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return k, nil
	}
	k8, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse chave privada: %w", err)
	}
	k, ok := k8.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("chave privada não é RSA")
	}
	return k, nil
}

// ConfigurarChaves instala a chave ativa. Chaves de kids anteriores continuam
// válidas para verificação.
func ConfigurarChaves(priv *rsa.PrivateKey, kid, iss, aud string) {
	mu.Lock()
	defer mu.Unlock()
	privKey = priv
	activeKID = kid
	issuer = iss
	audience = aud
	pubKeys[kid] = &priv.PublicKey
}

func ConfigurarCookie(seguro bool) {
	mu.Lock()
	cookieSeguro = seguro
	mu.Unlock()
}

func getPriv() *rsa.PrivateKey {
	mu.RLock()
	defer mu.RUnlock()
	return privKey
}

func getPub(kid string) (*rsa.PublicKey, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := pubKeys[kid]
	return p, ok
}

func getKID() string {
	mu.RLock()
	defer mu.RUnlock()
	return activeKID
}

func getIssuer() string {
	mu.RLock()
	defer mu.RUnlock()
	return issuer
}

func getAudience() string {
	mu.RLock()
	defer mu.RUnlock()
	return audience
}

func getCookieSeguro() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cookieSeguro
}

func signMethod() jwt.SigningMethod { return jwt.SigningMethodRS256 }
