package auth

import (
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
)

type jwk struct {
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// GET /.well-known/jwks.json
// Publica todas as chaves conhecidas, inclusive as de kids anteriores.
func JWKSHandler(w http.ResponseWriter, r *http.Request) {
	mu.RLock()
	keys := make([]jwk, 0, len(pubKeys))
	for kid, pub := range pubKeys {
		keys = append(keys, jwk{
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			Kid: kid,
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		})
	}
	mu.RUnlock()

	if len(keys) == 0 {
		http.Error(w, "jwks indisponível", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Keys []jwk `json:"keys"`
	}{Keys: keys})
}
