package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type DB struct {
	Host            string
	Porta           uint
	Nome            string
	SecretID        string
	Usuario         string
	Senha           string
	SSLDesabilitado bool
}

type Auth struct {
	ChavePrivadaPath string
	KID              string
	Issuer           string
	Audience         string
	CookieSeguro     bool
}

type Config struct {
	Porta       string
	DB          DB
	Auth        Auth
	OrigensCORS []string
	WebhookURL  string

	// administrador criado na primeira subida, se ainda não houver nenhum
	AdminEmail string
	AdminSenha string
}

// Load lê o .env (se existir) e depois o ambiente.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env ignorado: %v", err)
	}

	return Config{
		Porta: env("PORT", "8080"),
		DB: DB{
			Host:            env("DB_HOST", "localhost"),
			Porta:           envUint("DB_PORT", 5432),
			Nome:            env("DB_NAME", "portal_arquiteto"),
			SecretID:        os.Getenv("DB_SECRET_ID"),
			Usuario:         os.Getenv("DB_USERNAME"),
			Senha:           os.Getenv("DB_PASSWORD"),
			SSLDesabilitado: os.Getenv("DB_SSL_MODE_DISABLE") == "true",
		},
		Auth: Auth{
			ChavePrivadaPath: os.Getenv("AUTH_RSA_PRIVATE_PATH"),
			KID:              os.Getenv("AUTH_KID"),
			Issuer:           os.Getenv("AUTH_ISSUER"),
			Audience:         os.Getenv("AUTH_AUDIENCE"),
			CookieSeguro:     os.Getenv("COOKIE_SECURE") == "true",
		},
		OrigensCORS: lista(env("CORS_ORIGINS", "http://localhost:3000")),
		WebhookURL:  os.Getenv("WEBHOOK_URL"),
		AdminEmail:  os.Getenv("ADMIN_EMAIL"),
		AdminSenha:  os.Getenv("ADMIN_SENHA"),
	}
}

func env(chave, padrao string) string {
	if v := strings.TrimSpace(os.Getenv(chave)); v != "" {
		return v
	}
	return padrao
}

func envUint(chave string, padrao uint) uint {
	v, err := strconv.ParseUint(os.Getenv(chave), 10, 32)
	if err != nil {
		return padrao
	}
	return uint(v)
}

func lista(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
