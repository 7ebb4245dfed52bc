package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GaleriaDecor/api-arquiteto/internal/administrador"
	"github.com/GaleriaDecor/api-arquiteto/internal/arquiteto"
	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/catalogo"
	"github.com/GaleriaDecor/api-arquiteto/internal/comentario"
	"github.com/GaleriaDecor/api-arquiteto/internal/comissao"
	"github.com/GaleriaDecor/api-arquiteto/internal/config"
	"github.com/GaleriaDecor/api-arquiteto/internal/obra"
	"github.com/GaleriaDecor/api-arquiteto/internal/producao"
	"github.com/GaleriaDecor/api-arquiteto/internal/proposta"
	dbutil "github.com/GaleriaDecor/api-arquiteto/internal/utils/db"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	if err := auth.Inicializar(auth.Opcoes{
		ChavePrivadaPath: cfg.Auth.ChavePrivadaPath,
		KID:              cfg.Auth.KID,
		Issuer:           cfg.Auth.Issuer,
		Audience:         cfg.Auth.Audience,
		CookieSeguro:     cfg.Auth.CookieSeguro,
	}); err != nil {
		log.Fatalf("[main] erro ao inicializar auth: %v", err)
	}

	// catálogo inconsistente impede a subida
	cat := catalogo.Padrao()
	if err := cat.Validar(); err != nil {
		log.Fatalf("[main] %v", err)
	}

	ctx := context.Background()
	db, err := dbutil.ConnectDataBase(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("[main] erro ao conectar no banco: %v", err)
	}

	if err := db.AutoMigrate(
		&obra.Obra{},
		&arquiteto.Arquiteto{},
		&administrador.Administrador{},
		&auth.RefreshToken{},
		&proposta.Proposta{},
		&proposta.Item{},
		&comissao.Comissao{},
		&comentario.Comentario{},
		&producao.OrdemProducao{},
	); err != nil {
		log.Fatalf("[main] erro no AutoMigrate: %v", err)
	}

	if n, err := obra.Semear(db); err != nil {
		log.Fatalf("[main] erro ao semear acervo: %v", err)
	} else if n > 0 {
		log.Printf("[main] acervo inicial: %d obra(s)", n)
	}
	if cfg.AdminEmail != "" {
		if err := administrador.GarantirAdminInicial(db, cfg.AdminEmail, cfg.AdminSenha); err != nil {
			log.Fatalf("[main] erro ao criar administrador inicial: %v", err)
		}
	}

	r := novoRouter(db, cat, cfg)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.OrigensCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Porta,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] servidor rodando na porta %s", cfg.Porta)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] servidor: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] erro no shutdown: %v", err)
	}
	log.Println("[main] servidor encerrado")
}
