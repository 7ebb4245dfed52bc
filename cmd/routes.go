package main

import (
	"net/http"

	"github.com/GaleriaDecor/api-arquiteto/internal/administrador"
	"github.com/GaleriaDecor/api-arquiteto/internal/arquiteto"
	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/catalogo"
	"github.com/GaleriaDecor/api-arquiteto/internal/comentario"
	"github.com/GaleriaDecor/api-arquiteto/internal/comissao"
	"github.com/GaleriaDecor/api-arquiteto/internal/config"
	"github.com/GaleriaDecor/api-arquiteto/internal/eventos"
	"github.com/GaleriaDecor/api-arquiteto/internal/notificacao"
	"github.com/GaleriaDecor/api-arquiteto/internal/obra"
	"github.com/GaleriaDecor/api-arquiteto/internal/producao"
	"github.com/GaleriaDecor/api-arquiteto/internal/proposta"
	"github.com/GaleriaDecor/api-arquiteto/internal/rascunho"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func admin(h http.HandlerFunc) http.Handler { return auth.RequireAdmin(h) }
func arquitetoSo(h http.HandlerFunc) http.Handler { return auth.RequireArquiteto(h) }

func novoRouter(db *gorm.DB, cat *catalogo.Catalogo, cfg config.Config) *mux.Router {
	notificador := notificacao.New(cfg.WebhookURL)
	store := rascunho.NewStore()
	hub := eventos.NewHub()
	obras := obra.NewRepository(db)

	arquitetoHandler := arquiteto.NewHandler(db, notificador, store)
	administradorHandler := administrador.NewHandler(db)
	obraHandler := obra.NewHandler(obras)
	catalogoHandler := catalogo.NewHandler(cat, obras)
	rascunhoHandler := rascunho.NewHandler(db, store, cat)
	propostaHandler := proposta.NewHandler(proposta.NewService(db, hub, notificador), cat, store)
	comissaoHandler := comissao.NewHandler(comissao.NewRepository(db))
	comentarioHandler := comentario.NewHandler(db)
	producaoHandler := producao.NewHandler(db)

	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/arquitetos", arquitetoHandler.Registrar).Methods("POST")
	r.HandleFunc("/arquitetos/login", arquitetoHandler.Login).Methods("POST")
	r.HandleFunc("/administradores/login", administradorHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(db)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(db, func(userID uint, isAdmin bool) {
		if !isAdmin {
			store.Encerrar(userID)
		}
	})).Methods("POST")
	r.HandleFunc("/.well-known/jwks.json", auth.JWKSHandler).Methods("GET")

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de arquitetos
	api.HandleFunc("/arquitetos/me", arquitetoHandler.Me).Methods("GET")
	api.HandleFunc("/arquitetos/me", arquitetoHandler.AtualizarMe).Methods("PUT")
	api.HandleFunc("/arquitetos/me/senha", arquitetoHandler.AlterarSenha).Methods("PUT")
	api.HandleFunc("/arquitetos/me/resumo", arquitetoHandler.Resumo).Methods("GET")
	api.Handle("/arquitetos", admin(arquitetoHandler.Listar)).Methods("GET")
	api.HandleFunc("/arquitetos/{id}", arquitetoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/arquitetos/{id}/resumo", arquitetoHandler.Resumo).Methods("GET")
	api.Handle("/arquitetos/{id}", admin(arquitetoHandler.Deletar)).Methods("DELETE")
	api.Handle("/arquitetos/{id}/aprovacao", admin(arquitetoHandler.DefinirAprovacao)).Methods("PATCH")
	api.Handle("/arquitetos/{id}/comissao", admin(arquitetoHandler.DefinirTaxaComissao)).Methods("PATCH")
	api.Handle("/arquitetos/{id}/redefinir-senha", admin(arquitetoHandler.RedefinirSenha)).Methods("POST")

	// Rotas de administradores
	api.HandleFunc("/administradores/me", administradorHandler.Me).Methods("GET")
	api.Handle("/administradores", admin(administradorHandler.Create)).Methods("POST")
	api.Handle("/administradores", admin(administradorHandler.List)).Methods("GET")
	api.Handle("/administradores/{id}", admin(administradorHandler.GetByID)).Methods("GET")
	api.Handle("/administradores/{id}", admin(administradorHandler.Update)).Methods("PUT")
	api.Handle("/administradores/{id}", admin(administradorHandler.Delete)).Methods("DELETE")

	// Rotas de obras e catálogo
	api.HandleFunc("/obras", obraHandler.List).Methods("GET")
	api.HandleFunc("/obras/{id}", obraHandler.Get).Methods("GET")
	api.Handle("/obras", admin(obraHandler.Create)).Methods("POST")
	api.Handle("/obras/{id}", admin(obraHandler.Update)).Methods("PUT")
	api.Handle("/obras/{id}", admin(obraHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/catalogo", catalogoHandler.Get).Methods("GET")
	api.HandleFunc("/catalogo/cotacao", catalogoHandler.Cotar).Methods("POST")

	// Rotas do rascunho (só arquiteto)
	api.Handle("/rascunho", arquitetoSo(rascunhoHandler.Obter)).Methods("GET")
	api.Handle("/rascunho", arquitetoSo(rascunhoHandler.Limpar)).Methods("DELETE")
	api.Handle("/rascunho/itens", arquitetoSo(rascunhoHandler.AdicionarItem)).Methods("POST")
	api.Handle("/rascunho/itens/{itemId}", arquitetoSo(rascunhoHandler.RemoverItem)).Methods("DELETE")
	api.Handle("/rascunho/enviar", arquitetoSo(propostaHandler.EnviarRascunho)).Methods("POST")

	// Rotas de propostas
	api.Handle("/propostas", arquitetoSo(propostaHandler.Criar)).Methods("POST")
	api.Handle("/propostas/manual", admin(propostaHandler.CriarManual)).Methods("POST")
	api.HandleFunc("/propostas", propostaHandler.Listar).Methods("GET")
	api.HandleFunc("/propostas/{id}", propostaHandler.BuscarPorID).Methods("GET")
	api.Handle("/propostas/{id}", admin(propostaHandler.Deletar)).Methods("DELETE")
	api.HandleFunc("/propostas/{id}/status", propostaHandler.AlterarStatus).Methods("PATCH")
	api.HandleFunc("/propostas/{id}/pdf", propostaHandler.PDF).Methods("GET")
	api.HandleFunc("/propostas/{id}/producao", propostaHandler.Producao).Methods("GET")
	api.HandleFunc("/propostas/{id}/eventos", propostaHandler.Eventos).Methods("GET")

	// Rotas de comissões
	api.HandleFunc("/comissoes", comissaoHandler.List).Methods("GET")
	api.HandleFunc("/propostas/{id}/comissao", comissaoHandler.GetByProposta).Methods("GET")
	api.Handle("/comissoes/{id}/pagamento", admin(comissaoHandler.RegistrarPagamento)).Methods("PATCH")

	// Rotas de comentários
	api.HandleFunc("/propostas/{id}/comentarios", comentarioHandler.ListarPorProposta).Methods("GET")
	api.HandleFunc("/propostas/{id}/comentarios", comentarioHandler.CriarComentario).Methods("POST")
	api.HandleFunc("/comentarios/{id}", comentarioHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/comentarios/{id}", comentarioHandler.RemoverComentario).Methods("DELETE")

	// Rotas de produção (admin)
	api.Handle("/producao", admin(producaoHandler.Listar)).Methods("GET")
	api.Handle("/producao/{id}/concluir", admin(producaoHandler.Concluir)).Methods("PATCH")

	return r
}
