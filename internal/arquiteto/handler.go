package arquiteto

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/comissao"
	"github.com/GaleriaDecor/api-arquiteto/internal/httpx"
	"github.com/GaleriaDecor/api-arquiteto/internal/notificacao"
	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/GaleriaDecor/api-arquiteto/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// IniciadorSessao prepara o rascunho do arquiteto no login.
type IniciadorSessao interface {
	Iniciar(userID uint)
}

// Handler encapsula DB e repository
type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Notificador notificacao.Notificador
	Sessoes     IniciadorSessao
}

func NewHandler(db *gorm.DB, n notificacao.Notificador, sessoes IniciadorSessao) *Handler {
	return &Handler{
		DB:          db,
		Repository:  NewRepository(),
		Notificador: n,
		Sessoes:     sessoes,
	}
}

func (h *Handler) db(r *http.Request) *gorm.DB {
	return h.DB.WithContext(r.Context())
}

func idDaRota(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) carregar(w http.ResponseWriter, r *http.Request, id uint) (*Arquiteto, bool) {
	a, err := h.Repository.BuscarPorID(h.db(r), id)
	if errors.Is(err, ErrArquitetoNaoEncontrado) {
		http.Error(w, "arquiteto não encontrado", http.StatusNotFound)
		return nil, false
	} else if err != nil {
		log.Printf("[arquiteto][handler] erro ao buscar id=%d: %v", id, err)
		http.Error(w, "erro ao buscar arquiteto", http.StatusInternalServerError)
		return nil, false
	}
	return a, true
}

// Registrar cadastra um arquiteto (rota pública). O cadastro fica pendente
// até um administrador aprovar.
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req CadastroRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	doc := SomenteDigitos(req.Documento)
	if len(doc) != 11 && len(doc) != 14 {
		httpx.Erro(w, http.StatusUnprocessableEntity, "dados inválidos", httpx.Violacoes{"documento": "cpf_cnpj"})
		return
	}
	if err := utils.ValidarSenha(req.Senha); err != nil {
		httpx.Erro(w, http.StatusUnprocessableEntity, "dados inválidos", httpx.Violacoes{"senha": err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existe, err := h.Repository.Existe(h.db(r), email, doc)
	if err != nil {
		http.Error(w, "erro ao verificar cadastro", http.StatusInternalServerError)
		return
	}
	if existe {
		http.Error(w, ErrCadastroDuplicado.Error(), http.StatusConflict)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	a := Arquiteto{
		Nome:         req.Nome,
		Sobrenome:    req.Sobrenome,
		Email:        email,
		Documento:    doc,
		CAU:          req.CAU,
		Telefone:     req.Telefone,
		Escritorio:   req.Escritorio,
		Foto:         req.Foto,
		Senha:        hash,
		Status:       StatusPendente,
		TaxaComissao: TaxaPadrao,
	}
	if err := h.Repository.Salvar(h.db(r), &a); err != nil {
		log.Printf("[arquiteto][handler] erro ao salvar cadastro: %v", err)
		http.Error(w, "erro ao salvar arquiteto", http.StatusInternalServerError)
		return
	}

	notificacao.Disparar(h.Notificador, notificacao.Evento{
		Tipo:     notificacao.EventoArquitetoCadastrado,
		Mensagem: fmt.Sprintf("%s %s aguarda aprovação", a.Nome, a.Sobrenome),
		Dados:    map[string]any{"arquitetoId": a.ID, "email": a.Email, "escritorio": a.Escritorio},
		Em:       time.Now(),
	})

	httpx.JSON(w, http.StatusCreated, a)
}

// Login emite access token e refresh cookie para arquitetos aprovados.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmailOuDocumento(h.db(r), req.Login)
	if err != nil || !utils.VerificarSenha(user.Senha, req.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}
	switch user.Status {
	case StatusAprovado:
	case StatusRejeitado:
		http.Error(w, ErrArquitetoRejeitado.Error(), http.StatusForbidden)
		return
	default:
		http.Error(w, ErrArquitetoNaoAprovado.Error(), http.StatusForbidden)
		return
	}

	tokens, err := auth.EmitirTokensNoLogin(h.db(r), w, user.ID, false)
	if err != nil {
		log.Printf("[arquiteto][login] erro ao emitir tokens id=%d: %v", user.ID, err)
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	if h.Sessoes != nil {
		h.Sessoes.Iniciar(user.ID)
	}

	httpx.JSON(w, http.StatusOK, LoginResponse{
		TokenResponse:         tokens,
		PrecisaRedefinirSenha: user.PrecisaRedefinirSenha,
	})
}

// Me retorna o arquiteto logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.Usuario(r)
	a, ok := h.carregar(w, r, userID)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// AtualizarMe altera o perfil. E-mail, documento, status e taxa não mudam por aqui.
func (h *Handler) AtualizarMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.Usuario(r)
	var req PerfilRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	a, ok := h.carregar(w, r, userID)
	if !ok {
		return
	}
	a.Nome = req.Nome
	a.Sobrenome = req.Sobrenome
	a.CAU = req.CAU
	a.Telefone = req.Telefone
	a.Escritorio = req.Escritorio
	a.Foto = req.Foto
	if err := h.Repository.Salvar(h.db(r), a); err != nil {
		http.Error(w, "erro ao atualizar arquiteto", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.Usuario(r)
	var req SenhaRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	if err := utils.ValidarSenha(req.NovaSenha); err != nil {
		httpx.Erro(w, http.StatusUnprocessableEntity, "dados inválidos", httpx.Violacoes{"novaSenha": err.Error()})
		return
	}
	a, ok := h.carregar(w, r, userID)
	if !ok {
		return
	}
	if !utils.VerificarSenha(a.Senha, req.SenhaAtual) {
		http.Error(w, "senha atual incorreta", http.StatusUnauthorized)
		return
	}
	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	a.Senha = hash
	a.PrecisaRedefinirSenha = false
	if err := h.Repository.Salvar(h.db(r), a); err != nil {
		http.Error(w, "erro ao atualizar senha", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Listar (admin) aceita ?status=pendente|aprovado|rejeitado
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.Listar(h.db(r), r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "erro ao listar arquitetos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID: admin vê qualquer um; arquiteto, só a si mesmo.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	if userID, isAdmin := auth.Usuario(r); !isAdmin && id != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	a, ok := h.carregar(w, r, id)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// PATCH /arquitetos/{id}/aprovacao
func (h *Handler) DefinirAprovacao(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	var req AprovacaoRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	a, ok := h.carregar(w, r, id)
	if !ok {
		return
	}
	if *req.Aprovado {
		agora := time.Now()
		a.Status = StatusAprovado
		a.AprovadoEm = &agora
	} else {
		a.Status = StatusRejeitado
		a.AprovadoEm = nil
	}
	if err := h.Repository.Salvar(h.db(r), a); err != nil {
		http.Error(w, "erro ao atualizar arquiteto", http.StatusInternalServerError)
		return
	}
	log.Printf("[arquiteto][aprovacao] id=%d status=%s", a.ID, a.Status)
	if a.Status == StatusRejeitado {
		if err := auth.RevogarSessoes(h.db(r), a.ID, false); err != nil {
			http.Error(w, "erro ao encerrar sessões", http.StatusInternalServerError)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, a)
}

// PATCH /arquitetos/{id}/comissao
// Vale para propostas futuras; comissões já congeladas não mudam.
func (h *Handler) DefinirTaxaComissao(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	var req TaxaRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	if err := precificacao.ValidarTaxa(*req.Taxa); err != nil {
		httpx.Erro(w, http.StatusUnprocessableEntity, "dados inválidos", httpx.Violacoes{"taxa": err.Error()})
		return
	}
	a, ok := h.carregar(w, r, id)
	if !ok {
		return
	}
	a.TaxaComissao = *req.Taxa
	if err := h.Repository.Salvar(h.db(r), a); err != nil {
		http.Error(w, "erro ao atualizar taxa", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// POST /arquitetos/{id}/redefinir-senha
// Gera uma senha temporária; o arquiteto troca no próximo acesso.
func (h *Handler) RedefinirSenha(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	a, ok := h.carregar(w, r, id)
	if !ok {
		return
	}
	temp, err := utils.GerarSenhaTemporaria()
	if err != nil {
		http.Error(w, "erro ao gerar senha", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashSenha(temp)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	a.Senha = hash
	a.PrecisaRedefinirSenha = true
	if err := h.Repository.Salvar(h.db(r), a); err != nil {
		http.Error(w, "erro ao redefinir senha", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"senhaTemporaria": temp})
}

// Resumo atende /arquitetos/me/resumo e /arquitetos/{id}/resumo (admin).
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin := auth.Usuario(r)

	idParam := userID
	if idStr, ok := mux.Vars(r)["id"]; ok {
		i, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "ID inválido", http.StatusBadRequest)
			return
		}
		if !isAdmin && uint(i) != userID {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
		idParam = uint(i)
	}

	a, ok := h.carregar(w, r, idParam)
	if !ok {
		return
	}
	comissoes := comissao.NewRepository(h.db(r))
	lista, err := comissoes.List(a.ID, "")
	if err != nil {
		http.Error(w, "erro ao carregar comissões", http.StatusInternalServerError)
		return
	}
	porStatus, err := comissoes.ContarPropostas(a.ID)
	if err != nil {
		log.Printf("[arquiteto][resumo] erro ao contar propostas id=%d: %v", a.ID, err)
		http.Error(w, "erro ao carregar propostas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MontarResumoArquitetoDTO(*a, lista, porStatus))
}

// Deletar remove um arquiteto (admin)
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	err := h.Repository.Deletar(h.db(r), id)
	if errors.Is(err, ErrArquitetoNaoEncontrado) {
		http.Error(w, "arquiteto não encontrado", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "erro ao excluir arquiteto", http.StatusInternalServerError)
		return
	}
	if err := auth.RevogarSessoes(h.db(r), id, false); err != nil {
		http.Error(w, "erro ao encerrar sessões", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
