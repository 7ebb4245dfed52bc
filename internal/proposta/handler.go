package proposta

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/GaleriaDecor/api-arquiteto/internal/arquiteto"
	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/catalogo"
	"github.com/GaleriaDecor/api-arquiteto/internal/eventos"
	"github.com/GaleriaDecor/api-arquiteto/internal/httpx"
	"github.com/GaleriaDecor/api-arquiteto/internal/producao"
	"github.com/GaleriaDecor/api-arquiteto/internal/rascunho"
	"github.com/gorilla/mux"
)

type Handler struct {
	Service  *Service
	Catalogo *catalogo.Catalogo
	Store    *rascunho.Store
}

func NewHandler(s *Service, cat *catalogo.Catalogo, store *rascunho.Store) *Handler {
	return &Handler{Service: s, Catalogo: cat, Store: store}
}

func responderErro(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPropostaNaoEncontrada), errors.Is(err, arquiteto.ErrArquitetoNaoEncontrado):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAcessoNegado), errors.Is(err, ErrSomenteAdmin), errors.Is(err, ErrArquitetoInapto):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrTransicaoInvalida), errors.Is(err, ErrExclusaoNaoPermitida):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, rascunho.ErrRascunhoVazio):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Printf("[proposta][handler] erro: %v", err)
		http.Error(w, "Erro ao processar proposta", http.StatusInternalServerError)
	}
}

// carregar busca a proposta e confere acesso: admin vê todas, arquiteto só as suas.
func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*Proposta, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de proposta inválido", http.StatusBadRequest)
		return nil, false
	}
	p, err := h.Service.Repository.BuscarPorID(h.Service.DB.WithContext(r.Context()), uint(id))
	if err != nil {
		responderErro(w, err)
		return nil, false
	}
	if userID, isAdmin := auth.Usuario(r); !isAdmin && p.ArquitetoID != userID {
		responderErro(w, ErrAcessoNegado)
		return nil, false
	}
	return p, true
}

func (h *Handler) montarItens(w http.ResponseWriter, r *http.Request, reqs []rascunho.ItemRequest) ([]rascunho.Item, bool) {
	db := h.Service.DB.WithContext(r.Context())
	itens := make([]rascunho.Item, 0, len(reqs))
	for i, req := range reqs {
		it, err := rascunho.MontarItem(db, h.Catalogo, req)
		if err != nil {
			catalogo.ResponderErroPreco(w, fmt.Errorf("item %d: %w", i+1, err))
			return nil, false
		}
		itens = append(itens, it)
	}
	return itens, true
}

// POST /rascunho/enviar
// Envia o rascunho da sessão e o esvazia.
func (h *Handler) EnviarRascunho(w http.ResponseWriter, r *http.Request) {
	var req EnvioRascunhoRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	userID, _ := auth.Usuario(r)
	rasc := h.Store.Obter(userID)

	p, err := h.Service.Submeter(r.Context(), Envio{
		ArquitetoID: userID,
		Cliente:     req.Cliente,
		Projeto:     req.Projeto,
		Observacoes: req.Observacoes,
		Itens:       rasc.Itens,
	})
	if err != nil {
		responderErro(w, err)
		return
	}
	ids := make([]string, len(rasc.Itens))
	for i, it := range rasc.Itens {
		ids[i] = it.ID
	}
	h.Store.Retirar(userID, ids)
	httpx.JSON(w, http.StatusCreated, toDTO(*p, h.Catalogo))
}

// POST /propostas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	itens, ok := h.montarItens(w, r, req.Itens)
	if !ok {
		return
	}
	userID, _ := auth.Usuario(r)
	p, err := h.Service.Submeter(r.Context(), Envio{
		ArquitetoID:  userID,
		Cliente:      req.Cliente,
		Projeto:      req.Projeto,
		Observacoes:  req.Observacoes,
		Itens:        itens,
		ComoRascunho: req.Rascunho,
	})
	if err != nil {
		responderErro(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toDTO(*p, h.Catalogo))
}

// POST /propostas/manual (admin)
func (h *Handler) CriarManual(w http.ResponseWriter, r *http.Request) {
	var req ManualRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	itens, ok := h.montarItens(w, r, req.Itens)
	if !ok {
		return
	}
	adminID, _ := auth.Usuario(r)
	p, err := h.Service.Submeter(r.Context(), Envio{
		ArquitetoID:      req.ArquitetoID,
		CriadoPorAdminID: &adminID,
		Cliente:          req.Cliente,
		Projeto:          req.Projeto,
		Observacoes:      req.Observacoes,
		Itens:            itens,
		ComoRascunho:     req.Rascunho,
	})
	if err != nil {
		responderErro(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toDTO(*p, h.Catalogo))
}

// GET /propostas?status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin := auth.Usuario(r)
	arquitetoID := userID
	if isAdmin {
		arquitetoID = 0
	}
	list, err := h.Service.Repository.Listar(h.Service.DB.WithContext(r.Context()), arquitetoID, r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "Erro ao listar propostas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTOs(list, h.Catalogo))
}

// GET /propostas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	p, ok := h.carregar(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(*p, h.Catalogo))
}

// PATCH /propostas/{id}/status
func (h *Handler) AlterarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de proposta inválido", http.StatusBadRequest)
		return
	}
	var req StatusRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	userID, isAdmin := auth.Usuario(r)
	p, err := h.Service.AlterarStatus(r.Context(), uint(id), req.Status, userID, isAdmin)
	if err != nil {
		responderErro(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(*p, h.Catalogo))
}

// DELETE /propostas/{id} (admin; só canceladas)
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	p, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if p.Status != StatusCancelada {
		responderErro(w, ErrExclusaoNaoPermitida)
		return
	}
	if err := h.Service.Repository.Deletar(h.Service.DB.WithContext(r.Context()), p.ID); err != nil {
		responderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /propostas/{id}/pdf
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	p, ok := h.carregar(w, r)
	if !ok {
		return
	}
	a, err := h.Service.Arquitetos.BuscarPorID(h.Service.DB.WithContext(r.Context()).Unscoped(), p.ArquitetoID)
	if err != nil {
		responderErro(w, err)
		return
	}
	data, err := GerarPDF(*p, *a, h.Catalogo)
	if err != nil {
		log.Printf("[proposta][pdf] erro ao gerar id=%d: %v", p.ID, err)
		http.Error(w, "Erro ao gerar PDF", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"proposta-%d.pdf\"", p.ID))
	_, _ = w.Write(data)
}

// GET /propostas/{id}/producao
// Itens que não foram gravados aparecem como "dados não sincronizados".
func (h *Handler) Producao(w http.ResponseWriter, r *http.Request) {
	p, ok := h.carregar(w, r)
	if !ok {
		return
	}
	db := h.Service.DB.WithContext(r.Context())
	ordem, err := h.Service.Producao.BuscarPorProposta(db, p.ID)
	if errors.Is(err, producao.ErrOrdemNaoEncontrada) {
		http.Error(w, "Proposta ainda sem ordem de produção", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Erro ao buscar ordem de produção", http.StatusInternalServerError)
		return
	}

	nomeArquiteto := fmt.Sprintf("arquiteto #%d", p.ArquitetoID)
	if a, err := h.Service.Arquitetos.BuscarPorID(db.Unscoped(), p.ArquitetoID); err == nil {
		nomeArquiteto = a.Nome + " " + a.Sobrenome
	}

	linhas := make([]producao.Linha, 0, len(p.Itens))
	for _, it := range p.Itens {
		linhas = append(linhas, producao.Linha{Posicao: it.Posicao, Descricao: it.Descricao(h.Catalogo), Quantidade: it.Quantidade})
	}
	httpx.JSON(w, http.StatusOK, producao.MontarVoucher(ordem, producao.Cabecalho{
		PropostaID: p.ID,
		Cliente:    p.Cliente,
		Projeto:    p.Projeto,
		Arquiteto:  nomeArquiteto,
		ValorTotal: p.ValorTotal,
		PagaEm:     p.PagaEm,
	}, linhas))
}

// GET /propostas/{id}/eventos (SSE)
func (h *Handler) Eventos(w http.ResponseWriter, r *http.Request) {
	p, ok := h.carregar(w, r)
	if !ok {
		return
	}
	// assina antes de ler o estado atual; mudança no intervalo chega pelo canal
	ch, cancelar := h.Service.Hub.Assinar(p.ID)
	defer cancelar()
	atual, err := h.Service.Repository.BuscarPorID(h.Service.DB.WithContext(r.Context()), p.ID)
	if err != nil {
		responderErro(w, err)
		return
	}
	eventos.Transmitir(w, r, eventos.Mudanca{PropostaID: atual.ID, Status: atual.Status, Em: atual.UpdatedAt}, ch)
}
