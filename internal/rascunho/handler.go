package rascunho

import (
	"errors"
	"net/http"

	"github.com/GaleriaDecor/api-arquiteto/internal/arquiteto"
	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/catalogo"
	"github.com/GaleriaDecor/api-arquiteto/internal/httpx"
	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Store      *Store
	Catalogo   *catalogo.Catalogo
	Arquitetos arquiteto.Repository
}

func NewHandler(db *gorm.DB, store *Store, cat *catalogo.Catalogo) *Handler {
	return &Handler{DB: db, Store: store, Catalogo: cat, Arquitetos: arquiteto.NewRepository()}
}

type RascunhoResponse struct {
	Rascunho
	Subtotal          decimal.Decimal `json:"subtotal"`
	SubtotalFormatado string          `json:"subtotalFormatado"`
	TaxaComissao      decimal.Decimal `json:"taxaComissao"`
	PrevisaoComissao  decimal.Decimal `json:"previsaoComissao"`
}

func (h *Handler) responder(w http.ResponseWriter, r *http.Request, status int) {
	userID, _ := auth.Usuario(r)
	a, err := h.Arquitetos.BuscarPorID(h.DB.WithContext(r.Context()), userID)
	if err != nil {
		http.Error(w, "arquiteto não encontrado", http.StatusNotFound)
		return
	}
	rasc := h.Store.Obter(userID)
	httpx.JSON(w, status, RascunhoResponse{
		Rascunho:          rasc,
		Subtotal:          rasc.Subtotal(),
		SubtotalFormatado: precificacao.Formatar(rasc.Subtotal()),
		TaxaComissao:      a.TaxaComissao,
		PrevisaoComissao:  rasc.PrevisaoComissao(a.TaxaComissao),
	})
}

// GET /rascunho
func (h *Handler) Obter(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, http.StatusOK)
}

// POST /rascunho/itens
func (h *Handler) AdicionarItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	it, err := MontarItem(h.DB.WithContext(r.Context()), h.Catalogo, req)
	if err != nil {
		catalogo.ResponderErroPreco(w, err)
		return
	}
	userID, _ := auth.Usuario(r)
	h.Store.Adicionar(userID, it)
	h.responder(w, r, http.StatusCreated)
}

// DELETE /rascunho/itens/{itemId}
func (h *Handler) RemoverItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.Usuario(r)
	if err := h.Store.Remover(userID, mux.Vars(r)["itemId"]); errors.Is(err, ErrItemNaoEncontrado) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.responder(w, r, http.StatusOK)
}

// DELETE /rascunho
func (h *Handler) Limpar(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.Usuario(r)
	h.Store.Limpar(userID)
	w.WriteHeader(http.StatusNoContent)
}
