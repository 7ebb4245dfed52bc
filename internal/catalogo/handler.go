package catalogo

import (
	"errors"
	"log"
	"net/http"

	"github.com/GaleriaDecor/api-arquiteto/internal/httpx"
	"github.com/GaleriaDecor/api-arquiteto/internal/obra"
	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
)

type Handler struct {
	Catalogo *Catalogo
	Obras    *obra.Repository
}

func NewHandler(c *Catalogo, obras *obra.Repository) *Handler {
	return &Handler{Catalogo: c, Obras: obras}
}

type CotacaoRequest struct {
	ObraID              *uint  `json:"obraId"`
	ImagemPersonalizada string `json:"imagemPersonalizada" validate:"omitempty,url"`
	Selecao
}

type CotacaoResponse struct {
	Cotacao
	TituloObra string `json:"tituloObra"`
	Exibicao   string `json:"precoFormatado"`
}

// GET /catalogo
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Catalogo)
}

// POST /catalogo/cotacao
func (h *Handler) Cotar(w http.ResponseWriter, r *http.Request) {
	var req CotacaoRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}

	obras := obra.NewRepository(h.Obras.DB.WithContext(r.Context()))
	base, titulo, err := obras.PrecoBase(req.ObraID, req.ImagemPersonalizada)
	if err != nil {
		ResponderErroPreco(w, err)
		return
	}

	cot, err := h.Catalogo.Cotar(base, req.Selecao)
	if err != nil {
		ResponderErroPreco(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, CotacaoResponse{
		Cotacao:    cot,
		TituloObra: titulo,
		Exibicao:   precificacao.Formatar(cot.PrecoUnitario),
	})
}

// ResponderErroPreco traduz falhas de resolução e cálculo de preço.
func ResponderErroPreco(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, obra.ErrObraNaoEncontrada), errors.Is(err, ErrNaoEncontrado):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, obra.ErrObraInativa),
		errors.Is(err, obra.ErrOrigemItem),
		errors.Is(err, precificacao.ErrTamanhoInvalido),
		errors.Is(err, precificacao.ErrPrecoBaseInvalido),
		errors.Is(err, precificacao.ErrFormatoInvalido):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Printf("[catalogo][cotacao] erro ao calcular preço: %v", err)
		http.Error(w, "Erro ao calcular preço", http.StatusInternalServerError)
	}
}
