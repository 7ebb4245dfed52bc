package comissao

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/httpx"
	"github.com/gorilla/mux"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// DTO usado no PATCH /comissoes/{id}/pagamento
type PagamentoDTO struct {
	DataPagamento *time.Time `json:"dataPagamento"`
	Comprovante   string     `json:"comprovante" validate:"required,max=255"`
	NotaFiscal    string     `json:"notaFiscal" validate:"max=255"`
}

func (h *Handler) repo(r *http.Request) *Repository {
	return h.Repo.WithDB(h.Repo.DB.WithContext(r.Context()))
}

// GET /comissoes?status=&arquitetoId=
// Arquiteto vê só as próprias; admin pode filtrar por arquiteto.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin := auth.Usuario(r)
	arquitetoID := userID
	if isAdmin {
		arquitetoID = 0
		if v := r.URL.Query().Get("arquitetoId"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "ID de arquiteto inválido", http.StatusBadRequest)
				return
			}
			arquitetoID = uint(id)
		}
	}

	list, err := h.repo(r).List(arquitetoID, r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "Erro ao listar comissões", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /propostas/{id}/comissao
func (h *Handler) GetByProposta(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da proposta inválido", http.StatusBadRequest)
		return
	}
	c, err := h.repo(r).FindByProposta(uint(pid))
	if errors.Is(err, ErrComissaoNaoEncontrada) {
		http.Error(w, "Comissão não encontrada", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Erro ao buscar comissão", http.StatusInternalServerError)
		return
	}
	if userID, isAdmin := auth.Usuario(r); !isAdmin && c.ArquitetoID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// PATCH /comissoes/{id}/pagamento
func (h *Handler) RegistrarPagamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da comissão inválido", http.StatusBadRequest)
		return
	}
	var dto PagamentoDTO
	if err := httpx.Decodificar(r, &dto); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	data := time.Now()
	if dto.DataPagamento != nil {
		data = *dto.DataPagamento
	}

	c, err := h.repo(r).RegistrarPagamento(uint(id), data, dto.Comprovante, dto.NotaFiscal)
	switch {
	case errors.Is(err, ErrComissaoNaoEncontrada):
		http.Error(w, "Comissão não encontrada", http.StatusNotFound)
		return
	case errors.Is(err, ErrStatusComissao):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Printf("[comissao][handler] erro ao registrar pagamento id=%d: %v", id, err)
		http.Error(w, "Erro ao registrar pagamento", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}
