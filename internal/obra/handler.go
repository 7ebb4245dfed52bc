package obra

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/httpx"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type ObraRequest struct {
	Titulo    string          `json:"titulo" validate:"required,max=150"`
	Artista   string          `json:"artista" validate:"max=150"`
	Categoria string          `json:"categoria" validate:"required,max=60"`
	PrecoBase decimal.Decimal `json:"precoBase"`
	Imagem    string          `json:"imagem" validate:"max=255"`
	Ativa     *bool           `json:"ativa"`
}

func (h *Handler) repo(r *http.Request) *Repository {
	return NewRepository(h.Repo.DB.WithContext(r.Context()))
}

func decodificarObra(w http.ResponseWriter, r *http.Request) (*ObraRequest, bool) {
	var req ObraRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return nil, false
	}
	if !req.PrecoBase.IsPositive() {
		httpx.Erro(w, http.StatusUnprocessableEntity, "dados inválidos", httpx.Violacoes{"precoBase": "gt=0"})
		return nil, false
	}
	return &req, true
}

// GET /obras?categoria=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, isAdmin := auth.Usuario(r)
	obras, err := h.repo(r).List(r.URL.Query().Get("categoria"), isAdmin)
	if err != nil {
		http.Error(w, "Erro ao listar obras", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(obras)
}

// GET /obras/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de obra inválido", http.StatusBadRequest)
		return
	}
	o, err := h.repo(r).FindByID(uint(id))
	if err != nil {
		http.Error(w, "Obra não encontrada", http.StatusNotFound)
		return
	}
	if _, isAdmin := auth.Usuario(r); !o.Ativa && !isAdmin {
		http.Error(w, "Obra não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(o)
}

// POST /obras
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodificarObra(w, r)
	if !ok {
		return
	}
	o := Obra{
		Titulo:    req.Titulo,
		Artista:   req.Artista,
		Categoria: req.Categoria,
		PrecoBase: req.PrecoBase,
		Imagem:    req.Imagem,
		Ativa:     req.Ativa == nil || *req.Ativa,
	}
	if err := h.repo(r).Create(&o); err != nil {
		http.Error(w, "Erro ao salvar obra", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusCreated, o)
}

// PUT /obras/{id}
// Alterar o preço não afeta propostas já enviadas.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de obra inválido", http.StatusBadRequest)
		return
	}
	repo := h.repo(r)
	existente, err := repo.FindByID(uint(id))
	if errors.Is(err, ErrObraNaoEncontrada) {
		http.Error(w, "Obra não encontrada", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Erro ao buscar obra", http.StatusInternalServerError)
		return
	}

	req, ok := decodificarObra(w, r)
	if !ok {
		return
	}
	existente.Titulo = req.Titulo
	existente.Artista = req.Artista
	existente.Categoria = req.Categoria
	existente.PrecoBase = req.PrecoBase
	existente.Imagem = req.Imagem
	if req.Ativa != nil {
		existente.Ativa = *req.Ativa
	}

	if err := repo.Update(existente); err != nil {
		http.Error(w, "Erro ao atualizar obra", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusOK, existente)
}

// DELETE /obras/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de obra inválido", http.StatusBadRequest)
		return
	}
	repo := h.repo(r)
	o, err := repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Obra não encontrada", http.StatusNotFound)
		return
	}
	if err := repo.Delete(o); err != nil {
		http.Error(w, "Erro ao excluir obra", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
