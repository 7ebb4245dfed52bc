package producao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GaleriaDecor/api-arquiteto/internal/httpx"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// GET /producao?status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	ordens, err := h.Repository.ListarTodos(h.DB.WithContext(r.Context()), r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "Erro ao listar ordens de produção", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ordens)
}

// PATCH /producao/{id}/concluir
func (h *Handler) Concluir(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de ordem inválido", http.StatusBadRequest)
		return
	}
	o, err := h.Repository.Concluir(h.DB.WithContext(r.Context()), uint(id))
	switch {
	case errors.Is(err, ErrOrdemNaoEncontrada):
		http.Error(w, "Ordem de produção não encontrada", http.StatusNotFound)
		return
	case errors.Is(err, ErrOrdemConcluida):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "Erro ao concluir ordem", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}
