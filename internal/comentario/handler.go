package comentario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/httpx"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula o DB e o Repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// autorizarProposta confere que a proposta existe e é do arquiteto logado
// (admin passa sempre).
func (h *Handler) autorizarProposta(w http.ResponseWriter, r *http.Request) (uint, bool) {
	propostaID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de proposta inválido", http.StatusBadRequest)
		return 0, false
	}
	dono, err := donoProposta(h.DB.WithContext(r.Context()), uint(propostaID))
	if errors.Is(err, ErrPropostaNaoEncontrada) {
		http.Error(w, "Proposta não encontrada", http.StatusNotFound)
		return 0, false
	} else if err != nil {
		http.Error(w, "Erro ao buscar proposta", http.StatusInternalServerError)
		return 0, false
	}
	if userID, isAdmin := auth.Usuario(r); !isAdmin && dono != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return 0, false
	}
	return uint(propostaID), true
}

// CriarComentario trata POST /propostas/{id}/comentarios
func (h *Handler) CriarComentario(w http.ResponseWriter, r *http.Request) {
	propostaID, ok := h.autorizarProposta(w, r)
	if !ok {
		return
	}
	var req CriarComentarioRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}

	userID, isAdmin := auth.Usuario(r)
	c := Comentario{PropostaID: propostaID, Texto: req.Texto}
	if isAdmin {
		c.AdministradorID = &userID
	} else {
		c.ArquitetoID = &userID
	}

	if err := h.Repository.Criar(h.DB.WithContext(r.Context()), &c); err != nil {
		http.Error(w, "Erro ao criar comentário", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusCreated, toDTO(c))
}

// ListarPorProposta trata GET /propostas/{id}/comentarios
func (h *Handler) ListarPorProposta(w http.ResponseWriter, r *http.Request) {
	propostaID, ok := h.autorizarProposta(w, r)
	if !ok {
		return
	}
	comentarios, err := h.Repository.ListarPorProposta(h.DB.WithContext(r.Context()), propostaID)
	if err != nil {
		http.Error(w, "Erro ao listar comentários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTOs(comentarios))
}

// carregarEditavel busca o comentário e confere autoria. Comentários do
// sistema são imutáveis; admin pode remover qualquer outro.
func (h *Handler) carregarEditavel(w http.ResponseWriter, r *http.Request, adminPode bool) (*Comentario, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de comentário inválido", http.StatusBadRequest)
		return nil, false
	}
	c, err := h.Repository.BuscarPorID(h.DB.WithContext(r.Context()), uint(id))
	if errors.Is(err, ErrComentarioNaoEncontrado) {
		http.Error(w, "Comentário não encontrado", http.StatusNotFound)
		return nil, false
	} else if err != nil {
		http.Error(w, "Erro ao buscar comentário", http.StatusInternalServerError)
		return nil, false
	}
	if c.Sistema {
		http.Error(w, "comentários do sistema não podem ser alterados", http.StatusForbidden)
		return nil, false
	}
	userID, isAdmin := auth.Usuario(r)
	if !c.Autor(userID, isAdmin) && !(adminPode && isAdmin) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return nil, false
	}
	return c, true
}

// Atualizar trata PUT /comentarios/{id} (só o autor)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	c, ok := h.carregarEditavel(w, r, false)
	if !ok {
		return
	}
	var req CriarComentarioRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	if err := h.Repository.Atualizar(h.DB.WithContext(r.Context()), c.ID, req.Texto); err != nil {
		http.Error(w, "Erro ao atualizar comentário", http.StatusInternalServerError)
		return
	}
	c.Texto = req.Texto
	httpx.JSON(w, http.StatusOK, toDTO(*c))
}

// RemoverComentario trata DELETE /comentarios/{id}
func (h *Handler) RemoverComentario(w http.ResponseWriter, r *http.Request) {
	c, ok := h.carregarEditavel(w, r, true)
	if !ok {
		return
	}
	if err := h.Repository.Remover(h.DB.WithContext(r.Context()), c.ID); err != nil {
		http.Error(w, "Erro ao remover comentário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
