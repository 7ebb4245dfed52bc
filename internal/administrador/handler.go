package administrador

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/httpx"
	"github.com/GaleriaDecor/api-arquiteto/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

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

func (h *Handler) db(r *http.Request) *gorm.DB {
	return h.DB.WithContext(r.Context())
}

// POST /administradores/login
// Valida email/senha, emite access token RS256 e seta refresh token em cookie httpOnly.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.FindByEmail(h.db(r), req.Email)
	if err != nil || !utils.VerificarSenha(user.Password, req.Password) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	tokens, err := auth.EmitirTokensNoLogin(h.db(r), w, user.ID, true)
	if err != nil {
		log.Printf("[administrador][login] erro ao gerar tokens id=%d: %v", user.ID, err)
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusOK, tokens)
}

// POST /administradores
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	if err := utils.ValidarSenha(req.Senha); err != nil {
		httpx.Erro(w, http.StatusUnprocessableEntity, "dados inválidos", httpx.Violacoes{"senha": err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.Repository.FindByEmail(h.db(r), email); err == nil {
		http.Error(w, "e-mail já cadastrado", http.StatusConflict)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	a := Administrador{
		Nome:      req.Nome,
		Sobrenome: req.Sobrenome,
		Email:     email,
		Telefone:  req.Telefone,
		Foto:      req.Foto,
		Password:  hash,
	}
	if err := h.Repository.Save(h.db(r), &a); err != nil {
		http.Error(w, "erro ao salvar administrador", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusCreated, a)
}

// GET /administradores
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListAll(h.db(r))
	if err != nil {
		http.Error(w, "erro ao listar administradores", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /administradores/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	a, err := h.Repository.FindByID(h.db(r), uint(id))
	if err != nil {
		http.Error(w, "administrador não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// PUT /administradores/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var req UpdateRequest
	if err := httpx.Decodificar(r, &req); err != nil {
		httpx.ResponderErroEntrada(w, err)
		return
	}
	a, err := h.Repository.Update(h.db(r), uint(id), &req)
	if errors.Is(err, ErrAdministradorNaoEncontrado) {
		http.Error(w, "administrador não encontrado", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "erro ao atualizar administrador", http.StatusInternalServerError)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

// DELETE /administradores/{id}
// Ninguém exclui a própria conta.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if userID, _ := auth.Usuario(r); uint(id) == userID {
		http.Error(w, "não é possível excluir a própria conta", http.StatusConflict)
		return
	}
	err = h.Repository.Delete(h.db(r), uint(id))
	if errors.Is(err, ErrAdministradorNaoEncontrado) {
		http.Error(w, "administrador não encontrado", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "erro ao excluir administrador", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /administradores/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.Usuario(r)
	a, err := h.Repository.FindByID(h.db(r), userID)
	if err != nil {
		http.Error(w, "administrador não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}
