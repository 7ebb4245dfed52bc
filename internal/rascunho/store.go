// Package rascunho guarda, por sessão, os itens que o arquiteto está
// montando antes de enviar a proposta.
package rascunho

import (
	"errors"
	"sync"
	"time"

	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNaoEncontrado = errors.New("item não encontrado no rascunho")
	ErrRascunhoVazio     = errors.New("rascunho vazio")
)

// Item é uma tela configurada e já precificada.
type Item struct {
	ID                  string          `json:"id"`
	ObraID              *uint           `json:"obraId,omitempty"`
	ImagemPersonalizada string          `json:"imagemPersonalizada,omitempty"`
	TituloObra          string          `json:"tituloObra"`
	MolduraID           string          `json:"molduraId"`
	AcabamentoID        string          `json:"acabamentoId"`
	FormatoID           string          `json:"formatoId"`
	Tamanho             string          `json:"tamanho"`
	Quantidade          int             `json:"quantidade"`
	PrecoUnitario       decimal.Decimal `json:"precoUnitario"`
	PrecoTotal          decimal.Decimal `json:"precoTotal"`
	AcabamentoAjustado  bool            `json:"acabamentoAjustado"`
	Descricao           string          `json:"descricao"`
}

type Rascunho struct {
	UserID       uint      `json:"-"`
	Itens        []Item    `json:"itens"`
	AtualizadoEm time.Time `json:"atualizadoEm"`
}

func (r Rascunho) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Itens {
		total = total.Add(it.PrecoTotal)
	}
	return total
}

func (r Rascunho) PrevisaoComissao(taxa decimal.Decimal) decimal.Decimal {
	return precificacao.CalcularComissao(r.Subtotal(), taxa)
}

// Store mantém um rascunho por usuário. Seguro para uso concorrente.
type Store struct {
	mu        sync.RWMutex
	rascunhos map[uint]*Rascunho
}

func NewStore() *Store {
	return &Store{rascunhos: map[uint]*Rascunho{}}
}

// Iniciar cria o rascunho vazio do usuário, se ainda não existir.
func (s *Store) Iniciar(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iniciar(userID)
}

func (s *Store) iniciar(userID uint) *Rascunho {
	r, ok := s.rascunhos[userID]
	if !ok {
		r = &Rascunho{UserID: userID, Itens: []Item{}, AtualizadoEm: time.Now()}
		s.rascunhos[userID] = r
	}
	return r
}

// Encerrar descarta o rascunho (logout).
func (s *Store) Encerrar(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rascunhos, userID)
}

// Obter devolve uma cópia; o primeiro acesso inicia a sessão.
func (s *Store) Obter(userID uint) Rascunho {
	s.mu.RLock()
	r, ok := s.rascunhos[userID]
	if ok {
		c := copiar(r)
		s.mu.RUnlock()
		return c
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return copiar(s.iniciar(userID))
}

func copiar(r *Rascunho) Rascunho {
	c := *r
	c.Itens = append(make([]Item, 0, len(r.Itens)), r.Itens...)
	return c
}

// Adicionar anexa o item no fim e atribui um id novo.
func (s *Store) Adicionar(userID uint, it Item) Item {
	it.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.iniciar(userID)
	r.Itens = append(r.Itens, it)
	r.AtualizadoEm = time.Now()
	return it
}

// Remover tira exatamente o item informado; os demais ficam como estão.
func (s *Store) Remover(userID uint, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rascunhos[userID]
	if !ok {
		return ErrItemNaoEncontrado
	}
	for i, it := range r.Itens {
		if it.ID == itemID {
			r.Itens = append(r.Itens[:i:i], r.Itens[i+1:]...)
			r.AtualizadoEm = time.Now()
			return nil
		}
	}
	return ErrItemNaoEncontrado
}

// Retirar tira os itens informados, em geral os que acabaram de virar
// proposta. Itens adicionados depois da leitura continuam no rascunho.
func (s *Store) Retirar(userID uint, ids []string) {
	if len(ids) == 0 {
		return
	}
	enviados := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		enviados[id] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rascunhos[userID]
	if !ok {
		return
	}
	restantes := make([]Item, 0, len(r.Itens))
	for _, it := range r.Itens {
		if _, ok := enviados[it.ID]; !ok {
			restantes = append(restantes, it)
		}
	}
	r.Itens = restantes
	r.AtualizadoEm = time.Now()
}

// Limpar esvazia o rascunho mantendo a sessão.
func (s *Store) Limpar(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.iniciar(userID)
	r.Itens = []Item{}
	r.AtualizadoEm = time.Now()
}
