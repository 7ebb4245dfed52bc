// Package eventos distribui mudanças de status de propostas para quem está
// acompanhando a tela de confirmação.
package eventos

import (
	"log"
	"sync"
	"time"
)

// tamanho do buffer de cada assinante
const bufferAssinante = 8

type Mudanca struct {
	PropostaID uint      `json:"propostaId"`
	Status     string    `json:"status"`
	Em         time.Time `json:"em"`
}

// Hub é um pub/sub em memória, por proposta. Publicar nunca bloqueia:
// assinante com buffer cheio perde o evento.
type Hub struct {
	mu         sync.Mutex
	proximo    int
	assinantes map[uint]map[int]chan Mudanca
}

func NewHub() *Hub {
	return &Hub{assinantes: map[uint]map[int]chan Mudanca{}}
}

// Assinar devolve o canal de eventos e a função que cancela a assinatura.
// Depois de cancelar, o canal é fechado.
func (h *Hub) Assinar(propostaID uint) (<-chan Mudanca, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.proximo
	h.proximo++
	ch := make(chan Mudanca, bufferAssinante)
	if h.assinantes[propostaID] == nil {
		h.assinantes[propostaID] = map[int]chan Mudanca{}
	}
	h.assinantes[propostaID][id] = ch

	var once sync.Once
	cancelar := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.assinantes[propostaID], id)
			if len(h.assinantes[propostaID]) == 0 {
				delete(h.assinantes, propostaID)
			}
			close(ch)
		})
	}
	return ch, cancelar
}

func (h *Hub) Publicar(m Mudanca) {
	if m.Em.IsZero() {
		m.Em = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.assinantes[m.PropostaID] {
		select {
		case ch <- m:
		default:
			log.Printf("[eventos][hub] assinante lento, evento descartado proposta=%d status=%s", m.PropostaID, m.Status)
		}
	}
}

func (h *Hub) Assinantes(propostaID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.assinantes[propostaID])
}
