package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	EventoArquitetoCadastrado = "arquiteto.cadastrado"
	EventoPropostaEnviada     = "proposta.enviada"
	EventoPropostaPaga        = "proposta.paga"
)

type Evento struct {
	Tipo     string         `json:"tipo"`
	Mensagem string         `json:"mensagem"`
	Dados    map[string]any `json:"dados,omitempty"`
	Em       time.Time      `json:"em"`
}

type Notificador interface {
	Notificar(ctx context.Context, ev Evento) error
}

// Webhook envia o evento como JSON por POST.
type Webhook struct {
	URL    string
	Client *http.Client
}

var _ Notificador = (*Webhook)(nil)

// Nulo descarta eventos; usado quando WEBHOOK_URL não está definida.
type Nulo struct{}

func (Nulo) Notificar(context.Context, Evento) error { return nil }

func New(url string) Notificador {
	if url == "" {
		return Nulo{}
	}
	return &Webhook{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (w *Webhook) Notificar(ctx context.Context, ev Evento) error {
	if ev.Em.IsZero() {
		ev.Em = time.Now()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}

// Disparar envia em segundo plano. Falhas só são registradas em log.
func Disparar(n Notificador, ev Evento) {
	if n == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := n.Notificar(ctx, ev); err != nil {
			log.Printf("[notificacao][webhook] erro ao enviar tipo=%s: %v", ev.Tipo, err)
		}
	}()
}
