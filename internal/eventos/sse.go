package eventos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// intervalo entre comentários de keep-alive
var Heartbeat = 25 * time.Second

// Transmitir escreve um stream Server-Sent Events: primeiro o estado atual,
// depois cada mudança recebida em ch, até o cliente sair ou ch fechar.
func Transmitir(w http.ResponseWriter, r *http.Request, atual Mudanca, ch <-chan Mudanca) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming não suportado", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := escrever(w, atual); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(Heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case m, aberto := <-ch:
			if !aberto {
				return
			}
			if err := escrever(w, m); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func escrever(w http.ResponseWriter, m Mudanca) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: status\ndata: %s\n\n", body)
	return err
}
