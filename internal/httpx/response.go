package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

type ErroResponse struct {
	Erro    string `json:"erro"`
	Detalhe any    `json:"detalhe,omitempty"`
}

// JSON serializa o payload antes de escrever o status.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[httpx] erro ao serializar resposta: %v", err)
		http.Error(w, "erro ao serializar resposta", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func Erro(w http.ResponseWriter, status int, msg string, detalhe any) {
	JSON(w, status, ErroResponse{Erro: msg, Detalhe: detalhe})
}
