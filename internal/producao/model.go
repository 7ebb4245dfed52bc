package producao

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusAberta    = "aberta"
	StatusConcluida = "concluida"
)

// OrdemProducao é a papelada de uma proposta paga.
type OrdemProducao struct {
	gorm.Model

	PropostaID  uint       `gorm:"not null;uniqueIndex" json:"propostaId"`
	ArquitetoID uint       `gorm:"not null;index" json:"arquitetoId"`
	Numero      string     `gorm:"size:20;not null;uniqueIndex" json:"numero"`
	Status      string     `gorm:"size:20;not null;index" json:"status"`
	Observacoes string     `gorm:"type:text" json:"observacoes"`
	ConcluidaEm *time.Time `json:"concluidaEm"`
}

// NovoNumero gera "OP-" + 8 caracteres de um uuid.
func NovoNumero() string {
	return "OP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
