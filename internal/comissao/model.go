package comissao

import (
	"time"

	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/shopspring/decimal"
)

const (
	StatusPrevista  = "prevista"
	StatusAReceber  = "a_receber"
	StatusPaga      = "paga"
	StatusCancelada = "cancelada"
)

// Comissao é congelada no envio da proposta. Valor nunca é recalculado,
// mesmo que a taxa do arquiteto mude depois.
type Comissao struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PropostaID    uint            `gorm:"not null;uniqueIndex" json:"propostaId"`
	ArquitetoID   uint            `gorm:"not null;index" json:"arquitetoId"`
	ValorBase     decimal.Decimal `gorm:"type:numeric;not null" json:"valorBase"`
	Taxa          decimal.Decimal `gorm:"type:numeric;not null" json:"taxa"`
	Valor         decimal.Decimal `gorm:"type:numeric;not null" json:"valor"`
	Status        string          `gorm:"size:20;not null;index" json:"status"`
	DataPagamento *time.Time      `json:"dataPagamento"`
	Comprovante   string          `gorm:"size:255" json:"comprovante"`
	NotaFiscal    string          `gorm:"size:255" json:"notaFiscal"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Nova monta a comissão prevista de uma proposta recém-enviada.
func Nova(propostaID, arquitetoID uint, valorBase, taxa decimal.Decimal) Comissao {
	return Comissao{
		PropostaID:  propostaID,
		ArquitetoID: arquitetoID,
		ValorBase:   valorBase,
		Taxa:        taxa,
		Valor:       precificacao.CalcularComissao(valorBase, taxa),
		Status:      StatusPrevista,
	}
}
