package proposta

import (
	"time"

	"github.com/GaleriaDecor/api-arquiteto/internal/catalogo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusRascunho  = "rascunho"
	StatusEnviada   = "enviada"
	StatusPaga      = "paga"
	StatusCancelada = "cancelada"
)

// Proposta guarda os preços congelados no momento do envio. Nada aqui é
// recalculado depois, nem quando o catálogo ou a taxa do arquiteto mudam.
type Proposta struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ArquitetoID      uint            `gorm:"not null;index" json:"arquitetoId"`
	CriadoPorAdminID *uint           `json:"criadoPorAdminId,omitempty"`
	Manual           bool            `gorm:"not null" json:"manual"`
	Cliente          string          `gorm:"size:150;not null" json:"cliente"`
	Projeto          string          `gorm:"size:150" json:"projeto"`
	Observacoes      string          `gorm:"type:text" json:"observacoes"`
	Status           string          `gorm:"size:20;not null;index" json:"status"`
	ValorTotal       decimal.Decimal `gorm:"type:numeric;not null" json:"valorTotal"`
	TaxaComissao     decimal.Decimal `gorm:"type:numeric;not null" json:"taxaComissao"`
	ValorComissao    decimal.Decimal `gorm:"type:numeric;not null" json:"valorComissao"`
	EnviadaEm        *time.Time      `json:"enviadaEm"`
	PagaEm           *time.Time      `json:"pagaEm"`
	CanceladaEm      *time.Time      `json:"canceladaEm"`

	Itens []Item `gorm:"foreignKey:PropostaID;constraint:OnDelete:CASCADE" json:"itens"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Item é uma linha estruturada da proposta. A descrição não é gravada:
// sai do catálogo na hora de exibir.
type Item struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	PropostaID          uint            `gorm:"not null;index" json:"propostaId"`
	Posicao             int             `gorm:"not null" json:"posicao"`
	ObraID              *uint           `gorm:"index" json:"obraId,omitempty"`
	ImagemPersonalizada string          `gorm:"size:500" json:"imagemPersonalizada,omitempty"`
	TituloObra          string          `gorm:"size:150" json:"tituloObra"`
	MolduraID           string          `gorm:"size:60;not null" json:"molduraId"`
	AcabamentoID        string          `gorm:"size:60;not null" json:"acabamentoId"`
	FormatoID           string          `gorm:"size:60;not null" json:"formatoId"`
	Tamanho             string          `gorm:"size:20;not null" json:"tamanho"`
	Quantidade          int             `gorm:"not null" json:"quantidade"`
	PrecoUnitario       decimal.Decimal `gorm:"type:numeric;not null" json:"precoUnitario"`
	PrecoTotal          decimal.Decimal `gorm:"type:numeric;not null" json:"precoTotal"`
}

func (Item) TableName() string { return "proposta_itens" }

func (i Item) Descricao(cat *catalogo.Catalogo) string {
	return cat.Descrever(i.TituloObra, i.MolduraID, i.AcabamentoID, i.FormatoID, i.Tamanho)
}
