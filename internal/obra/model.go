package obra

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Obra é uma peça da galeria de vendas.
type Obra struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Titulo    string          `gorm:"size:150;not null;uniqueIndex" json:"titulo"`
	Artista   string          `gorm:"size:150" json:"artista"`
	Categoria string          `gorm:"size:60;not null;index" json:"categoria"`
	PrecoBase decimal.Decimal `gorm:"type:numeric;not null" json:"precoBase"`
	Imagem    string          `gorm:"size:255" json:"imagem"`
	Ativa     bool            `gorm:"not null" json:"ativa"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
