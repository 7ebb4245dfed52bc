package arquiteto

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPendente  = "pendente"
	StatusAprovado  = "aprovado"
	StatusRejeitado = "rejeitado"
)

// TaxaPadrao é a comissão (%) de um arquiteto recém-cadastrado.
var TaxaPadrao = decimal.NewFromInt(10)

type Arquiteto struct {
	gorm.Model
	Nome                  string          `json:"nome" gorm:"size:100;not null"`
	Sobrenome             string          `json:"sobrenome" gorm:"size:100"`
	Email                 string          `json:"email" gorm:"size:150;unique;not null"`
	Documento             string          `json:"documento" gorm:"size:20;unique;not null"` // CPF ou CNPJ
	CAU                   string          `json:"cau" gorm:"size:30"`
	Telefone              string          `json:"telefone" gorm:"size:30"`
	Escritorio            string          `json:"escritorio" gorm:"size:150"`
	Foto                  string          `json:"foto" gorm:"size:255"`
	Senha                 string          `json:"-"`
	Status                string          `json:"status" gorm:"size:20;not null;index"`
	TaxaComissao          decimal.Decimal `json:"taxaComissao" gorm:"type:numeric;not null"`
	PrecisaRedefinirSenha bool            `json:"precisaRedefinirSenha"`
	AprovadoEm            *time.Time      `json:"aprovadoEm"`
}

func (a *Arquiteto) Aprovado() bool { return a.Status == StatusAprovado }
