package arquiteto

import (
	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/comissao"
	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Login string `json:"login" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

type LoginResponse struct {
	auth.TokenResponse
	PrecisaRedefinirSenha bool `json:"precisaRedefinirSenha"`
}

type CadastroRequest struct {
	Nome       string `json:"nome" validate:"required,max=100"`
	Sobrenome  string `json:"sobrenome" validate:"max=100"`
	Email      string `json:"email" validate:"required,email,max=150"`
	Documento  string `json:"documento" validate:"required,min=11,max=20"`
	CAU        string `json:"cau" validate:"max=30"`
	Telefone   string `json:"telefone" validate:"max=30"`
	Escritorio string `json:"escritorio" validate:"max=150"`
	Foto       string `json:"foto" validate:"omitempty,max=255"`
	Senha      string `json:"senha" validate:"required"`
}

type PerfilRequest struct {
	Nome       string `json:"nome" validate:"required,max=100"`
	Sobrenome  string `json:"sobrenome" validate:"max=100"`
	CAU        string `json:"cau" validate:"max=30"`
	Telefone   string `json:"telefone" validate:"max=30"`
	Escritorio string `json:"escritorio" validate:"max=150"`
	Foto       string `json:"foto" validate:"omitempty,max=255"`
}

type SenhaRequest struct {
	SenhaAtual string `json:"senhaAtual" validate:"required"`
	NovaSenha  string `json:"novaSenha" validate:"required"`
}

type AprovacaoRequest struct {
	Aprovado *bool `json:"aprovado" validate:"required"`
}

type TaxaRequest struct {
	Taxa *decimal.Decimal `json:"taxa" validate:"required"`
}

// ResumoArquitetoDTO alimenta o painel do arquiteto.
type ResumoArquitetoDTO struct {
	ID           uint            `json:"id"`
	Nome         string          `json:"nome"`
	Sobrenome    string          `json:"sobrenome"`
	Email        string          `json:"email"`
	Escritorio   string          `json:"escritorio"`
	Status       string          `json:"status"`
	TaxaComissao decimal.Decimal `json:"taxaComissao"`
	comissao.Resumo
}

func MontarResumoArquitetoDTO(a Arquiteto, comissoes []comissao.Comissao, porStatus map[string]int) ResumoArquitetoDTO {
	return ResumoArquitetoDTO{
		ID:           a.ID,
		Nome:         a.Nome,
		Sobrenome:    a.Sobrenome,
		Email:        a.Email,
		Escritorio:   a.Escritorio,
		Status:       a.Status,
		TaxaComissao: a.TaxaComissao,
		Resumo:       comissao.Resumir(comissoes, porStatus),
	}
}
