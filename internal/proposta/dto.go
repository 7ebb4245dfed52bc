package proposta

import (
	"github.com/GaleriaDecor/api-arquiteto/internal/catalogo"
	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/GaleriaDecor/api-arquiteto/internal/rascunho"
)

// EnvioRascunhoRequest é o corpo de POST /rascunho/enviar
type EnvioRascunhoRequest struct {
	Cliente     string `json:"cliente" validate:"required,max=150"`
	Projeto     string `json:"projeto" validate:"max=150"`
	Observacoes string `json:"observacoes" validate:"max=2000"`
}

// CriarRequest é o corpo de POST /propostas, com os itens inline.
type CriarRequest struct {
	EnvioRascunhoRequest
	Rascunho bool                   `json:"rascunho"`
	Itens    []rascunho.ItemRequest `json:"itens" validate:"required,min=1,max=50,dive"`
}

// ManualRequest é o corpo de POST /propostas/manual (admin).
type ManualRequest struct {
	CriarRequest
	ArquitetoID uint `json:"arquitetoId" validate:"required"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=enviada paga cancelada"`
}

type ItemDTO struct {
	Item
	Descricao      string `json:"descricao"`
	PrecoFormatado string `json:"precoFormatado"`
}

type PropostaDTO struct {
	Proposta
	Itens             []ItemDTO `json:"itens"`
	TotalFormatado    string    `json:"totalFormatado"`
	ComissaoFormatada string    `json:"comissaoFormatada"`
}

func toDTO(p Proposta, cat *catalogo.Catalogo) PropostaDTO {
	out := PropostaDTO{
		Proposta:          p,
		Itens:             make([]ItemDTO, 0, len(p.Itens)),
		TotalFormatado:    precificacao.Formatar(p.ValorTotal),
		ComissaoFormatada: precificacao.Formatar(p.ValorComissao),
	}
	for _, it := range p.Itens {
		out.Itens = append(out.Itens, ItemDTO{
			Item:           it,
			Descricao:      it.Descricao(cat),
			PrecoFormatado: precificacao.Formatar(it.PrecoTotal),
		})
	}
	return out
}

func toDTOs(list []Proposta, cat *catalogo.Catalogo) []PropostaDTO {
	out := make([]PropostaDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toDTO(p, cat))
	}
	return out
}
