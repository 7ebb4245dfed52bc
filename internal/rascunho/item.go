package rascunho

import (
	"github.com/GaleriaDecor/api-arquiteto/internal/catalogo"
	"github.com/GaleriaDecor/api-arquiteto/internal/obra"
	"gorm.io/gorm"
)

// ItemRequest configura uma tela: obra do acervo ou imagem enviada, mais a
// seleção de moldura, acabamento, formato e tamanho.
type ItemRequest struct {
	ObraID              *uint  `json:"obraId"`
	ImagemPersonalizada string `json:"imagemPersonalizada" validate:"omitempty,url,max=500"`
	catalogo.Selecao
}

// MontarItem resolve o preço base e precifica pelo motor. Moldura sem vidro
// com acabamento de vidro sai ajustada para o acabamento sem vidro.
func MontarItem(db *gorm.DB, cat *catalogo.Catalogo, req ItemRequest) (Item, error) {
	base, titulo, err := obra.NewRepository(db).PrecoBase(req.ObraID, req.ImagemPersonalizada)
	if err != nil {
		return Item{}, err
	}
	cot, err := cat.Cotar(base, req.Selecao)
	if err != nil {
		return Item{}, err
	}
	return Item{
		ObraID:              req.ObraID,
		ImagemPersonalizada: req.ImagemPersonalizada,
		TituloObra:          titulo,
		MolduraID:           cot.Moldura.ID,
		AcabamentoID:        cot.Acabamento.ID,
		FormatoID:           cot.Formato.ID,
		Tamanho:             cot.Tamanho,
		Quantidade:          1,
		PrecoUnitario:       cot.PrecoUnitario,
		PrecoTotal:          cot.PrecoUnitario,
		AcabamentoAjustado:  cot.AcabamentoAjustado,
		Descricao:           cat.Descrever(titulo, cot.Moldura.ID, cot.Acabamento.ID, cot.Formato.ID, cot.Tamanho),
	}, nil
}
