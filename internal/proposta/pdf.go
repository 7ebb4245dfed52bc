package proposta

import (
	"fmt"

	"github.com/GaleriaDecor/api-arquiteto/internal/arquiteto"
	"github.com/GaleriaDecor/api-arquiteto/internal/catalogo"
	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	estiloTitulo  = props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center}
	estiloRotulo  = props.Text{Size: 9, Style: fontstyle.Bold}
	estiloNormal  = props.Text{Size: 9}
	estiloDireita = props.Text{Size: 9, Align: align.Right}
)

// GerarPDF renderiza a proposta com os valores gravados, sem recalcular nada.
func GerarPDF(p Proposta, a arquiteto.Arquiteto, cat *catalogo.Catalogo) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(12).
		WithTopMargin(15).
		WithRightMargin(12).
		Build()
	m := maroto.New(cfg)

	m.AddRows(text.NewRow(12, fmt.Sprintf("Proposta #%d", p.ID), estiloTitulo))
	m.AddRow(6, text.NewCol(3, "Cliente", estiloRotulo), text.NewCol(9, p.Cliente, estiloNormal))
	if p.Projeto != "" {
		m.AddRow(6, text.NewCol(3, "Projeto", estiloRotulo), text.NewCol(9, p.Projeto, estiloNormal))
	}
	m.AddRow(6, text.NewCol(3, "Arquiteto", estiloRotulo), text.NewCol(9, a.Nome+" "+a.Sobrenome, estiloNormal))
	m.AddRow(6, text.NewCol(3, "Status", estiloRotulo), text.NewCol(9, p.Status, estiloNormal))
	if p.EnviadaEm != nil {
		m.AddRow(6, text.NewCol(3, "Enviada em", estiloRotulo), text.NewCol(9, p.EnviadaEm.Format("02/01/2006"), estiloNormal))
	}
	m.AddRows(line.NewRow(4))

	m.AddRow(7,
		text.NewCol(1, "#", estiloRotulo),
		text.NewCol(6, "Descrição", estiloRotulo),
		text.NewCol(1, "Qtd", estiloRotulo),
		text.NewCol(2, "Unitário", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, it := range p.Itens {
		m.AddRow(10,
			text.NewCol(1, fmt.Sprint(it.Posicao), estiloNormal),
			text.NewCol(6, it.Descricao(cat), estiloNormal),
			text.NewCol(1, fmt.Sprint(it.Quantidade), estiloNormal),
			text.NewCol(2, precificacao.Formatar(it.PrecoUnitario), estiloDireita),
			text.NewCol(2, precificacao.Formatar(it.PrecoTotal), estiloDireita),
		)
	}
	m.AddRows(line.NewRow(4))
	m.AddRow(8,
		text.NewCol(8, "Total", props.Text{Size: 11, Style: fontstyle.Bold}),
		text.NewCol(4, precificacao.Formatar(p.ValorTotal), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)
	if p.Observacoes != "" {
		m.AddRows(text.NewRow(6, "Observações", estiloRotulo))
		m.AddRows(text.NewRow(12, p.Observacoes, estiloNormal))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("gerar pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
