package comissao

import "github.com/shopspring/decimal"

// Resumo é o painel do arquiteto. As contagens vêm das propostas (rascunhos
// e canceladas sem comissão entram); os valores vêm das comissões.
type Resumo struct {
	PropostasRascunho   int             `json:"propostasRascunho"`
	PropostasEnviadas   int             `json:"propostasEnviadas"`
	PropostasPagas      int             `json:"propostasPagas"`
	PropostasCanceladas int             `json:"propostasCanceladas"`
	TotalVendido        decimal.Decimal `json:"totalVendido"`
	ComissaoPrevista    decimal.Decimal `json:"comissaoPrevista"`
	ComissaoAReceber    decimal.Decimal `json:"comissaoAReceber"`
	ComissaoRecebida    decimal.Decimal `json:"comissaoRecebida"`
}

// Resumir recebe as comissões do arquiteto e a contagem de propostas por
// status (rascunho, enviada, paga, cancelada).
func Resumir(comissoes []Comissao, porStatus map[string]int) Resumo {
	res := Resumo{
		PropostasRascunho:   porStatus["rascunho"],
		PropostasEnviadas:   porStatus["enviada"],
		PropostasPagas:      porStatus["paga"],
		PropostasCanceladas: porStatus["cancelada"],
		TotalVendido:        decimal.Zero,
		ComissaoPrevista:    decimal.Zero,
		ComissaoAReceber:    decimal.Zero,
		ComissaoRecebida:    decimal.Zero,
	}
	for _, c := range comissoes {
		switch c.Status {
		case StatusPrevista:
			res.ComissaoPrevista = res.ComissaoPrevista.Add(c.Valor)
		case StatusAReceber:
			res.TotalVendido = res.TotalVendido.Add(c.ValorBase)
			res.ComissaoAReceber = res.ComissaoAReceber.Add(c.Valor)
		case StatusPaga:
			res.TotalVendido = res.TotalVendido.Add(c.ValorBase)
			res.ComissaoRecebida = res.ComissaoRecebida.Add(c.Valor)
		}
	}
	return res
}

// ContarPropostas agrupa as propostas ativas do arquiteto por status.
func (r *Repository) ContarPropostas(arquitetoID uint) (map[string]int, error) {
	var linhas []struct {
		Status string
		Total  int
	}
	err := r.DB.Table("propostas").
		Select("status, COUNT(*) AS total").
		Where("arquiteto_id = ? AND deleted_at IS NULL", arquitetoID).
		Group("status").
		Scan(&linhas).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(linhas))
	for _, l := range linhas {
		out[l.Status] = l.Total
	}
	return out, nil
}
