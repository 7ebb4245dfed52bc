package producao

import (
	"time"

	"github.com/shopspring/decimal"
)

// DadosNaoSincronizados aparece no lugar dos itens que não foram gravados.
const DadosNaoSincronizados = "dados não sincronizados"

type Linha struct {
	Posicao    int    `json:"posicao"`
	Descricao  string `json:"descricao"`
	Quantidade int    `json:"quantidade"`
}

// Cabecalho traz os dados da proposta que vão impressos na ordem.
type Cabecalho struct {
	PropostaID uint            `json:"propostaId"`
	Cliente    string          `json:"cliente"`
	Projeto    string          `json:"projeto"`
	Arquiteto  string          `json:"arquiteto"`
	ValorTotal decimal.Decimal `json:"valorTotal"`
	PagaEm     *time.Time      `json:"pagaEm"`
}

type Voucher struct {
	Ordem     *OrdemProducao `json:"ordem"`
	Cabecalho Cabecalho      `json:"cabecalho"`
	Linhas    []Linha        `json:"linhas"`
	Completo  bool           `json:"completo"`
}

// MontarVoucher monta a ordem impressa. Sem linhas, a ordem sai com uma
// única linha de aviso em vez de falhar.
func MontarVoucher(o *OrdemProducao, cab Cabecalho, linhas []Linha) Voucher {
	v := Voucher{Ordem: o, Cabecalho: cab, Linhas: linhas, Completo: len(linhas) > 0}
	if !v.Completo {
		v.Linhas = []Linha{{Posicao: 1, Descricao: DadosNaoSincronizados}}
	}
	return v
}
