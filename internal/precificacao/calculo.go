package precificacao

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrTamanhoInvalido         = errors.New("tamanho indisponível para o formato")
	ErrGrupoPrecoAusente       = errors.New("grupo de preço ausente na tabela")
	ErrPrecoBaseInvalido       = errors.New("preço base não pode ser negativo")
	ErrFormatoInvalido         = errors.New("formato com quantidade de painéis inválida")
	ErrAcabamentoSemVidroFalta = errors.New("acabamento sem vidro não informado")
	ErrTaxaInvalida            = errors.New("taxa de comissão deve estar entre 0 e 100")
)

var cem = decimal.NewFromInt(100)

// Entrada reúne a configuração de uma tela. SemVidro é o acabamento usado
// quando a moldura não aceita vidro.
type Entrada struct {
	PrecoBase  decimal.Decimal
	Moldura    Moldura
	Acabamento Acabamento
	SemVidro   Acabamento
	Formato    Formato
	Tamanho    string
}

type Resultado struct {
	PrecoUnitario      decimal.Decimal `json:"precoUnitario"`
	Acabamento         Acabamento      `json:"acabamento"`
	AcabamentoAjustado bool            `json:"acabamentoAjustado"`
	Multiplicador      int             `json:"multiplicador"`
}

// Calcular aplica (base + moldura + acabamento) × painéis.
func Calcular(in Entrada) (Resultado, error) {
	if in.PrecoBase.IsNegative() {
		return Resultado{}, ErrPrecoBaseInvalido
	}
	if in.Formato.Paineis < 1 || in.Formato.Paineis > 3 {
		return Resultado{}, fmt.Errorf("%w: %d", ErrFormatoInvalido, in.Formato.Paineis)
	}
	if !in.Formato.PossuiTamanho(in.Tamanho) {
		return Resultado{}, fmt.Errorf("%w: %q em %s", ErrTamanhoInvalido, in.Tamanho, in.Formato.Nome)
	}

	acabamento := in.Acabamento
	ajustado := false
	if acabamento.Vidro && !in.Moldura.PermiteVidro {
		if in.SemVidro.ID == "" || in.SemVidro.Vidro {
			return Resultado{}, ErrAcabamentoSemVidroFalta
		}
		acabamento = in.SemVidro
		ajustado = true
	}

	unitario := in.PrecoBase.
		Add(in.Moldura.Preco).
		Add(acabamento.Preco).
		Mul(decimal.NewFromInt(int64(in.Formato.Paineis)))

	return Resultado{
		PrecoUnitario:      unitario,
		Acabamento:         acabamento,
		AcabamentoAjustado: ajustado,
		Multiplicador:      in.Formato.Paineis,
	}, nil
}

func ValidarTaxa(taxa decimal.Decimal) error {
	if taxa.IsNegative() || taxa.GreaterThan(cem) {
		return ErrTaxaInvalida
	}
	return nil
}

// CalcularComissao retorna total × taxa / 100 sem arredondar.
func CalcularComissao(total, taxa decimal.Decimal) decimal.Decimal {
	return total.Mul(taxa).Div(cem)
}

// Formatar exibe o valor em reais com duas casas: R$ 1.500,00
func Formatar(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	inteiro, centavos, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range inteiro {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}

	sinal := ""
	if v.Round(2).IsNegative() {
		sinal = "-"
	}
	return sinal + "R$ " + b.String() + "," + centavos
}
