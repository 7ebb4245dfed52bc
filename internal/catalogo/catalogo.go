package catalogo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/shopspring/decimal"
)

var (
	ErrNaoEncontrado    = errors.New("item de catálogo não encontrado")
	ErrCatalogoInvalido = errors.New("catálogo inconsistente")
)

// Catalogo é imutável depois de carregado.
type Catalogo struct {
	Molduras    []precificacao.Moldura    `json:"molduras"`
	Acabamentos []precificacao.Acabamento `json:"acabamentos"`
	Formatos    []precificacao.Formato    `json:"formatos"`
	Tabela      precificacao.TabelaPrecos `json:"tabelaPrecos"`
}

func (c *Catalogo) Moldura(id string) (precificacao.Moldura, error) {
	for _, m := range c.Molduras {
		if m.ID == id {
			return m, nil
		}
	}
	return precificacao.Moldura{}, fmt.Errorf("moldura %q: %w", id, ErrNaoEncontrado)
}

func (c *Catalogo) Acabamento(id string) (precificacao.Acabamento, error) {
	for _, a := range c.Acabamentos {
		if a.ID == id {
			return a, nil
		}
	}
	return precificacao.Acabamento{}, fmt.Errorf("acabamento %q: %w", id, ErrNaoEncontrado)
}

func (c *Catalogo) Formato(id string) (precificacao.Formato, error) {
	for _, f := range c.Formatos {
		if f.ID == id {
			return f, nil
		}
	}
	return precificacao.Formato{}, fmt.Errorf("formato %q: %w", id, ErrNaoEncontrado)
}

// SemVidro devolve o único acabamento sem vidro. Validar garante que existe.
func (c *Catalogo) SemVidro() precificacao.Acabamento {
	for _, a := range c.Acabamentos {
		if !a.Vidro {
			return a
		}
	}
	return precificacao.Acabamento{}
}

// Validar confere a integridade entre molduras, acabamentos, formatos e tabela.
func (c *Catalogo) Validar() error {
	var problemas []error

	semVidro := 0
	for _, a := range c.Acabamentos {
		if !a.Vidro {
			semVidro++
		}
	}
	if semVidro != 1 {
		problemas = append(problemas, fmt.Errorf("esperado exatamente um acabamento sem vidro, encontrados %d", semVidro))
	}

	// grupo -> alguma moldura do grupo aceita vidro
	grupos := map[string]bool{}
	for _, m := range c.Molduras {
		if _, ok := c.Tabela[m.GrupoPreco]; !ok {
			problemas = append(problemas, fmt.Errorf("moldura %s: %w: %q", m.ID, precificacao.ErrGrupoPrecoAusente, m.GrupoPreco))
			continue
		}
		grupos[m.GrupoPreco] = grupos[m.GrupoPreco] || m.PermiteVidro
	}

	for grupo, aceitaVidro := range grupos {
		chaves := []string{precificacao.ChaveSemVidro}
		if aceitaVidro {
			chaves = append(chaves, precificacao.ChaveComVidro)
		}
		for _, chave := range chaves {
			porTamanho, ok := c.Tabela[grupo][chave]
			if !ok {
				problemas = append(problemas, fmt.Errorf("grupo %s sem tabela %s", grupo, chave))
				continue
			}
			for _, f := range c.Formatos {
				for _, tam := range f.Tamanhos {
					if _, ok := porTamanho[tam]; !ok {
						problemas = append(problemas, fmt.Errorf("grupo %s/%s sem preço para %s (%s)", grupo, chave, tam, f.ID))
					}
				}
			}
		}
	}

	for _, f := range c.Formatos {
		if f.Paineis < 1 || f.Paineis > 3 {
			problemas = append(problemas, fmt.Errorf("formato %s: %w", f.ID, precificacao.ErrFormatoInvalido))
		}
	}

	if len(problemas) > 0 {
		return fmt.Errorf("%w: %w", ErrCatalogoInvalido, errors.Join(problemas...))
	}
	return nil
}

// Selecao identifica moldura, acabamento, formato e tamanho escolhidos.
type Selecao struct {
	MolduraID    string `json:"molduraId" validate:"required"`
	AcabamentoID string `json:"acabamentoId" validate:"required"`
	FormatoID    string `json:"formatoId" validate:"required"`
	Tamanho      string `json:"tamanho" validate:"required"`
}

// Cotacao traz o preço calculado. PrecoTabela é a referência da tabela de
// preços, apenas para exibição.
type Cotacao struct {
	Moldura            precificacao.Moldura    `json:"moldura"`
	Acabamento         precificacao.Acabamento `json:"acabamento"`
	Formato            precificacao.Formato    `json:"formato"`
	Tamanho            string                  `json:"tamanho"`
	PrecoBase          decimal.Decimal         `json:"precoBase"`
	PrecoUnitario      decimal.Decimal         `json:"precoUnitario"`
	AcabamentoAjustado bool                    `json:"acabamentoAjustado"`
	PrecoTabela        decimal.Decimal         `json:"precoTabela"`
}

// Cotar resolve a seleção e calcula o preço unitário.
func (c *Catalogo) Cotar(precoBase decimal.Decimal, s Selecao) (Cotacao, error) {
	moldura, err := c.Moldura(s.MolduraID)
	if err != nil {
		return Cotacao{}, err
	}
	acabamento, err := c.Acabamento(s.AcabamentoID)
	if err != nil {
		return Cotacao{}, err
	}
	formato, err := c.Formato(s.FormatoID)
	if err != nil {
		return Cotacao{}, err
	}

	res, err := precificacao.Calcular(precificacao.Entrada{
		PrecoBase:  precoBase,
		Moldura:    moldura,
		Acabamento: acabamento,
		SemVidro:   c.SemVidro(),
		Formato:    formato,
		Tamanho:    s.Tamanho,
	})
	if err != nil {
		return Cotacao{}, err
	}

	tabela, err := c.Tabela.Consultar(moldura.GrupoPreco, res.Acabamento.Vidro, s.Tamanho)
	if err != nil {
		return Cotacao{}, fmt.Errorf("moldura %s: %w", moldura.ID, err)
	}

	return Cotacao{
		Moldura:            moldura,
		Acabamento:         res.Acabamento,
		Formato:            formato,
		Tamanho:            s.Tamanho,
		PrecoBase:          precoBase,
		PrecoUnitario:      res.PrecoUnitario,
		AcabamentoAjustado: res.AcabamentoAjustado,
		PrecoTabela:        tabela,
	}, nil
}

// Descrever monta a descrição legível de um item salvo. Ids que não existem
// mais no catálogo aparecem como referência crua.
func (c *Catalogo) Descrever(titulo, molduraID, acabamentoID, formatoID, tamanho string) string {
	partes := make([]string, 0, 4)
	if titulo != "" {
		partes = append(partes, titulo)
	}
	if m, err := c.Moldura(molduraID); err == nil {
		partes = append(partes, "moldura "+m.Nome)
	} else {
		partes = append(partes, "moldura #"+molduraID)
	}
	if a, err := c.Acabamento(acabamentoID); err == nil {
		partes = append(partes, a.Nome)
	} else {
		partes = append(partes, "acabamento #"+acabamentoID)
	}
	if f, err := c.Formato(formatoID); err == nil {
		partes = append(partes, f.Nome+" "+tamanho)
	} else {
		partes = append(partes, "formato #"+formatoID+" "+tamanho)
	}
	return strings.Join(partes, " · ")
}
