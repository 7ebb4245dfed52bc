package catalogo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GaleriaDecor/api-arquiteto/internal/obra"
	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/GaleriaDecor/api-arquiteto/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadrao_Valido(t *testing.T) {
	require.NoError(t, Padrao().Validar())
}

func TestValidar_DetectaInconsistencias(t *testing.T) {
	casos := []struct {
		nome    string
		quebrar func(c *Catalogo)
	}{
		{"grupo ausente", func(c *Catalogo) { c.Molduras[0].GrupoPreco = "inexistente" }},
		{"dois acabamentos sem vidro", func(c *Catalogo) { c.Acabamentos[1].Vidro = false }},
		{"nenhum acabamento sem vidro", func(c *Catalogo) { c.Acabamentos[0].Vidro = true }},
		{"tamanho sem preço", func(c *Catalogo) { c.Formatos[0].Tamanhos = append(c.Formatos[0].Tamanhos, "200x200cm") }},
		{"sem sub-tabela com vidro", func(c *Catalogo) { delete(c.Tabela["caixa"], precificacao.ChaveComVidro) }},
		{"painéis demais", func(c *Catalogo) { c.Formatos[3].Paineis = 4 }},
	}
	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			c := Padrao()
			tc.quebrar(c)
			assert.ErrorIs(t, c.Validar(), ErrCatalogoInvalido)
		})
	}
}

func TestValidar_GrupoSemVidroDispensaComVidro(t *testing.T) {
	c := Padrao()
	_, ok := c.Tabela["flutuante"][precificacao.ChaveComVidro]
	require.False(t, ok)
	assert.NoError(t, c.Validar())
}

func TestLookups(t *testing.T) {
	c := Padrao()

	m, err := c.Moldura("caixa-preta")
	require.NoError(t, err)
	testutil.AssertDecimal(t, "250", m.Preco)

	_, err = c.Moldura("nao-existe")
	assert.ErrorIs(t, err, ErrNaoEncontrado)
	_, err = c.Acabamento("nao-existe")
	assert.ErrorIs(t, err, ErrNaoEncontrado)
	_, err = c.Formato("nao-existe")
	assert.ErrorIs(t, err, ErrNaoEncontrado)

	assert.Equal(t, "sem-vidro", c.SemVidro().ID)
}

func TestCotar(t *testing.T) {
	c := Padrao()

	cot, err := c.Cotar(testutil.Dec("1250"), Selecao{MolduraID: "caixa-preta", AcabamentoID: "sem-vidro", FormatoID: "padrao", Tamanho: "85x55cm"})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "1500", cot.PrecoUnitario)
	testutil.AssertDecimal(t, "860", cot.PrecoTabela)
	assert.False(t, cot.AcabamentoAjustado)

	cot, err = c.Cotar(testutil.Dec("1250"), Selecao{MolduraID: "flutuante-preta", AcabamentoID: "com-vidro", FormatoID: "padrao", Tamanho: "85x55cm"})
	require.NoError(t, err)
	assert.True(t, cot.AcabamentoAjustado)
	assert.Equal(t, "sem-vidro", cot.Acabamento.ID)
	testutil.AssertDecimal(t, "1580", cot.PrecoUnitario)

	_, err = c.Cotar(testutil.Dec("1250"), Selecao{MolduraID: "caixa-preta", AcabamentoID: "sem-vidro", FormatoID: "padrao", Tamanho: "60x60cm"})
	assert.ErrorIs(t, err, precificacao.ErrTamanhoInvalido)

	_, err = c.Cotar(testutil.Dec("1250"), Selecao{MolduraID: "x", AcabamentoID: "sem-vidro", FormatoID: "padrao", Tamanho: "85x55cm"})
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestDescrever(t *testing.T) {
	c := Padrao()

	assert.Equal(t,
		"Horizonte Azul · moldura Caixa Preta · Com Vidro · 2 Telas 60x90cm",
		c.Descrever("Horizonte Azul", "caixa-preta", "com-vidro", "2-telas", "60x90cm"))

	assert.Equal(t,
		"moldura #antiga · acabamento #fosco · formato #oval 30x40cm",
		c.Descrever("", "antiga", "fosco", "oval", "30x40cm"))
}

func TestHandler_Cotar(t *testing.T) {
	db := testutil.NovoDB(t, &obra.Obra{})
	_, err := obra.Semear(db)
	require.NoError(t, err)
	repo := obra.NewRepository(db)
	obras, err := repo.List("abstrato", false)
	require.NoError(t, err)

	var horizonte obra.Obra
	for _, o := range obras {
		if o.Titulo == "Horizonte Azul" {
			horizonte = o
		}
	}
	require.NotZero(t, horizonte.ID)

	h := NewHandler(Padrao(), repo)

	corpo := fmt.Sprintf(`{"obraId":%d,"molduraId":"caixa-preta","acabamentoId":"sem-vidro","formatoId":"2-telas","tamanho":"60x90cm"}`, horizonte.ID)
	w := httptest.NewRecorder()
	h.Cotar(w, httptest.NewRequest(http.MethodPost, "/catalogo/cotacao", strings.NewReader(corpo)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CotacaoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	testutil.AssertDecimal(t, "3000", resp.PrecoUnitario)
	assert.Equal(t, "Horizonte Azul", resp.TituloObra)
	assert.Equal(t, "R$ 3.000,00", resp.Exibicao)

	casos := []struct {
		corpo  string
		status int
	}{
		{`{"obraId":9999,"molduraId":"caixa-preta","acabamentoId":"sem-vidro","formatoId":"padrao","tamanho":"85x55cm"}`, http.StatusNotFound},
		{`{"molduraId":"caixa-preta","acabamentoId":"sem-vidro","formatoId":"padrao","tamanho":"85x55cm"}`, http.StatusUnprocessableEntity},
		{`{"imagemPersonalizada":"https://cdn.exemplo.com/a.jpg","molduraId":"caixa-preta","acabamentoId":"sem-vidro","formatoId":"padrao","tamanho":"1x1cm"}`, http.StatusUnprocessableEntity},
		{`{"imagemPersonalizada":"https://cdn.exemplo.com/a.jpg","molduraId":"caixa-preta"}`, http.StatusUnprocessableEntity},
		{`{"molduraId":`, http.StatusBadRequest},
	}
	for _, tc := range casos {
		w := httptest.NewRecorder()
		h.Cotar(w, httptest.NewRequest(http.MethodPost, "/catalogo/cotacao", strings.NewReader(tc.corpo)))
		assert.Equal(t, tc.status, w.Code, tc.corpo)
	}
}

func TestHandler_Get(t *testing.T) {
	h := NewHandler(Padrao(), nil)
	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/catalogo", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var c Catalogo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Len(t, c.Molduras, len(Padrao().Molduras))
	assert.Contains(t, c.Tabela, "caixa")
}
