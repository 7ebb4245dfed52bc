package comissao

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/testutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNova_CalculaValor(t *testing.T) {
	c := Nova(1, 2, testutil.Dec("3000"), testutil.Dec("20"))
	testutil.AssertDecimal(t, "600", c.Valor)
	assert.Equal(t, StatusPrevista, c.Status)
}

func TestRepository_FluxoDeStatus(t *testing.T) {
	repo := NewRepository(testutil.NovoDB(t, &Comissao{}))

	c := Nova(10, 2, testutil.Dec("3000"), testutil.Dec("20"))
	require.NoError(t, repo.Create(&c))

	// pagamento antes de a_receber é recusado
	_, err := repo.RegistrarPagamento(c.ID, c.CreatedAt, "comp.pdf", "")
	assert.ErrorIs(t, err, ErrStatusComissao)

	require.NoError(t, repo.UpdateStatusByProposta(10, StatusAReceber))
	pago, err := repo.RegistrarPagamento(c.ID, c.CreatedAt, "comp.pdf", "NF-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPaga, pago.Status)
	require.NotNil(t, pago.DataPagamento)

	salvo, err := repo.FindByProposta(10)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "600", salvo.Valor)
	assert.Equal(t, "NF-1", salvo.NotaFiscal)

	assert.ErrorIs(t, repo.UpdateStatusByProposta(99, StatusCancelada), ErrComissaoNaoEncontrada)
	_, err = repo.FindByID(999)
	assert.ErrorIs(t, err, ErrComissaoNaoEncontrada)
}

func TestRegistrarPagamento_SoUmVence(t *testing.T) {
	repo := NewRepository(testutil.NovoDB(t, &Comissao{}))
	c := Nova(10, 2, testutil.Dec("3000"), testutil.Dec("20"))
	require.NoError(t, repo.Create(&c))
	require.NoError(t, repo.UpdateStatusByProposta(10, StatusAReceber))

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		vencedor []string
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			comp := fmt.Sprintf("comp-%d.pdf", i)
			if _, err := repo.RegistrarPagamento(c.ID, c.CreatedAt, comp, ""); err == nil {
				mu.Lock()
				vencedor = append(vencedor, comp)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, vencedor, 1)
	salvo, err := repo.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaga, salvo.Status)
	assert.Equal(t, vencedor[0], salvo.Comprovante)

	// um segundo pagamento não sobrescreve o comprovante
	_, err = repo.RegistrarPagamento(c.ID, c.CreatedAt, "outro.pdf", "NF-9")
	assert.ErrorIs(t, err, ErrStatusComissao)
	salvo, err = repo.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, vencedor[0], salvo.Comprovante)

	_, err = repo.RegistrarPagamento(999, c.CreatedAt, "x.pdf", "")
	assert.ErrorIs(t, err, ErrComissaoNaoEncontrada)
}

func TestResumir(t *testing.T) {
	comissoes := []Comissao{
		Nova(1, 7, testutil.Dec("1000"), testutil.Dec("10")),
		Nova(2, 7, testutil.Dec("3000"), testutil.Dec("20")),
		Nova(3, 7, testutil.Dec("2000"), testutil.Dec("10")),
		Nova(4, 7, testutil.Dec("500"), testutil.Dec("10")),
	}
	comissoes[1].Status = StatusAReceber
	comissoes[2].Status = StatusPaga
	comissoes[3].Status = StatusCancelada

	res := Resumir(comissoes, map[string]int{"rascunho": 2, "enviada": 1, "paga": 2, "cancelada": 3})
	assert.Equal(t, 2, res.PropostasRascunho)
	assert.Equal(t, 1, res.PropostasEnviadas)
	assert.Equal(t, 2, res.PropostasPagas)
	assert.Equal(t, 3, res.PropostasCanceladas)
	testutil.AssertDecimal(t, "5000", res.TotalVendido)
	testutil.AssertDecimal(t, "100", res.ComissaoPrevista)
	testutil.AssertDecimal(t, "600", res.ComissaoAReceber)
	testutil.AssertDecimal(t, "200", res.ComissaoRecebida)
}

func TestResumir_Vazio(t *testing.T) {
	res := Resumir(nil, nil)
	assert.Zero(t, res.PropostasPagas)
	testutil.AssertDecimal(t, "0", res.TotalVendido)
}

func TestContarPropostas(t *testing.T) {
	db := testutil.NovoDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE propostas (id integer primary key, arquiteto_id integer, status text, deleted_at datetime)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO propostas (id, arquiteto_id, status, deleted_at) VALUES
		(1, 7, 'rascunho', NULL), (2, 7, 'rascunho', NULL), (3, 7, 'cancelada', NULL),
		(4, 7, 'enviada', NULL), (5, 8, 'enviada', NULL), (6, 7, 'cancelada', '2026-01-01')`).Error)

	porStatus, err := NewRepository(db).ContarPropostas(7)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"rascunho": 2, "cancelada": 1, "enviada": 1}, porStatus)
}

func TestHandler(t *testing.T) {
	repo := NewRepository(testutil.NovoDB(t, &Comissao{}))
	a := Nova(1, 7, testutil.Dec("3000"), testutil.Dec("20"))
	b := Nova(2, 8, testutil.Dec("1000"), testutil.Dec("10"))
	require.NoError(t, repo.Create(&a))
	require.NoError(t, repo.Create(&b))

	h := NewHandler(repo)
	r := mux.NewRouter()
	r.HandleFunc("/comissoes", h.List).Methods(http.MethodGet)
	r.HandleFunc("/comissoes/{id}/pagamento", h.RegistrarPagamento).Methods(http.MethodPatch)
	r.HandleFunc("/propostas/{id}/comissao", h.GetByProposta).Methods(http.MethodGet)

	como := func(req *http.Request, id uint, admin bool) *http.Request {
		return req.WithContext(auth.ContextoComUsuario(req.Context(), id, admin))
	}

	t.Run("arquiteto lista só as próprias", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, como(httptest.NewRequest(http.MethodGet, "/comissoes", nil), 7, false))
		require.Equal(t, http.StatusOK, w.Code)
		var list []Comissao
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.EqualValues(t, 1, list[0].PropostaID)
	})

	t.Run("admin lista todas", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, como(httptest.NewRequest(http.MethodGet, "/comissoes", nil), 1, true))
		var list []Comissao
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 2)
	})

	t.Run("comissão de proposta alheia", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, como(httptest.NewRequest(http.MethodGet, "/propostas/2/comissao", nil), 7, false))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("pagamento exige a_receber", func(t *testing.T) {
		corpo := `{"comprovante":"pix-123.pdf"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, como(httptest.NewRequest(http.MethodPatch, "/comissoes/1/pagamento", strings.NewReader(corpo)), 1, true))
		assert.Equal(t, http.StatusConflict, w.Code)

		require.NoError(t, repo.UpdateStatusByProposta(1, StatusAReceber))
		w = httptest.NewRecorder()
		r.ServeHTTP(w, como(httptest.NewRequest(http.MethodPatch, "/comissoes/1/pagamento", strings.NewReader(corpo)), 1, true))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var c Comissao
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
		assert.Equal(t, StatusPaga, c.Status)
		assert.Equal(t, "pix-123.pdf", c.Comprovante)
	})

	t.Run("comprovante obrigatório", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, como(httptest.NewRequest(http.MethodPatch, "/comissoes/2/pagamento", strings.NewReader(`{}`)), 1, true))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
