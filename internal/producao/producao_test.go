package producao

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GaleriaDecor/api-arquiteto/internal/testutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovoNumero(t *testing.T) {
	a, b := NovoNumero(), NovoNumero()
	assert.True(t, strings.HasPrefix(a, "OP-"))
	assert.Len(t, a, 11)
	assert.NotEqual(t, a, b)
}

func TestAbrir_Idempotente(t *testing.T) {
	db := testutil.NovoDB(t, &OrdemProducao{})
	repo := NewRepository()

	o1, err := repo.Abrir(db, 10, 7, "entrega na obra")
	require.NoError(t, err)
	o2, err := repo.Abrir(db, 10, 7, "")
	require.NoError(t, err)
	assert.Equal(t, o1.ID, o2.ID)
	assert.Equal(t, o1.Numero, o2.Numero)
	assert.Equal(t, StatusAberta, o2.Status)

	ordens, err := repo.ListarTodos(db, StatusAberta)
	require.NoError(t, err)
	assert.Len(t, ordens, 1)
}

func TestMontarVoucher(t *testing.T) {
	o := &OrdemProducao{Numero: "OP-ABCDEF12"}
	cab := Cabecalho{PropostaID: 3, Cliente: "Ana", ValorTotal: testutil.Dec("3000")}

	v := MontarVoucher(o, cab, []Linha{{Posicao: 1, Descricao: "Horizonte Azul · moldura Caixa Preta", Quantidade: 1}})
	assert.True(t, v.Completo)
	assert.Len(t, v.Linhas, 1)

	v = MontarVoucher(o, cab, nil)
	assert.False(t, v.Completo)
	require.Len(t, v.Linhas, 1)
	assert.Equal(t, DadosNaoSincronizados, v.Linhas[0].Descricao)
}

func TestHandler_Concluir(t *testing.T) {
	db := testutil.NovoDB(t, &OrdemProducao{})
	o, err := NewRepository().Abrir(db, 1, 7, "")
	require.NoError(t, err)

	h := NewHandler(db)
	r := mux.NewRouter()
	r.HandleFunc("/producao", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/producao/{id}/concluir", h.Concluir).Methods(http.MethodPatch)

	rota := fmt.Sprintf("/producao/%d/concluir", o.ID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, rota, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"concluida"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, rota, nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/producao/999/concluir", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/producao?status=concluida", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), o.Numero)
}
