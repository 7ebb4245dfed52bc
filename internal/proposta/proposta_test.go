package proposta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GaleriaDecor/api-arquiteto/internal/arquiteto"
	"github.com/GaleriaDecor/api-arquiteto/internal/auth"
	"github.com/GaleriaDecor/api-arquiteto/internal/catalogo"
	"github.com/GaleriaDecor/api-arquiteto/internal/comentario"
	"github.com/GaleriaDecor/api-arquiteto/internal/comissao"
	"github.com/GaleriaDecor/api-arquiteto/internal/eventos"
	"github.com/GaleriaDecor/api-arquiteto/internal/notificacao"
	"github.com/GaleriaDecor/api-arquiteto/internal/obra"
	"github.com/GaleriaDecor/api-arquiteto/internal/producao"
	"github.com/GaleriaDecor/api-arquiteto/internal/rascunho"
	"github.com/GaleriaDecor/api-arquiteto/internal/testutil"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const adminID = 1

type ambiente struct {
	db    *gorm.DB
	svc   *Service
	cat   *catalogo.Catalogo
	store *rascunho.Store
	hub   *eventos.Hub
	notif *testutil.Notificador
	r     *mux.Router
	arq   arquiteto.Arquiteto
	outro arquiteto.Arquiteto
	obra  obra.Obra
}

func novoAmbiente(t *testing.T) *ambiente {
	t.Helper()
	db := testutil.NovoDB(t,
		&obra.Obra{}, &arquiteto.Arquiteto{}, &Proposta{}, &Item{},
		&comissao.Comissao{}, &comentario.Comentario{}, &producao.OrdemProducao{},
	)
	_, err := obra.Semear(db)
	require.NoError(t, err)

	amb := &ambiente{db: db, cat: catalogo.Padrao(), store: rascunho.NewStore(), hub: eventos.NewHub(), notif: &testutil.Notificador{}}
	require.NoError(t, db.Where("titulo = ?", "Horizonte Azul").First(&amb.obra).Error)

	amb.arq = arquiteto.Arquiteto{Nome: "Lia", Sobrenome: "Prado", Email: "lia@x.com", Documento: "12345678909", Status: arquiteto.StatusAprovado, TaxaComissao: decimal.NewFromInt(20)}
	amb.outro = arquiteto.Arquiteto{Nome: "Rui", Email: "rui@x.com", Documento: "98765432100", Status: arquiteto.StatusAprovado, TaxaComissao: decimal.NewFromInt(10)}
	require.NoError(t, db.Create(&amb.arq).Error)
	require.NoError(t, db.Create(&amb.outro).Error)

	amb.svc = NewService(db, amb.hub, amb.notif)
	h := NewHandler(amb.svc, amb.cat, amb.store)
	r := mux.NewRouter()
	r.HandleFunc("/rascunho/enviar", h.EnviarRascunho).Methods(http.MethodPost)
	r.HandleFunc("/propostas", h.Criar).Methods(http.MethodPost)
	r.HandleFunc("/propostas", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/propostas/manual", h.CriarManual).Methods(http.MethodPost)
	r.HandleFunc("/propostas/{id}", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/propostas/{id}", h.Deletar).Methods(http.MethodDelete)
	r.HandleFunc("/propostas/{id}/status", h.AlterarStatus).Methods(http.MethodPatch)
	r.HandleFunc("/propostas/{id}/pdf", h.PDF).Methods(http.MethodGet)
	r.HandleFunc("/propostas/{id}/producao", h.Producao).Methods(http.MethodGet)
	r.HandleFunc("/propostas/{id}/eventos", h.Eventos).Methods(http.MethodGet)
	amb.r = r
	return amb
}

func (a *ambiente) fazer(userID uint, isAdmin bool, method, path, corpo string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(corpo))
	req = req.WithContext(auth.ContextoComUsuario(req.Context(), userID, isAdmin))
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// itemDuasTelas custa (1250+250+0)×2 = 3000.
func (a *ambiente) itemDuasTelas(t *testing.T) rascunho.Item {
	t.Helper()
	it, err := rascunho.MontarItem(a.db, a.cat, rascunho.ItemRequest{
		ObraID:  &a.obra.ID,
		Selecao: catalogo.Selecao{MolduraID: "caixa-preta", AcabamentoID: "sem-vidro", FormatoID: "2-telas", Tamanho: "60x90cm"},
	})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "3000", it.PrecoTotal)
	return it
}

func (a *ambiente) enviar(t *testing.T, comoRascunho bool) *Proposta {
	t.Helper()
	p, err := a.svc.Submeter(context.Background(), Envio{
		ArquitetoID:  a.arq.ID,
		Cliente:      "Casa Moreira",
		Projeto:      "Sala de estar",
		Itens:        []rascunho.Item{a.itemDuasTelas(t)},
		ComoRascunho: comoRascunho,
	})
	require.NoError(t, err)
	return p
}

func comentariosDeSistema(t *testing.T, db *gorm.DB, propostaID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&comentario.Comentario{}).Where("proposta_id = ? AND sistema = ?", propostaID, true).Count(&n).Error)
	return n
}

func TestPodeTransitar(t *testing.T) {
	casos := []struct {
		de, para string
		ok       bool
	}{
		{StatusRascunho, StatusEnviada, true},
		{StatusRascunho, StatusCancelada, true},
		{StatusRascunho, StatusPaga, false},
		{StatusEnviada, StatusPaga, true},
		{StatusEnviada, StatusCancelada, true},
		{StatusEnviada, StatusRascunho, false},
		{StatusPaga, StatusCancelada, false},
		{StatusCancelada, StatusEnviada, false},
		{StatusEnviada, StatusEnviada, false},
	}
	for _, tc := range casos {
		assert.Equal(t, tc.ok, PodeTransitar(tc.de, tc.para), "%s → %s", tc.de, tc.para)
	}
}

func TestSubmeter_ComissaoCongeladaNoEnvio(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)

	assert.Equal(t, StatusEnviada, p.Status)
	assert.NotNil(t, p.EnviadaEm)
	testutil.AssertDecimal(t, "3000", p.ValorTotal)
	testutil.AssertDecimal(t, "20", p.TaxaComissao)
	testutil.AssertDecimal(t, "600", p.ValorComissao)
	require.Len(t, p.Itens, 1)
	assert.Equal(t, 1, p.Itens[0].Posicao)

	// taxa muda depois do envio: nada muda na proposta
	require.NoError(t, amb.db.Model(&arquiteto.Arquiteto{}).Where("id = ?", amb.arq.ID).Update("taxa_comissao", decimal.NewFromInt(15)).Error)

	salva, err := amb.svc.Repository.BuscarPorID(amb.db, p.ID)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "600", salva.ValorComissao)
	testutil.AssertDecimal(t, "20", salva.TaxaComissao)

	c, err := comissao.NewRepository(amb.db).FindByProposta(p.ID)
	require.NoError(t, err)
	assert.Equal(t, comissao.StatusPrevista, c.Status)
	testutil.AssertDecimal(t, "600", c.Valor)

	assert.EqualValues(t, 1, comentariosDeSistema(t, amb.db, p.ID))
	assert.Eventually(t, func() bool {
		tipos := amb.notif.Tipos()
		return len(tipos) == 1 && tipos[0] == notificacao.EventoPropostaEnviada
	}, time.Second, 10*time.Millisecond)
}

func TestSubmeter_Recusas(t *testing.T) {
	amb := novoAmbiente(t)

	_, err := amb.svc.Submeter(context.Background(), Envio{ArquitetoID: amb.arq.ID, Cliente: "X"})
	assert.ErrorIs(t, err, rascunho.ErrRascunhoVazio)

	require.NoError(t, amb.db.Model(&arquiteto.Arquiteto{}).Where("id = ?", amb.arq.ID).Update("status", arquiteto.StatusPendente).Error)
	_, err = amb.svc.Submeter(context.Background(), Envio{ArquitetoID: amb.arq.ID, Cliente: "X", Itens: []rascunho.Item{amb.itemDuasTelas(t)}})
	assert.ErrorIs(t, err, ErrArquitetoInapto)

	_, err = amb.svc.Submeter(context.Background(), Envio{ArquitetoID: 999, Cliente: "X", Itens: []rascunho.Item{amb.itemDuasTelas(t)}})
	assert.ErrorIs(t, err, arquiteto.ErrArquitetoNaoEncontrado)

	var n int64
	require.NoError(t, amb.db.Model(&Proposta{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAlterarStatus_PagaAbreProducao(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)
	ctx := context.Background()

	_, err := amb.svc.AlterarStatus(ctx, p.ID, StatusPaga, amb.arq.ID, false)
	assert.ErrorIs(t, err, ErrSomenteAdmin)

	_, err = amb.svc.AlterarStatus(ctx, p.ID, StatusCancelada, amb.outro.ID, false)
	assert.ErrorIs(t, err, ErrAcessoNegado)

	paga, err := amb.svc.AlterarStatus(ctx, p.ID, StatusPaga, adminID, true)
	require.NoError(t, err)
	assert.Equal(t, StatusPaga, paga.Status)
	assert.NotNil(t, paga.PagaEm)
	testutil.AssertDecimal(t, "600", paga.ValorComissao)

	c, err := comissao.NewRepository(amb.db).FindByProposta(p.ID)
	require.NoError(t, err)
	assert.Equal(t, comissao.StatusAReceber, c.Status)

	ordem, err := producao.NewRepository().BuscarPorProposta(amb.db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, producao.StatusAberta, ordem.Status)
	assert.True(t, strings.HasPrefix(ordem.Numero, "OP-"))

	_, err = amb.svc.AlterarStatus(ctx, p.ID, StatusCancelada, adminID, true)
	assert.ErrorIs(t, err, ErrTransicaoInvalida)

	assert.EqualValues(t, 2, comentariosDeSistema(t, amb.db, p.ID))
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{notificacao.EventoPropostaEnviada, notificacao.EventoPropostaPaga}, ordenar(amb.notif.Tipos()))
	}, time.Second, 10*time.Millisecond)
}

func ordenar(tipos []string) []string {
	// a entrega é assíncrona; a ordem de chegada não é garantida
	if len(tipos) == 2 && tipos[0] == notificacao.EventoPropostaPaga {
		tipos[0], tipos[1] = tipos[1], tipos[0]
	}
	return tipos
}

func TestAlterarStatus_RascunhoEnviadoCongelaTaxaAtual(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, true)
	assert.Equal(t, StatusRascunho, p.Status)
	testutil.AssertDecimal(t, "0", p.ValorComissao)
	_, err := comissao.NewRepository(amb.db).FindByProposta(p.ID)
	assert.ErrorIs(t, err, comissao.ErrComissaoNaoEncontrada)

	require.NoError(t, amb.db.Model(&arquiteto.Arquiteto{}).Where("id = ?", amb.arq.ID).Update("taxa_comissao", decimal.NewFromInt(15)).Error)

	enviada, err := amb.svc.AlterarStatus(context.Background(), p.ID, StatusEnviada, amb.arq.ID, false)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "450", enviada.ValorComissao)

	c, err := comissao.NewRepository(amb.db).FindByProposta(p.ID)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "450", c.Valor)
}

func TestAlterarStatus_ArquitetoRejeitadoNaoEnviaRascunho(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, true)

	require.NoError(t, amb.db.Model(&arquiteto.Arquiteto{}).Where("id = ?", amb.arq.ID).Update("status", arquiteto.StatusRejeitado).Error)

	_, err := amb.svc.AlterarStatus(context.Background(), p.ID, StatusEnviada, amb.arq.ID, false)
	assert.ErrorIs(t, err, ErrArquitetoInapto)
	_, err = amb.svc.AlterarStatus(context.Background(), p.ID, StatusEnviada, adminID, true)
	assert.ErrorIs(t, err, ErrArquitetoInapto)

	w := amb.fazer(amb.arq.ID, false, http.MethodPatch, fmt.Sprintf("/propostas/%d/status", p.ID), `{"status":"enviada"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	salva, err := amb.svc.Repository.BuscarPorID(amb.db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRascunho, salva.Status)
	_, err = comissao.NewRepository(amb.db).FindByProposta(p.ID)
	assert.ErrorIs(t, err, comissao.ErrComissaoNaoEncontrada)
	assert.Empty(t, amb.notif.Tipos())

	// cancelar continua permitido
	_, err = amb.svc.AlterarStatus(context.Background(), p.ID, StatusCancelada, amb.arq.ID, false)
	assert.NoError(t, err)
}

func TestAlterarStatus_CancelarRascunhoSemComissao(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, true)

	cancelada, err := amb.svc.AlterarStatus(context.Background(), p.ID, StatusCancelada, amb.arq.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelada, cancelada.Status)
	assert.NotNil(t, cancelada.CanceladaEm)
}

func TestAlterarStatus_CancelarEnviadaCancelaComissao(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)

	_, err := amb.svc.AlterarStatus(context.Background(), p.ID, StatusCancelada, amb.arq.ID, false)
	require.NoError(t, err)

	c, err := comissao.NewRepository(amb.db).FindByProposta(p.ID)
	require.NoError(t, err)
	assert.Equal(t, comissao.StatusCancelada, c.Status)
}

func TestAlterarStatus_PublicaNoHub(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)

	ch, cancelar := amb.hub.Assinar(p.ID)
	defer cancelar()

	_, err := amb.svc.AlterarStatus(context.Background(), p.ID, StatusPaga, adminID, true)
	require.NoError(t, err)

	select {
	case m := <-ch:
		assert.Equal(t, p.ID, m.PropostaID)
		assert.Equal(t, StatusPaga, m.Status)
	case <-time.After(time.Second):
		t.Fatal("nenhuma mudança publicada")
	}
}

func TestHandler_EnviarRascunho(t *testing.T) {
	amb := novoAmbiente(t)

	w := amb.fazer(amb.arq.ID, false, http.MethodPost, "/rascunho/enviar", `{"cliente":"Casa Moreira"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	amb.store.Adicionar(amb.arq.ID, amb.itemDuasTelas(t))
	amb.store.Adicionar(amb.arq.ID, amb.itemDuasTelas(t))

	w = amb.fazer(amb.arq.ID, false, http.MethodPost, "/rascunho/enviar", `{"projeto":"sem cliente"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, amb.store.Obter(amb.arq.ID).Itens, 2)

	w = amb.fazer(amb.arq.ID, false, http.MethodPost, "/rascunho/enviar", `{"cliente":"Casa Moreira","projeto":"Sala"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var dto PropostaDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, StatusEnviada, dto.Status)
	testutil.AssertDecimal(t, "6000", dto.ValorTotal)
	testutil.AssertDecimal(t, "1200", dto.ValorComissao)
	assert.Equal(t, "R$ 6.000,00", dto.TotalFormatado)
	require.Len(t, dto.Itens, 2)
	assert.Equal(t, "Horizonte Azul · moldura Caixa Preta · Sem Vidro · 2 Telas 60x90cm", dto.Itens[1].Descricao)
	assert.Equal(t, 2, dto.Itens[1].Posicao)

	assert.Empty(t, amb.store.Obter(amb.arq.ID).Itens)
}

func TestHandler_CriarComItensInline(t *testing.T) {
	amb := novoAmbiente(t)

	corpo := fmt.Sprintf(`{"cliente":"Loja Sol","rascunho":true,"itens":[
		{"obraId":%d,"molduraId":"caixa-preta","acabamentoId":"sem-vidro","formatoId":"padrao","tamanho":"85x55cm"},
		{"imagemPersonalizada":"https://cdn.exemplo.com/f.jpg","molduraId":"flutuante-preta","acabamentoId":"com-vidro","formatoId":"2-telas","tamanho":"60x90cm"}]}`, amb.obra.ID)
	w := amb.fazer(amb.arq.ID, false, http.MethodPost, "/propostas", corpo)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var dto PropostaDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, StatusRascunho, dto.Status)
	testutil.AssertDecimal(t, "3940", dto.ValorTotal)
	assert.Equal(t, "sem-vidro", dto.Itens[1].AcabamentoID)

	casos := []struct {
		corpo  string
		status int
	}{
		{`{"cliente":"X","itens":[]}`, http.StatusUnprocessableEntity},
		{`{"cliente":"X","itens":[{"obraId":999,"molduraId":"caixa-preta","acabamentoId":"sem-vidro","formatoId":"padrao","tamanho":"85x55cm"}]}`, http.StatusNotFound},
		{fmt.Sprintf(`{"cliente":"X","itens":[{"obraId":%d,"molduraId":"caixa-preta","acabamentoId":"sem-vidro","formatoId":"padrao","tamanho":"1x1cm"}]}`, amb.obra.ID), http.StatusUnprocessableEntity},
		{`{"cliente":`, http.StatusBadRequest},
	}
	for _, tc := range casos {
		w := amb.fazer(amb.arq.ID, false, http.MethodPost, "/propostas", tc.corpo)
		assert.Equal(t, tc.status, w.Code, tc.corpo)
	}
}

func TestHandler_CriarManual(t *testing.T) {
	amb := novoAmbiente(t)
	corpo := fmt.Sprintf(`{"arquitetoId":%d,"cliente":"Venda balcão","itens":[{"obraId":%d,"molduraId":"caixa-preta","acabamentoId":"sem-vidro","formatoId":"padrao","tamanho":"85x55cm"}]}`, amb.outro.ID, amb.obra.ID)
	w := amb.fazer(adminID, true, http.MethodPost, "/propostas/manual", corpo)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var dto PropostaDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.True(t, dto.Manual)
	require.NotNil(t, dto.CriadoPorAdminID)
	assert.EqualValues(t, adminID, *dto.CriadoPorAdminID)
	assert.Equal(t, amb.outro.ID, dto.ArquitetoID)
	testutil.AssertDecimal(t, "150", dto.ValorComissao)

	w = amb.fazer(adminID, true, http.MethodPost, "/propostas/manual", `{"cliente":"X","itens":[{"imagemPersonalizada":"https://x.com/a.jpg","molduraId":"caixa-preta","acabamentoId":"sem-vidro","formatoId":"padrao","tamanho":"85x55cm"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandler_AcessoPorDono(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)
	caminho := fmt.Sprintf("/propostas/%d", p.ID)

	assert.Equal(t, http.StatusOK, amb.fazer(amb.arq.ID, false, http.MethodGet, caminho, "").Code)
	assert.Equal(t, http.StatusOK, amb.fazer(adminID, true, http.MethodGet, caminho, "").Code)
	assert.Equal(t, http.StatusForbidden, amb.fazer(amb.outro.ID, false, http.MethodGet, caminho, "").Code)
	assert.Equal(t, http.StatusNotFound, amb.fazer(adminID, true, http.MethodGet, "/propostas/999", "").Code)
	assert.Equal(t, http.StatusBadRequest, amb.fazer(adminID, true, http.MethodGet, "/propostas/abc", "").Code)

	var lista []PropostaDTO
	w := amb.fazer(amb.outro.ID, false, http.MethodGet, "/propostas", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
	assert.Empty(t, lista)

	w = amb.fazer(amb.arq.ID, false, http.MethodGet, "/propostas?status=enviada", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
	assert.Len(t, lista, 1)

	w = amb.fazer(adminID, true, http.MethodGet, "/propostas?status=paga", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
	assert.Empty(t, lista)
}

func TestHandler_AlterarStatusEExcluir(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)
	status := fmt.Sprintf("/propostas/%d/status", p.ID)
	caminho := fmt.Sprintf("/propostas/%d", p.ID)

	assert.Equal(t, http.StatusForbidden, amb.fazer(amb.arq.ID, false, http.MethodPatch, status, `{"status":"paga"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, amb.fazer(amb.arq.ID, false, http.MethodPatch, status, `{"status":"rascunho"}`).Code)
	assert.Equal(t, http.StatusConflict, amb.fazer(adminID, true, http.MethodDelete, caminho, "").Code)

	w := amb.fazer(amb.arq.ID, false, http.MethodPatch, status, `{"status":"cancelada"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusConflict, amb.fazer(adminID, true, http.MethodPatch, status, `{"status":"paga"}`).Code)

	assert.Equal(t, http.StatusNoContent, amb.fazer(adminID, true, http.MethodDelete, caminho, "").Code)
	assert.Equal(t, http.StatusNotFound, amb.fazer(adminID, true, http.MethodGet, caminho, "").Code)
}

func TestHandler_PDF(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)

	w := amb.fazer(amb.arq.ID, false, http.MethodGet, fmt.Sprintf("/propostas/%d/pdf", p.ID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestHandler_Producao(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)
	caminho := fmt.Sprintf("/propostas/%d/producao", p.ID)

	assert.Equal(t, http.StatusNotFound, amb.fazer(adminID, true, http.MethodGet, caminho, "").Code)

	_, err := amb.svc.AlterarStatus(context.Background(), p.ID, StatusPaga, adminID, true)
	require.NoError(t, err)

	w := amb.fazer(adminID, true, http.MethodGet, caminho, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var v producao.Voucher
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.True(t, v.Completo)
	assert.Equal(t, "Lia Prado", v.Cabecalho.Arquiteto)
	require.Len(t, v.Linhas, 1)
	assert.Equal(t, "Horizonte Azul · moldura Caixa Preta · Sem Vidro · 2 Telas 60x90cm", v.Linhas[0].Descricao)

	// itens perdidos: a ordem sai com a linha de aviso
	require.NoError(t, amb.db.Where("proposta_id = ?", p.ID).Delete(&Item{}).Error)
	w = amb.fazer(adminID, true, http.MethodGet, caminho, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.False(t, v.Completo)
	require.Len(t, v.Linhas, 1)
	assert.Equal(t, producao.DadosNaoSincronizados, v.Linhas[0].Descricao)
}

func TestHandler_EventosSSE(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)

	ctx, cancelar := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/propostas/%d/eventos", p.ID), nil)
	req = req.WithContext(auth.ContextoComUsuario(ctx, amb.arq.ID, false))
	w := httptest.NewRecorder()

	fim := make(chan struct{})
	go func() {
		amb.r.ServeHTTP(w, req)
		close(fim)
	}()

	require.Eventually(t, func() bool { return amb.hub.Assinantes(p.ID) == 1 }, time.Second, 5*time.Millisecond)
	_, err := amb.svc.AlterarStatus(context.Background(), p.ID, StatusCancelada, amb.arq.ID, false)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	cancelar()
	<-fim

	corpo := w.Body.String()
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, corpo, `"status":"enviada"`)
	assert.Contains(t, corpo, `"status":"cancelada"`)
	assert.Zero(t, amb.hub.Assinantes(p.ID))
}

// repositorioComMudanca altera a proposta logo depois da primeira leitura,
// como outro pedido faria entre a leitura e a assinatura do stream.
type repositorioComMudanca struct {
	Repository
	mu    sync.Mutex
	mudou bool
	aoLer func(id uint)
}

func (r *repositorioComMudanca) BuscarPorID(db *gorm.DB, id uint) (*Proposta, error) {
	p, err := r.Repository.BuscarPorID(db, id)
	r.mu.Lock()
	primeira := !r.mudou
	r.mudou = true
	r.mu.Unlock()
	if err == nil && primeira {
		r.aoLer(id)
	}
	return p, err
}

func TestHandler_EventosMudancaAntesDaAssinatura(t *testing.T) {
	amb := novoAmbiente(t)
	p := amb.enviar(t, false)

	amb.svc.Repository = &repositorioComMudanca{
		Repository: amb.svc.Repository,
		aoLer: func(id uint) {
			_, err := amb.svc.AlterarStatus(context.Background(), id, StatusPaga, adminID, true)
			assert.NoError(t, err)
		},
	}

	ctx, cancelar := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/propostas/%d/eventos", p.ID), nil)
	req = req.WithContext(auth.ContextoComUsuario(ctx, amb.arq.ID, false))
	w := httptest.NewRecorder()

	fim := make(chan struct{})
	go func() {
		amb.r.ServeHTTP(w, req)
		close(fim)
	}()

	require.Eventually(t, func() bool { return amb.hub.Assinantes(p.ID) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	cancelar()
	<-fim

	assert.Contains(t, w.Body.String(), `"status":"paga"`)
}
