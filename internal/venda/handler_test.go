package venda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gestaosimples/api-loja/internal/auth"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// injeta o usuário autenticado sem passar pelo middleware de verdade.
func comUsuario(r *http.Request, usuarioID uint) *http.Request {
	ctx := context.WithValue(r.Context(), auth.CtxUsuarioID, usuarioID)
	return r.WithContext(ctx)
}

func novoRouter(t *testing.T, db *gorm.DB) *mux.Router {
	t.Helper()
	h := NewHandler(db, zaptest.NewLogger(t))
	r := mux.NewRouter()
	r.HandleFunc("/vendas", h.Listar).Methods("GET")
	r.HandleFunc("/vendas", h.Criar).Methods("POST")
	r.HandleFunc("/vendas/relatorio", h.Relatorio).Methods("GET")
	r.HandleFunc("/vendas/{id}", h.BuscarPorID).Methods("GET")
	r.HandleFunc("/vendas/{id}", h.Atualizar).Methods("PUT")
	r.HandleFunc("/vendas/{id}", h.Cancelar).Methods("DELETE")
	return r
}

func TestCriarVendaHTTP(t *testing.T) {
	db := abrirBanco(t)
	c := semeia(t, db)
	r := novoRouter(t, db)

	corpo := fmt.Sprintf(`{
		"clienteId": %d,
		"formaPagamentoId": %d,
		"itens": [{"produtoId": %d, "variacaoId": %d, "quantidade": 2, "valorUnitario": 10}],
		"desconto": 3
	}`, c.clienteID, c.formaPagamentoID, c.produtoID, c.variacaoID)

	req := httptest.NewRequest(http.MethodPost, "/vendas", bytes.NewBufferString(corpo))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var v Venda
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, 17.0, v.ValorTotal)
}

func TestCriarVendaHTTPValidacao(t *testing.T) {
	db := abrirBanco(t)
	c := semeia(t, db)
	r := novoRouter(t, db)

	corpo := fmt.Sprintf(`{"clienteId": %d, "formaPagamentoId": %d, "itens": []}`,
		c.clienteID, c.formaPagamentoID)
	req := httptest.NewRequest(http.MethodPost, "/vendas", bytes.NewBufferString(corpo))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCancelarVendaHTTPConflito(t *testing.T) {
	db := abrirBanco(t)
	c := semeia(t, db)
	r := novoRouter(t, db)
	v := criaVendaBase(t, db, c)

	url := fmt.Sprintf("/vendas/%d", v.ID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, url, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, url, nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBuscarVendaHTTPNaoEncontrada(t *testing.T) {
	db := abrirBanco(t)
	semeia(t, db)
	r := novoRouter(t, db)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vendas/999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAtualizarVendaHTTP(t *testing.T) {
	db := abrirBanco(t)
	c := semeia(t, db)
	r := novoRouter(t, db)
	v := criaVendaBase(t, db, c)

	corpo := `{"desconto": 15}`
	req := comUsuario(httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/vendas/%d", v.ID), bytes.NewBufferString(corpo)), 3)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var atualizada Venda
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &atualizada))
	assert.Equal(t, 5.0, atualizada.ValorTotal)
	require.NotEmpty(t, atualizada.Historico)
	assert.Equal(t, "desconto", atualizada.Historico[0].CampoAlterado)
}

func TestAtualizarVendaHTTPSemUsuario(t *testing.T) {
	db := abrirBanco(t)
	c := semeia(t, db)
	r := novoRouter(t, db)
	v := criaVendaBase(t, db, c)

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/vendas/%d", v.ID), bytes.NewBufferString(`{"desconto": 1}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRelatorioTotalizadores(t *testing.T) {
	db := abrirBanco(t)
	c := semeia(t, db)
	r := novoRouter(t, db)

	criaVendaBase(t, db, c) // 2x10 - 10 = 10
	criaVendaBase(t, db, c)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vendas/relatorio", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp relatorioDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Totalizadores.TotalVendas)
	assert.Equal(t, 40.0, resp.Totalizadores.ValorBruto)
	assert.Equal(t, 20.0, resp.Totalizadores.TotalDescontos)
	assert.Equal(t, 20.0, resp.Totalizadores.ValorLiquido)
	assert.Equal(t, 10.0, resp.Totalizadores.TicketMedio)
}
