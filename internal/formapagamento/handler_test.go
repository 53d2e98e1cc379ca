package formapagamento_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gestaosimples/api-loja/internal/categoria"
	"github.com/gestaosimples/api-loja/internal/cliente"
	"github.com/gestaosimples/api-loja/internal/formapagamento"
	"github.com/gestaosimples/api-loja/internal/models"
	"github.com/gestaosimples/api-loja/internal/produto"
	"github.com/gestaosimples/api-loja/internal/venda"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&categoria.Categoria{},
		&cliente.Cliente{},
		&formapagamento.FormaPagamento{},
		&produto.Produto{},
		&produto.ProdutoVariacao{},
		&venda.Venda{},
		&venda.ItemVenda{},
	))
	return db
}

func novoRouter(t *testing.T, db *gorm.DB) *mux.Router {
	t.Helper()
	h := formapagamento.NewHandler(db, zaptest.NewLogger(t))
	r := mux.NewRouter()
	r.HandleFunc("/formaspagamento/{id}", h.Remover).Methods("DELETE")
	return r
}

func TestRemoverFormaDePagamentoEmUso(t *testing.T) {
	db := abrirBanco(t)
	r := novoRouter(t, db)

	forma := formapagamento.FormaPagamento{Nome: "Cartão de crédito", Status: models.StatusAtivo}
	require.NoError(t, db.Create(&forma).Error)
	cli := cliente.Cliente{Nome: "João"}
	require.NoError(t, db.Create(&cli).Error)
	v := venda.Venda{
		DataHora:         time.Now(),
		ClienteID:        cli.ID,
		FormaPagamentoID: forma.ID,
		ValorTotal:       50,
		Status:           venda.StatusAtiva,
	}
	require.NoError(t, db.Create(&v).Error)

	req := httptest.NewRequest(http.MethodDelete, "/formaspagamento/"+strconv.Itoa(int(forma.ID)), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Continua ativa.
	var atual formapagamento.FormaPagamento
	require.NoError(t, db.First(&atual, forma.ID).Error)
	assert.Equal(t, models.StatusAtivo, atual.Status)
}

func TestRemoverFormaDePagamentoSemUso(t *testing.T) {
	db := abrirBanco(t)
	r := novoRouter(t, db)

	forma := formapagamento.FormaPagamento{Nome: "Boleto", Status: models.StatusAtivo}
	require.NoError(t, db.Create(&forma).Error)

	req := httptest.NewRequest(http.MethodDelete, "/formaspagamento/"+strconv.Itoa(int(forma.ID)), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Soft delete: some da listagem mas permanece no banco.
	formas, err := formapagamento.NewRepository().Listar(db)
	require.NoError(t, err)
	assert.Empty(t, formas)

	var atual formapagamento.FormaPagamento
	require.NoError(t, db.First(&atual, forma.ID).Error)
	assert.Equal(t, models.StatusRemovido, atual.Status)
}
