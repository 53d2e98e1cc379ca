package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestaosimples/api-loja/internal/categoria"
	"github.com/gestaosimples/api-loja/internal/cliente"
	"github.com/gestaosimples/api-loja/internal/contapagar"
	"github.com/gestaosimples/api-loja/internal/formapagamento"
	"github.com/gestaosimples/api-loja/internal/produto"
	"github.com/gestaosimples/api-loja/internal/venda"

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
		&contapagar.ContaPagar{},
		&contapagar.ParcelaContaPagar{},
	))
	return db
}

func TestEstatisticas(t *testing.T) {
	db := abrirBanco(t)

	cat := categoria.Categoria{Nome: "Geral"}
	require.NoError(t, db.Create(&cat).Error)
	cli := cliente.Cliente{Nome: "Pedro"}
	require.NoError(t, db.Create(&cli).Error)
	forma := formapagamento.FormaPagamento{Nome: "Pix"}
	require.NoError(t, db.Create(&forma).Error)
	p := produto.Produto{
		Nome:        "Caderno",
		CategoriaID: cat.ID,
		Variacoes: []produto.ProdutoVariacao{
			{Nome: "Único", ValorVarejo: 20, Quantidade: 3}, // baixo estoque
		},
	}
	require.NoError(t, db.Create(&p).Error)

	hoje := venda.Venda{DataHora: time.Now(), ClienteID: cli.ID,
		FormaPagamentoID: forma.ID, ValorTotal: 100, Status: venda.StatusAtiva}
	require.NoError(t, db.Create(&hoje).Error)

	cancelada := venda.Venda{DataHora: time.Now(), ClienteID: cli.ID,
		FormaPagamentoID: forma.ID, ValorTotal: 999, Status: venda.StatusCancelada}
	require.NoError(t, db.Create(&cancelada).Error)

	vencida := contapagar.ContaPagar{Descricao: "Luz", ValorTotal: 80,
		DataCadastro: time.Now(), Status: 1,
		Parcelas: []contapagar.ParcelaContaPagar{
			{NumeroParcela: 1, ValorParcela: 80, DataVencimento: time.Now().AddDate(0, 0, -10)},
		}}
	require.NoError(t, db.Create(&vencida).Error)

	h := NewHandler(db, zaptest.NewLogger(t))
	rec := httptest.NewRecorder()
	h.Estatisticas(rec, httptest.NewRequest(http.MethodGet, "/dashboard/estatisticas", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var out estatisticasDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	// A venda cancelada fica fora de todas as somas.
	assert.Equal(t, 100.0, out.VendasHoje)
	assert.Equal(t, 100.0, out.VendasMes)
	assert.Equal(t, 100.0, out.VendasAno)
	assert.Equal(t, int64(1), out.TotalVendas)
	assert.Equal(t, int64(1), out.TotalProdutos)
	assert.Equal(t, int64(1), out.ProdutosBaixoEstoque)
	assert.Equal(t, int64(1), out.TotalClientes)
	assert.Equal(t, int64(1), out.ParcelasVencidas)

	require.Len(t, out.VendasRecentes, 1)
	assert.Equal(t, "Pedro", out.VendasRecentes[0].Cliente)

	assert.Len(t, out.VendasUltimos7Dias, 7)
	assert.Len(t, out.VendasUltimos12Meses, 12)
	assert.Equal(t, 100.0, out.VendasUltimos7Dias[6].Total)
	assert.Equal(t, 100.0, out.VendasUltimos12Meses[11].Total)
}
