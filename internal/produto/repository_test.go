package produto

import (
	"errors"
	"testing"

	"github.com/gestaosimples/api-loja/internal/categoria"
	"github.com/gestaosimples/api-loja/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
	require.NoError(t, db.AutoMigrate(&categoria.Categoria{}, &Produto{}, &ProdutoVariacao{}))
	return db
}

func criaProduto(t *testing.T, db *gorm.DB) *Produto {
	t.Helper()
	cat := categoria.Categoria{Nome: "Calçados"}
	require.NoError(t, db.Create(&cat).Error)
	p := Produto{
		Nome:        "Tênis corrida",
		CategoriaID: cat.ID,
		Variacoes: []ProdutoVariacao{
			{Nome: "38", ValorVarejo: 199.9, Quantidade: 4, CodigoSKU: "TEN-38"},
			{Nome: "40", ValorVarejo: 199.9, Quantidade: 6, CodigoSKU: "TEN-40"},
		},
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func quantidadeDe(t *testing.T, db *gorm.DB, variacaoID uint) int {
	t.Helper()
	var v ProdutoVariacao
	require.NoError(t, db.First(&v, variacaoID).Error)
	return v.Quantidade
}

func TestBaixarEDevolverEstoque(t *testing.T) {
	db := abrirBanco(t)
	p := criaProduto(t, db)
	repo := NewRepository()
	id := p.Variacoes[0].ID

	require.NoError(t, repo.BaixarEstoque(db, id, 3))
	assert.Equal(t, 1, quantidadeDe(t, db, id))

	// Pode ficar negativo; não há piso.
	require.NoError(t, repo.BaixarEstoque(db, id, 5))
	assert.Equal(t, -4, quantidadeDe(t, db, id))

	require.NoError(t, repo.DevolverEstoque(db, id, 8))
	assert.Equal(t, 4, quantidadeDe(t, db, id))
}

func TestBaixarEstoqueVariacaoInexistenteNaoFalha(t *testing.T) {
	db := abrirBanco(t)
	criaProduto(t, db)
	repo := NewRepository()

	require.NoError(t, repo.BaixarEstoque(db, 999, 2))
	require.NoError(t, repo.DevolverEstoque(db, 999, 2))
}

func TestSubstituirVariacoesTrocaOConjuntoInteiro(t *testing.T) {
	db := abrirBanco(t)
	p := criaProduto(t, db)
	repo := NewRepository()

	require.NoError(t, repo.SubstituirVariacoes(db, p.ID, []ProdutoVariacao{
		{Nome: "42", ValorVarejo: 219.9, Quantidade: 2, CodigoSKU: "TEN-42"},
	}))

	atual, err := repo.BuscarPorID(db, p.ID)
	require.NoError(t, err)
	require.Len(t, atual.Variacoes, 1)
	assert.Equal(t, "42", atual.Variacoes[0].Nome)

	// As variações antigas foram apagadas de fato.
	existe, err := repo.VariacaoExiste(db, p.Variacoes[0].ID)
	require.NoError(t, err)
	assert.False(t, existe)
}

func TestRemoverESoftDelete(t *testing.T) {
	db := abrirBanco(t)
	p := criaProduto(t, db)
	repo := NewRepository()

	require.NoError(t, repo.Remover(db, p.ID))

	// Some da listagem mas continua no banco para as vendas antigas.
	lista, err := repo.Listar(db, "", 0)
	require.NoError(t, err)
	assert.Empty(t, lista)

	var atual Produto
	require.NoError(t, db.First(&atual, p.ID).Error)
	assert.Equal(t, models.StatusRemovido, atual.Status)
}

func TestRemoverInexistente(t *testing.T) {
	db := abrirBanco(t)
	err := NewRepository().Remover(db, 123)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListarFiltraPorNomeECategoria(t *testing.T) {
	db := abrirBanco(t)
	p := criaProduto(t, db)
	repo := NewRepository()

	outraCat := categoria.Categoria{Nome: "Acessórios"}
	require.NoError(t, db.Create(&outraCat).Error)
	outro := Produto{Nome: "Boné aba reta", CategoriaID: outraCat.ID,
		Variacoes: []ProdutoVariacao{{Nome: "Único", ValorVarejo: 49.9}}}
	require.NoError(t, db.Create(&outro).Error)

	lista, err := repo.Listar(db, "Tênis", 0)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, p.ID, lista[0].ID)

	lista, err = repo.Listar(db, "", outraCat.ID)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, outro.ID, lista[0].ID)
}
