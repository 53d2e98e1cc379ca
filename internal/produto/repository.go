package produto

import (
	"github.com/gestaosimples/api-loja/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Listar(db *gorm.DB, busca string, categoriaID uint) ([]Produto, error)
	BuscarPorID(db *gorm.DB, id uint) (*Produto, error)
	Salvar(db *gorm.DB, p *Produto) error
	Remover(db *gorm.DB, id uint) error
	Existe(db *gorm.DB, id uint) (bool, error)

	SubstituirVariacoes(db *gorm.DB, produtoID uint, variacoes []ProdutoVariacao) error
	VariacaoExiste(db *gorm.DB, variacaoID uint) (bool, error)

	BaixarEstoque(db *gorm.DB, variacaoID uint, quantidade int) error
	DevolverEstoque(db *gorm.DB, variacaoID uint, quantidade int) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB, busca string, categoriaID uint) ([]Produto, error) {
	q := db.Preload("Variacoes").Where("status <> ?", models.StatusRemovido)
	if busca != "" {
		q = q.Where("nome LIKE ?", "%"+busca+"%")
	}
	if categoriaID != 0 {
		q = q.Where("categoria_id = ?", categoriaID)
	}
	var produtos []Produto
	err := q.Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Produto, error) {
	var p Produto
	if err := db.Preload("Variacoes").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Produto) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	res := db.Model(&Produto{}).
		Where("id = ?", id).
		Update("status", models.StatusRemovido)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Existe(db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.Model(&Produto{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// SubstituirVariacoes apaga as variações do produto e grava o conjunto novo.
// Deve rodar dentro da transação que atualiza o produto.
func (r *repositoryImpl) SubstituirVariacoes(db *gorm.DB, produtoID uint, variacoes []ProdutoVariacao) error {
	if err := db.Where("produto_id = ?", produtoID).Delete(&ProdutoVariacao{}).Error; err != nil {
		return err
	}
	for i := range variacoes {
		variacoes[i].ID = 0
		variacoes[i].ProdutoID = produtoID
	}
	if len(variacoes) == 0 {
		return nil
	}
	return db.Create(&variacoes).Error
}

func (r *repositoryImpl) VariacaoExiste(db *gorm.DB, variacaoID uint) (bool, error) {
	var count int64
	err := db.Model(&ProdutoVariacao{}).Where("id = ?", variacaoID).Count(&count).Error
	return count > 0, err
}

// BaixarEstoque decrementa a quantidade da variação em um único UPDATE atômico.
// Não há piso: o estoque pode ficar negativo. Variação inexistente é tolerada
// em silêncio (linhas legadas de venda sem variação).
func (r *repositoryImpl) BaixarEstoque(db *gorm.DB, variacaoID uint, quantidade int) error {
	return db.Model(&ProdutoVariacao{}).
		Where("id = ?", variacaoID).
		UpdateColumn("quantidade", gorm.Expr("quantidade - ?", quantidade)).Error
}

// DevolverEstoque incrementa a quantidade da variação em um único UPDATE atômico.
func (r *repositoryImpl) DevolverEstoque(db *gorm.DB, variacaoID uint, quantidade int) error {
	return db.Model(&ProdutoVariacao{}).
		Where("id = ?", variacaoID).
		UpdateColumn("quantidade", gorm.Expr("quantidade + ?", quantidade)).Error
}
