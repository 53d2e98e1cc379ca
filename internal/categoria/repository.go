package categoria

import (
	"github.com/gestaosimples/api-loja/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	ListarAtivas(db *gorm.DB) ([]Categoria, error)
	BuscarPorID(db *gorm.DB, id uint) (*Categoria, error)
	Salvar(db *gorm.DB, c *Categoria) error
	Remover(db *gorm.DB, id uint) error
	Existe(db *gorm.DB, id uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ListarAtivas(db *gorm.DB) ([]Categoria, error) {
	var categorias []Categoria
	err := db.Where("status <> ?", models.StatusRemovido).
		Order("nome ASC").
		Find(&categorias).Error
	return categorias, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Categoria, error) {
	var c Categoria
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Categoria) error {
	return db.Save(c).Error
}

// Remover é soft delete: marca a categoria como removida.
func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	res := db.Model(&Categoria{}).
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
	err := db.Model(&Categoria{}).
		Where("id = ? AND status <> ?", id, models.StatusRemovido).
		Count(&count).Error
	return count > 0, err
}
