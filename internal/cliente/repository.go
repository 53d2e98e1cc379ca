package cliente

import (
	"github.com/gestaosimples/api-loja/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Listar(db *gorm.DB, busca string) ([]Cliente, error)
	BuscarPorID(db *gorm.DB, id uint) (*Cliente, error)
	Salvar(db *gorm.DB, c *Cliente) error
	Remover(db *gorm.DB, id uint) error
	Existe(db *gorm.DB, id uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Listar devolve os clientes não removidos, com busca opcional por nome, CPF ou whatsapp.
func (r *repositoryImpl) Listar(db *gorm.DB, busca string) ([]Cliente, error) {
	q := db.Where("status <> ?", models.StatusRemovido)
	if busca != "" {
		like := "%" + busca + "%"
		q = q.Where("nome LIKE ? OR cpf LIKE ? OR whatsapp LIKE ?", like, like, like)
	}
	var clientes []Cliente
	err := q.Order("nome ASC").Find(&clientes).Error
	return clientes, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	res := db.Model(&Cliente{}).
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

// Existe só exige que o registro exista; a venda aceita clientes inativos.
func (r *repositoryImpl) Existe(db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.Model(&Cliente{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
