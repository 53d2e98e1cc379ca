package formapagamento

import (
	"github.com/gestaosimples/api-loja/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Listar(db *gorm.DB) ([]FormaPagamento, error)
	BuscarPorID(db *gorm.DB, id uint) (*FormaPagamento, error)
	Salvar(db *gorm.DB, f *FormaPagamento) error
	Remover(db *gorm.DB, id uint) error
	Existe(db *gorm.DB, id uint) (bool, error)
	EmUso(db *gorm.DB, id uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB) ([]FormaPagamento, error) {
	var formas []FormaPagamento
	err := db.Where("status <> ?", models.StatusRemovido).Find(&formas).Error
	return formas, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*FormaPagamento, error) {
	var f FormaPagamento
	if err := db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, f *FormaPagamento) error {
	return db.Save(f).Error
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	res := db.Model(&FormaPagamento{}).
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
	err := db.Model(&FormaPagamento{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// EmUso indica se alguma venda referencia a forma de pagamento.
func (r *repositoryImpl) EmUso(db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.Table("vendas").Where("forma_pagamento_id = ?", id).Count(&count).Error
	return count > 0, err
}
