package venda

import (
	"time"

	"gorm.io/gorm"
)

// FiltroListagem agrupa os filtros aceitos na listagem e no relatório.
type FiltroListagem struct {
	Busca            string
	DataInicio       *time.Time
	DataFim          *time.Time
	ClienteID        uint
	FormaPagamentoID uint
}

type Repository interface {
	BuscarPorID(db *gorm.DB, id uint) (*Venda, error)
	Listar(db *gorm.DB, f FiltroListagem) ([]Venda, error)
	ListarAtivas(db *gorm.DB, f FiltroListagem) ([]Venda, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// BuscarPorID carrega a venda com todos os relacionamentos, inclusive o
// histórico de alterações com o usuário autor.
func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Venda, error) {
	var v Venda
	err := db.
		Preload("Cliente").
		Preload("FormaPagamento").
		Preload("Funcionario").
		Preload("Itens.Produto").
		Preload("Itens.Variacao").
		Preload("Historico", func(db *gorm.DB) *gorm.DB {
			return db.Order("data_hora DESC")
		}).
		Preload("Historico.Usuario").
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func aplicarFiltro(q *gorm.DB, f FiltroListagem) *gorm.DB {
	if f.Busca != "" {
		like := "%" + f.Busca + "%"
		q = q.Joins("JOIN clientes ON clientes.id = vendas.cliente_id").
			Where("vendas.id = ? OR clientes.nome LIKE ?", f.Busca, like)
	}
	if f.DataInicio != nil {
		q = q.Where("vendas.data_hora >= ?", *f.DataInicio)
	}
	if f.DataFim != nil {
		q = q.Where("vendas.data_hora <= ?", *f.DataFim)
	}
	if f.ClienteID != 0 {
		q = q.Where("vendas.cliente_id = ?", f.ClienteID)
	}
	if f.FormaPagamentoID != 0 {
		q = q.Where("vendas.forma_pagamento_id = ?", f.FormaPagamentoID)
	}
	return q
}

// Listar devolve as vendas não canceladas, mais recentes primeiro.
func (r *repositoryImpl) Listar(db *gorm.DB, f FiltroListagem) ([]Venda, error) {
	var vendas []Venda
	q := db.Model(&Venda{}).
		Preload("Cliente").
		Preload("FormaPagamento").
		Preload("Funcionario").
		Preload("Itens.Produto").
		Preload("Itens.Variacao").
		Where("vendas.status <> ?", StatusCancelada)
	q = aplicarFiltro(q, f)
	err := q.Order("vendas.data_hora DESC").Find(&vendas).Error
	return vendas, err
}

// ListarAtivas é a base do relatório: só vendas com status ativo.
func (r *repositoryImpl) ListarAtivas(db *gorm.DB, f FiltroListagem) ([]Venda, error) {
	var vendas []Venda
	q := db.Model(&Venda{}).
		Preload("Cliente").
		Preload("FormaPagamento").
		Preload("Itens.Produto").
		Preload("Itens.Variacao").
		Where("vendas.status = ?", StatusAtiva)
	q = aplicarFiltro(q, f)
	err := q.Order("vendas.data_hora DESC").Find(&vendas).Error
	return vendas, err
}
