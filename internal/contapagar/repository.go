package contapagar

import (
	"time"

	"github.com/gestaosimples/api-loja/internal/models"

	"gorm.io/gorm"
)

// FiltroContas agrupa os filtros da listagem de contas.
type FiltroContas struct {
	Categoria  string
	Fornecedor string
	DataInicio *time.Time
	DataFim    *time.Time
}

type Repository interface {
	Listar(db *gorm.DB, f FiltroContas) ([]ContaPagar, error)
	BuscarPorID(db *gorm.DB, id uint) (*ContaPagar, error)
	Salvar(db *gorm.DB, c *ContaPagar) error
	Excluir(db *gorm.DB, id uint) error

	BuscarParcela(db *gorm.DB, id uint) (*ParcelaContaPagar, error)
	SalvarParcela(db *gorm.DB, p *ParcelaContaPagar) error
	TemParcelaPaga(db *gorm.DB, contaID uint) (bool, error)
	ParcelasDoMes(db *gorm.DB, inicio, fim time.Time) ([]ParcelaContaPagar, error)
	TotalPago(db *gorm.DB, contaID uint) (float64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB, f FiltroContas) ([]ContaPagar, error) {
	q := db.Preload("Parcelas", func(db *gorm.DB) *gorm.DB {
		return db.Order("numero_parcela ASC")
	}).Where("status = ?", models.StatusAtivo)
	if f.Categoria != "" {
		q = q.Where("categoria = ?", f.Categoria)
	}
	if f.Fornecedor != "" {
		q = q.Where("fornecedor LIKE ?", "%"+f.Fornecedor+"%")
	}
	if f.DataInicio != nil {
		q = q.Where("data_cadastro >= ?", *f.DataInicio)
	}
	if f.DataFim != nil {
		q = q.Where("data_cadastro <= ?", *f.DataFim)
	}
	var contas []ContaPagar
	err := q.Order("data_cadastro DESC").Find(&contas).Error
	return contas, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*ContaPagar, error) {
	var c ContaPagar
	err := db.Preload("Parcelas", func(db *gorm.DB) *gorm.DB {
		return db.Order("numero_parcela ASC")
	}).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *ContaPagar) error {
	return db.Save(c).Error
}

// Excluir apaga a conta e as parcelas em cascata. A guarda de parcelas
// pagas fica no handler.
func (r *repositoryImpl) Excluir(db *gorm.DB, id uint) error {
	if err := db.Where("conta_pagar_id = ?", id).Delete(&ParcelaContaPagar{}).Error; err != nil {
		return err
	}
	res := db.Delete(&ContaPagar{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) BuscarParcela(db *gorm.DB, id uint) (*ParcelaContaPagar, error) {
	var p ParcelaContaPagar
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) SalvarParcela(db *gorm.DB, p *ParcelaContaPagar) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) TemParcelaPaga(db *gorm.DB, contaID uint) (bool, error) {
	var count int64
	err := db.Model(&ParcelaContaPagar{}).
		Where("conta_pagar_id = ? AND data_pagamento IS NOT NULL", contaID).
		Count(&count).Error
	return count > 0, err
}

func (r *repositoryImpl) ParcelasDoMes(db *gorm.DB, inicio, fim time.Time) ([]ParcelaContaPagar, error) {
	var parcelas []ParcelaContaPagar
	err := db.Where("data_vencimento BETWEEN ? AND ?", inicio, fim).
		Order("data_vencimento ASC").
		Find(&parcelas).Error
	return parcelas, err
}

// TotalPago soma os pagamentos registrados da conta. O agregado nunca é
// gravado na conta; é sempre recalculado na leitura.
func (r *repositoryImpl) TotalPago(db *gorm.DB, contaID uint) (float64, error) {
	var total float64
	err := db.Model(&ParcelaContaPagar{}).
		Where("conta_pagar_id = ? AND data_pagamento IS NOT NULL", contaID).
		Select("COALESCE(SUM(valor_pago), 0)").
		Scan(&total).Error
	return total, err
}
