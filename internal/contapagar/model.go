package contapagar

import (
	"time"

	"github.com/gestaosimples/api-loja/internal/models"

	"gorm.io/gorm"
)

// Estados derivados de uma parcela. Nunca são gravados: o status é
// calculado na leitura a partir de data_pagamento e data_vencimento.
const (
	ParcelaPaga     = "pago"
	ParcelaAtrasada = "atrasado"
	ParcelaPendente = "pendente"
)

// ContaPagar é uma obrigação com fornecedor, opcionalmente parcelada.
type ContaPagar struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Descricao      string        `gorm:"size:255;not null" json:"descricao"`
	ValorTotal     float64       `gorm:"not null" json:"valorTotal"`
	Categoria      string        `gorm:"size:100" json:"categoria"`
	Fornecedor     string        `gorm:"size:255" json:"fornecedor"`
	Parcelado      bool          `gorm:"not null;default:false" json:"parcelado"`
	NumeroParcelas int           `gorm:"not null;default:1" json:"numeroParcelas"`
	DataCadastro   time.Time     `gorm:"not null" json:"dataCadastro"`
	Observacoes    string        `json:"observacoes"`
	Status         models.Status `gorm:"not null;default:1" json:"status"`

	Parcelas []ParcelaContaPagar `gorm:"foreignKey:ContaPagarID;constraint:OnDelete:CASCADE" json:"parcelas"`
}

// ParcelaContaPagar é um pagamento agendado da conta.
// A soma dos valores das parcelas é sempre igual ao total da conta:
// a última parcela absorve a sobra de arredondamento.
type ParcelaContaPagar struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ContaPagarID   uint       `gorm:"not null;index" json:"contaPagarId"`
	NumeroParcela  int        `gorm:"not null" json:"numeroParcela"`
	ValorParcela   float64    `gorm:"not null" json:"valorParcela"`
	DataVencimento time.Time  `gorm:"not null" json:"dataVencimento"`
	DataPagamento  *time.Time `json:"dataPagamento"`
	ValorPago      *float64   `json:"valorPago"`
	Observacoes    string     `json:"observacoes"`

	// Derivado na leitura, nunca persistido.
	Status string `gorm:"-" json:"status"`
}

// StatusEm deriva o estado da parcela para a data de referência informada.
func (p *ParcelaContaPagar) StatusEm(hoje time.Time) string {
	if p.DataPagamento != nil {
		return ParcelaPaga
	}
	ano, mes, dia := hoje.Date()
	inicioDoDia := time.Date(ano, mes, dia, 0, 0, 0, 0, hoje.Location())
	if p.DataVencimento.Before(inicioDoDia) {
		return ParcelaAtrasada
	}
	return ParcelaPendente
}

// AfterFind preenche o status derivado em toda leitura via gorm.
func (p *ParcelaContaPagar) AfterFind(tx *gorm.DB) error {
	p.Status = p.StatusEm(time.Now())
	return nil
}
