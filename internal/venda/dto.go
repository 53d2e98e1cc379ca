package venda

import "github.com/gestaosimples/api-loja/internal/models"

// ItemVendaInput é uma linha do carrinho enviada pelo cliente da API.
type ItemVendaInput struct {
	ProdutoID     uint    `json:"produtoId"`
	VariacaoID    *uint   `json:"variacaoId"`
	Quantidade    int     `json:"quantidade"`
	ValorUnitario float64 `json:"valorUnitario"`
	DescontoItem  float64 `json:"descontoItem"`
}

// CriarVendaInput é o payload do POST /vendas.
type CriarVendaInput struct {
	ClienteID        uint             `json:"clienteId"`
	FormaPagamentoID uint             `json:"formaPagamentoId"`
	FuncionarioID    *uint            `json:"funcionarioId"`
	Itens            []ItemVendaInput `json:"itens"`
	Desconto         float64          `json:"desconto"`
	Observacoes      string           `json:"observacoes"`
}

// AtualizarVendaInput é o payload do PUT /vendas/{id}. Cada campo é
// opcional; só o que vier preenchido é aplicado e auditado.
// Itens, quando presente, substitui o conjunto inteiro de itens.
type AtualizarVendaInput struct {
	FormaPagamentoID *uint             `json:"formaPagamentoId"`
	Desconto         *float64          `json:"desconto"`
	Observacoes      *string           `json:"observacoes"`
	Status           *models.Status    `json:"status"`
	Itens            *[]ItemVendaInput `json:"itens"`
}
