package venda

import (
	"time"

	"github.com/gestaosimples/api-loja/internal/cliente"
	"github.com/gestaosimples/api-loja/internal/formapagamento"
	"github.com/gestaosimples/api-loja/internal/funcionario"
	"github.com/gestaosimples/api-loja/internal/models"
	"github.com/gestaosimples/api-loja/internal/produto"
	"github.com/gestaosimples/api-loja/internal/usuario"
)

// Estados possíveis de uma venda. Cancelamento é soft delete:
// a venda nunca é apagada do banco.
const (
	StatusAtiva     = models.StatusAtivo
	StatusCancelada = models.StatusRemovido
)

// Venda é o cabeçalho da transação. Os itens são a única fonte de verdade
// para quantidades e valores; ValorTotal é sempre derivado deles menos o
// desconto do cabeçalho.
type Venda struct {
	ID               uint                           `gorm:"primaryKey" json:"id"`
	DataHora         time.Time                      `gorm:"not null;index" json:"dataHora"`
	ClienteID        uint                           `gorm:"not null;index" json:"clienteId"`
	Cliente          *cliente.Cliente               `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	FormaPagamentoID uint                           `gorm:"not null;index" json:"formaPagamentoId"`
	FormaPagamento   *formapagamento.FormaPagamento `gorm:"foreignKey:FormaPagamentoID" json:"formaPagamento,omitempty"`
	FuncionarioID    *uint                          `json:"funcionarioId"`
	Funcionario      *funcionario.Funcionario       `gorm:"foreignKey:FuncionarioID" json:"funcionario,omitempty"`
	ValorTotal       float64                        `gorm:"not null" json:"valorTotal"`
	Desconto         float64                        `gorm:"not null;default:0" json:"desconto"`
	Observacoes      string                         `json:"observacoes"`
	Status           models.Status                  `gorm:"not null;default:1;index" json:"status"`

	Itens     []ItemVenda      `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE" json:"itens"`
	Historico []VendaHistorico `gorm:"foreignKey:VendaID" json:"historico,omitempty"`
}

// ItemVenda é uma linha do carrinho. Pertence exclusivamente à venda:
// em edições o conjunto inteiro é destruído e recriado.
type ItemVenda struct {
	ID            uint                     `gorm:"primaryKey" json:"id"`
	VendaID       uint                     `gorm:"not null;index" json:"vendaId"`
	ProdutoID     uint                     `gorm:"not null" json:"produtoId"`
	Produto       *produto.Produto         `gorm:"foreignKey:ProdutoID" json:"produto,omitempty"`
	VariacaoID    *uint                    `json:"variacaoId"`
	Variacao      *produto.ProdutoVariacao `gorm:"foreignKey:VariacaoID" json:"variacao,omitempty"`
	Quantidade    int                      `gorm:"not null" json:"quantidade"`
	ValorUnitario float64                  `gorm:"not null" json:"valorUnitario"`
	ValorTotal    float64                  `gorm:"not null" json:"valorTotal"`
	DescontoItem  float64                  `gorm:"not null;default:0" json:"descontoItem"`
}

// VendaHistorico é o registro imutável de uma alteração de campo da venda.
// Uma entrada por campo alterado por edição; itens entram como grupo,
// nunca item a item.
type VendaHistorico struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	VendaID       uint             `gorm:"not null;index" json:"vendaId"`
	UsuarioID     uint             `gorm:"not null" json:"usuarioId"`
	Usuario       *usuario.Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	DataHora      time.Time        `gorm:"not null" json:"dataHora"`
	CampoAlterado string           `gorm:"size:50;not null" json:"campoAlterado"`
	ValorAnterior string           `gorm:"size:255" json:"valorAnterior"`
	ValorNovo     string           `gorm:"size:255" json:"valorNovo"`
	Descricao     string           `gorm:"size:255" json:"descricao"`
}
