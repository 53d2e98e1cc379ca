package produto

import (
	"time"

	"github.com/gestaosimples/api-loja/internal/models"
)

// Produto é o item pai do catálogo. Preço e estoque vivem nas variações;
// os campos planos foram aposentados quando as variações entraram.
type Produto struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Nome        string        `gorm:"size:255;not null;index" json:"nome"`
	CategoriaID uint          `gorm:"not null;index" json:"categoriaId"`
	Texto       string        `json:"texto"`
	Status      models.Status `gorm:"not null;default:1" json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	Variacoes []ProdutoVariacao `gorm:"foreignKey:ProdutoID;constraint:OnDelete:CASCADE" json:"variacoes"`
}

// ProdutoVariacao é a unidade vendável: carrega os três níveis de preço
// (custo, atacado, varejo) e a quantidade em estoque.
// A quantidade é mutada pelo ciclo de vida das vendas e pode ficar negativa;
// o sistema não impõe piso.
type ProdutoVariacao struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	ProdutoID    uint          `gorm:"not null;index" json:"produtoId"`
	Nome         string        `gorm:"size:255;not null" json:"nome"`
	ValorCusto   float64       `gorm:"not null;default:0" json:"valorCusto"`
	ValorAtacado float64       `gorm:"not null;default:0" json:"valorAtacado"`
	ValorVarejo  float64       `gorm:"not null" json:"valorVarejo"`
	Quantidade   int           `gorm:"not null;default:0" json:"quantidade"`
	CodigoSKU    string        `gorm:"size:100" json:"codigoSku"`
	Status       models.Status `gorm:"not null;default:1" json:"status"`
}
