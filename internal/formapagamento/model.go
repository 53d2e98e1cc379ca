package formapagamento

import (
	"time"

	"github.com/gestaosimples/api-loja/internal/models"
)

// FormaPagamento é a modalidade de pagamento aceita nas vendas.
type FormaPagamento struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Nome      string        `gorm:"size:255;not null" json:"nome"`
	Texto     string        `json:"texto"`
	Status    models.Status `gorm:"not null;default:1" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
