package funcionario

import (
	"time"

	"github.com/gestaosimples/api-loja/internal/models"
)

// Funcionario é o vendedor opcionalmente vinculado a uma venda.
type Funcionario struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Nome      string        `gorm:"size:255;not null" json:"nome"`
	Status    models.Status `gorm:"not null;default:1" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
