package usuario

import (
	"time"

	"github.com/gestaosimples/api-loja/internal/models"
)

// Usuario é o operador do sistema; o id dele assina as entradas de histórico de venda.
type Usuario struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Nome      string        `gorm:"size:255;not null" json:"nome"`
	Email     string        `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Senha     string        `gorm:"size:255;not null" json:"-"`
	Status    models.Status `gorm:"not null;default:1" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
