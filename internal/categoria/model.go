package categoria

import (
	"time"

	"github.com/gestaosimples/api-loja/internal/models"
)

// Categoria agrupa produtos do catálogo.
type Categoria struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Nome      string        `gorm:"size:255;not null" json:"nome"`
	Texto     string        `json:"texto"`
	Status    models.Status `gorm:"not null;default:1" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
