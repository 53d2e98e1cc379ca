package cliente

import (
	"time"

	"github.com/gestaosimples/api-loja/internal/models"
)

// Cliente é o comprador vinculado às vendas.
type Cliente struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Nome       string        `gorm:"size:255;not null" json:"nome"`
	Email      string        `gorm:"size:255" json:"email"`
	Whatsapp   string        `gorm:"size:20" json:"whatsapp"`
	CPF        string        `gorm:"size:14" json:"cpf"`
	Logradouro string        `gorm:"size:255" json:"logradouro"`
	Cidade     string        `gorm:"size:100" json:"cidade"`
	Estado     string        `gorm:"size:2" json:"estado"`
	CEP        string        `gorm:"size:10" json:"cep"`
	Status     models.Status `gorm:"not null;default:1" json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
