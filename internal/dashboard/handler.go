package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gestaosimples/api-loja/internal/cliente"
	"github.com/gestaosimples/api-loja/internal/contapagar"
	"github.com/gestaosimples/api-loja/internal/models"
	"github.com/gestaosimples/api-loja/internal/produto"
	"github.com/gestaosimples/api-loja/internal/venda"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler agrega leituras de vendas, produtos, clientes e contas a pagar
// para a tela inicial. Só leitura; nenhuma escrita passa por aqui.
type Handler struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Logger: logger}
}

type vendaRecenteDTO struct {
	ID          uint    `json:"id"`
	Cliente     string  `json:"cliente"`
	Valor       float64 `json:"valor"`
	Data        string  `json:"data"`
	Funcionario string  `json:"funcionario"`
}

type pontoSerieDTO struct {
	Rotulo string  `json:"rotulo"`
	Total  float64 `json:"total"`
}

type estatisticasDTO struct {
	VendasHoje           float64           `json:"vendasHoje"`
	VendasMes            float64           `json:"vendasMes"`
	VendasAno            float64           `json:"vendasAno"`
	TotalVendas          int64             `json:"totalVendas"`
	TotalProdutos        int64             `json:"totalProdutos"`
	ProdutosBaixoEstoque int64             `json:"produtosBaixoEstoque"`
	TotalClientes        int64             `json:"totalClientes"`
	VendasRecentes       []vendaRecenteDTO `json:"vendasRecentes"`
	VendasUltimos7Dias   []pontoSerieDTO   `json:"vendasUltimos7Dias"`
	VendasUltimos12Meses []pontoSerieDTO   `json:"vendasUltimos12Meses"`
	ParcelasVencidas     int64             `json:"parcelasVencidas"`
}

func (h *Handler) somaVendas(inicio, fim time.Time) (float64, error) {
	var total float64
	err := h.DB.Model(&venda.Venda{}).
		Where("status <> ?", venda.StatusCancelada).
		Where("data_hora >= ? AND data_hora < ?", inicio, fim).
		Select("COALESCE(SUM(valor_total), 0)").
		Scan(&total).Error
	return total, err
}

// GET /dashboard/estatisticas
func (h *Handler) Estatisticas(w http.ResponseWriter, r *http.Request) {
	agora := time.Now()
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
	inicioMes := time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, agora.Location())
	inicioAno := time.Date(agora.Year(), 1, 1, 0, 0, 0, 0, agora.Location())
	amanha := hoje.AddDate(0, 0, 1)

	var out estatisticasDTO
	var err error

	if out.VendasHoje, err = h.somaVendas(hoje, amanha); err != nil {
		h.falha(w, err)
		return
	}
	if out.VendasMes, err = h.somaVendas(inicioMes, amanha); err != nil {
		h.falha(w, err)
		return
	}
	if out.VendasAno, err = h.somaVendas(inicioAno, amanha); err != nil {
		h.falha(w, err)
		return
	}

	if err = h.DB.Model(&venda.Venda{}).
		Where("status <> ?", venda.StatusCancelada).
		Count(&out.TotalVendas).Error; err != nil {
		h.falha(w, err)
		return
	}
	if err = h.DB.Model(&produto.Produto{}).
		Where("status <> ?", models.StatusRemovido).
		Count(&out.TotalProdutos).Error; err != nil {
		h.falha(w, err)
		return
	}
	if err = h.DB.Model(&produto.ProdutoVariacao{}).
		Where("status <> ? AND quantidade <= 5", models.StatusRemovido).
		Count(&out.ProdutosBaixoEstoque).Error; err != nil {
		h.falha(w, err)
		return
	}
	if err = h.DB.Model(&cliente.Cliente{}).
		Where("status <> ?", models.StatusRemovido).
		Count(&out.TotalClientes).Error; err != nil {
		h.falha(w, err)
		return
	}

	// Últimas 5 vendas
	var recentes []venda.Venda
	if err = h.DB.Preload("Cliente").Preload("Funcionario").
		Where("status <> ?", venda.StatusCancelada).
		Order("data_hora DESC").
		Limit(5).
		Find(&recentes).Error; err != nil {
		h.falha(w, err)
		return
	}
	out.VendasRecentes = make([]vendaRecenteDTO, 0, len(recentes))
	for _, v := range recentes {
		dto := vendaRecenteDTO{
			ID:          v.ID,
			Cliente:     "Cliente não informado",
			Valor:       v.ValorTotal,
			Data:        v.DataHora.Format("02/01/2006 15:04"),
			Funcionario: "N/A",
		}
		if v.Cliente != nil {
			dto.Cliente = v.Cliente.Nome
		}
		if v.Funcionario != nil {
			dto.Funcionario = v.Funcionario.Nome
		}
		out.VendasRecentes = append(out.VendasRecentes, dto)
	}

	// Série dos últimos 7 dias
	out.VendasUltimos7Dias = make([]pontoSerieDTO, 0, 7)
	for i := 6; i >= 0; i-- {
		dia := hoje.AddDate(0, 0, -i)
		total, err := h.somaVendas(dia, dia.AddDate(0, 0, 1))
		if err != nil {
			h.falha(w, err)
			return
		}
		out.VendasUltimos7Dias = append(out.VendasUltimos7Dias, pontoSerieDTO{
			Rotulo: dia.Format("02/01"),
			Total:  total,
		})
	}

	// Série dos últimos 12 meses
	out.VendasUltimos12Meses = make([]pontoSerieDTO, 0, 12)
	for i := 11; i >= 0; i-- {
		inicio := inicioMes.AddDate(0, -i, 0)
		total, err := h.somaVendas(inicio, inicio.AddDate(0, 1, 0))
		if err != nil {
			h.falha(w, err)
			return
		}
		out.VendasUltimos12Meses = append(out.VendasUltimos12Meses, pontoSerieDTO{
			Rotulo: inicio.Format("01/2006"),
			Total:  total,
		})
	}

	if err = h.DB.Model(&contapagar.ParcelaContaPagar{}).
		Where("data_pagamento IS NULL AND data_vencimento < ?", hoje).
		Count(&out.ParcelasVencidas).Error; err != nil {
		h.falha(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *Handler) falha(w http.ResponseWriter, err error) {
	h.Logger.Error("erro nas estatísticas do dashboard", zap.Error(err))
	http.Error(w, "Erro ao calcular estatísticas", http.StatusInternalServerError)
}
