package venda

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gestaosimples/api-loja/internal/auth"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Logger     *zap.Logger
}

func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Logger: logger}
}

func (h *Handler) responderErro(w http.ResponseWriter, err error, contexto string) {
	var ev *ErroValidacao
	switch {
	case errors.As(err, &ev):
		http.Error(w, ev.Mensagem, http.StatusUnprocessableEntity)
	case errors.Is(err, ErrVendaCancelada):
		http.Error(w, "Venda já está cancelada", http.StatusConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
	default:
		h.Logger.Error(contexto, zap.Error(err))
		http.Error(w, contexto, http.StatusInternalServerError)
	}
}

func filtroDaQuery(r *http.Request) FiltroListagem {
	q := r.URL.Query()
	f := FiltroListagem{Busca: q.Get("search")}
	if v := q.Get("dataInicio"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DataInicio = &t
		}
	}
	if v := q.Get("dataFim"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// inclui o dia inteiro
			fim := t.Add(24*time.Hour - time.Nanosecond)
			f.DataFim = &fim
		}
	}
	if v, err := strconv.Atoi(q.Get("clienteId")); err == nil {
		f.ClienteID = uint(v)
	}
	if v, err := strconv.Atoi(q.Get("formaPagamentoId")); err == nil {
		f.FormaPagamentoID = uint(v)
	}
	return f
}

// GET /vendas
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	vendas, err := h.Repository.Listar(h.DB, filtroDaQuery(r))
	if err != nil {
		h.Logger.Error("erro ao listar vendas", zap.Error(err))
		http.Error(w, "Erro ao listar vendas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(vendas)
}

// GET /vendas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	v, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// POST /vendas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in CriarVendaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	v, err := CriarVenda(h.DB, in)
	if err != nil {
		h.responderErro(w, err, "Erro ao salvar venda")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(v)
}

// PUT /vendas/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	usuarioID, ok := auth.UsuarioIDDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var in AtualizarVendaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	v, err := AtualizarVenda(h.DB, uint(id), usuarioID, in)
	if err != nil {
		h.responderErro(w, err, "Erro ao atualizar venda")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// DELETE /vendas/{id}: cancela a venda e devolve o estoque.
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := CancelarVenda(h.DB, uint(id)); err != nil {
		h.responderErro(w, err, "Erro ao cancelar venda")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Venda cancelada com sucesso"}`))
}

type totalizadoresDTO struct {
	TotalVendas    int     `json:"totalVendas"`
	ValorBruto     float64 `json:"valorBruto"`
	TotalDescontos float64 `json:"totalDescontos"`
	ValorLiquido   float64 `json:"valorLiquido"`
	TicketMedio    float64 `json:"ticketMedio"`
}

type relatorioDTO struct {
	Vendas        []Venda          `json:"vendas"`
	Totalizadores totalizadoresDTO `json:"totalizadores"`
}

func arredondar(v float64) float64 {
	return math.Round(v*100) / 100
}

// GET /vendas/relatorio
func (h *Handler) Relatorio(w http.ResponseWriter, r *http.Request) {
	vendas, err := h.Repository.ListarAtivas(h.DB, filtroDaQuery(r))
	if err != nil {
		h.Logger.Error("erro no relatório de vendas", zap.Error(err))
		http.Error(w, "Erro ao gerar relatório", http.StatusInternalServerError)
		return
	}

	var t totalizadoresDTO
	t.TotalVendas = len(vendas)
	for _, v := range vendas {
		t.ValorLiquido += v.ValorTotal
		t.TotalDescontos += v.Desconto
		t.ValorBruto += v.ValorTotal + v.Desconto
	}
	t.ValorBruto = arredondar(t.ValorBruto)
	t.TotalDescontos = arredondar(t.TotalDescontos)
	t.ValorLiquido = arredondar(t.ValorLiquido)
	if t.TotalVendas > 0 {
		t.TicketMedio = arredondar(t.ValorLiquido / float64(t.TotalVendas))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(relatorioDTO{Vendas: vendas, Totalizadores: t})
}
