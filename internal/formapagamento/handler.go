package formapagamento

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gestaosimples/api-loja/internal/models"

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

type formaPagamentoRequest struct {
	Nome  string `json:"nome"`
	Texto string `json:"texto"`
}

// GET /formaspagamento
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	formas, err := h.Repository.Listar(h.DB)
	if err != nil {
		h.Logger.Error("erro ao listar formas de pagamento", zap.Error(err))
		http.Error(w, "Erro ao listar formas de pagamento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(formas)
}

// POST /formaspagamento
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req formaPagamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Nome) == "" {
		http.Error(w, "Nome é obrigatório", http.StatusUnprocessableEntity)
		return
	}

	f := FormaPagamento{Nome: req.Nome, Texto: req.Texto, Status: models.StatusAtivo}
	if err := h.Repository.Salvar(h.DB, &f); err != nil {
		h.Logger.Error("erro ao criar forma de pagamento", zap.Error(err))
		http.Error(w, "Erro ao salvar forma de pagamento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(f)
}

// PUT /formaspagamento/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	f, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Forma de pagamento não encontrada", http.StatusNotFound)
		return
	}

	var req formaPagamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Nome) == "" {
		http.Error(w, "Nome é obrigatório", http.StatusUnprocessableEntity)
		return
	}

	f.Nome = req.Nome
	f.Texto = req.Texto
	if err := h.Repository.Salvar(h.DB, f); err != nil {
		h.Logger.Error("erro ao atualizar forma de pagamento", zap.Error(err))
		http.Error(w, "Erro ao atualizar forma de pagamento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(f)
}

// DELETE /formaspagamento/{id}
// Rejeita a remoção quando alguma venda usa a forma de pagamento.
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	emUso, err := h.Repository.EmUso(h.DB, uint(id))
	if err != nil {
		h.Logger.Error("erro ao verificar uso da forma de pagamento", zap.Error(err))
		http.Error(w, "Erro ao remover forma de pagamento", http.StatusInternalServerError)
		return
	}
	if emUso {
		http.Error(w, "Forma de pagamento em uso por vendas. Apenas inative.", http.StatusUnprocessableEntity)
		return
	}

	if err := h.Repository.Remover(h.DB, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "Forma de pagamento não encontrada", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao remover forma de pagamento", zap.Error(err))
		http.Error(w, "Erro ao remover forma de pagamento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Forma de pagamento removida com sucesso"}`))
}
