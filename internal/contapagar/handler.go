package contapagar

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

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

type criarContaRequest struct {
	Descricao              string  `json:"descricao"`
	ValorTotal             float64 `json:"valorTotal"`
	Categoria              string  `json:"categoria"`
	Fornecedor             string  `json:"fornecedor"`
	Parcelado              bool    `json:"parcelado"`
	NumeroParcelas         int     `json:"numeroParcelas"`
	PeriodicidadeDias      int     `json:"periodicidadeDias"`
	DataPrimeiroVencimento string  `json:"dataPrimeiroVencimento"`
	Observacoes            string  `json:"observacoes"`
}

// GET /contas-pagar
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := FiltroContas{
		Categoria:  q.Get("categoria"),
		Fornecedor: q.Get("fornecedor"),
	}
	if v := q.Get("dataInicio"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DataInicio = &t
		}
	}
	if v := q.Get("dataFim"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.DataFim = &t
		}
	}

	contas, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		h.Logger.Error("erro ao listar contas a pagar", zap.Error(err))
		http.Error(w, "Erro ao listar contas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contas)
}

type contaDetalheDTO struct {
	ContaPagar
	TotalPago     float64 `json:"totalPago"`
	ValorRestante float64 `json:"valorRestante"`
}

// GET /contas-pagar/{id}: detalhe com o total pago recalculado na leitura.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Conta não encontrada", http.StatusNotFound)
		return
	}
	totalPago, err := h.Repository.TotalPago(h.DB, c.ID)
	if err != nil {
		h.Logger.Error("erro ao somar pagamentos da conta", zap.Error(err))
		http.Error(w, "Erro ao buscar conta", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contaDetalheDTO{
		ContaPagar:    *c,
		TotalPago:     arredondar(totalPago),
		ValorRestante: arredondar(c.ValorTotal - totalPago),
	})
}

// POST /contas-pagar: cria a conta e o plano de parcelas em uma transação.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarContaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Descricao) == "" {
		http.Error(w, "Descrição é obrigatória", http.StatusUnprocessableEntity)
		return
	}
	if req.ValorTotal < 0 {
		http.Error(w, "Valor total não pode ser negativo", http.StatusUnprocessableEntity)
		return
	}
	if req.Parcelado && (req.NumeroParcelas < 1 || req.NumeroParcelas > 60) {
		http.Error(w, "Número de parcelas deve estar entre 1 e 60", http.StatusUnprocessableEntity)
		return
	}
	primeiroVencimento, err := time.Parse("2006-01-02", req.DataPrimeiroVencimento)
	if err != nil {
		http.Error(w, "Data do primeiro vencimento inválida", http.StatusUnprocessableEntity)
		return
	}

	numeroParcelas := req.NumeroParcelas
	if !req.Parcelado {
		numeroParcelas = 1
	}

	conta := ContaPagar{
		Descricao:      req.Descricao,
		ValorTotal:     req.ValorTotal,
		Categoria:      req.Categoria,
		Fornecedor:     req.Fornecedor,
		Parcelado:      req.Parcelado,
		NumeroParcelas: numeroParcelas,
		DataCadastro:   time.Now(),
		Observacoes:    req.Observacoes,
		Status:         models.StatusAtivo,
		Parcelas: GerarParcelas(
			req.ValorTotal,
			req.Parcelado,
			numeroParcelas,
			req.PeriodicidadeDias,
			primeiroVencimento,
		),
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&conta).Error
	}); err != nil {
		h.Logger.Error("erro ao criar conta a pagar", zap.Error(err))
		http.Error(w, "Erro ao salvar conta", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(conta)
}

type atualizarContaRequest struct {
	Descricao   *string `json:"descricao"`
	Categoria   *string `json:"categoria"`
	Fornecedor  *string `json:"fornecedor"`
	Observacoes *string `json:"observacoes"`
}

// PUT /contas-pagar/{id}: só os campos descritivos; o plano de parcelas
// não é alterado por aqui.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Conta não encontrada", http.StatusNotFound)
		return
	}

	var req atualizarContaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Descricao != nil {
		if strings.TrimSpace(*req.Descricao) == "" {
			http.Error(w, "Descrição não pode ficar vazia", http.StatusUnprocessableEntity)
			return
		}
		c.Descricao = *req.Descricao
	}
	if req.Categoria != nil {
		c.Categoria = *req.Categoria
	}
	if req.Fornecedor != nil {
		c.Fornecedor = *req.Fornecedor
	}
	if req.Observacoes != nil {
		c.Observacoes = *req.Observacoes
	}

	if err := h.DB.Omit("Parcelas").Save(c).Error; err != nil {
		h.Logger.Error("erro ao atualizar conta a pagar", zap.Error(err))
		http.Error(w, "Erro ao atualizar conta", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// DELETE /contas-pagar/{id}
// Conta com parcela paga não pode ser excluída, apenas inativada.
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	temPaga, err := h.Repository.TemParcelaPaga(h.DB, uint(id))
	if err != nil {
		h.Logger.Error("erro ao verificar parcelas pagas", zap.Error(err))
		http.Error(w, "Erro ao excluir conta", http.StatusInternalServerError)
		return
	}
	if temPaga {
		http.Error(w, "Não é possível excluir conta com parcelas pagas. Apenas inative.", http.StatusUnprocessableEntity)
		return
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		return h.Repository.Excluir(tx, uint(id))
	}); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "Conta não encontrada", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao excluir conta a pagar", zap.Error(err))
		http.Error(w, "Erro ao excluir conta", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Conta excluída com sucesso"}`))
}

type pagarParcelaRequest struct {
	DataPagamento string  `json:"dataPagamento"`
	ValorPago     float64 `json:"valorPago"`
	Observacoes   string  `json:"observacoes"`
}

// POST /parcelas/{id}/pagar: registra o pagamento da parcela.
// Não toca nas parcelas irmãs nem grava agregado na conta.
func (h *Handler) PagarParcela(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da parcela inválido", http.StatusBadRequest)
		return
	}

	var req pagarParcelaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	dataPagamento, err := time.Parse("2006-01-02", req.DataPagamento)
	if err != nil {
		http.Error(w, "Data de pagamento inválida", http.StatusUnprocessableEntity)
		return
	}
	if req.ValorPago < 0 {
		http.Error(w, "Valor pago não pode ser negativo", http.StatusUnprocessableEntity)
		return
	}

	p, err := h.Repository.BuscarParcela(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Parcela não encontrada", http.StatusNotFound)
		return
	}

	p.DataPagamento = &dataPagamento
	p.ValorPago = &req.ValorPago
	if req.Observacoes != "" {
		p.Observacoes = req.Observacoes
	}
	if err := h.Repository.SalvarParcela(h.DB, p); err != nil {
		h.Logger.Error("erro ao registrar pagamento de parcela", zap.Error(err))
		http.Error(w, "Erro ao registrar pagamento", http.StatusInternalServerError)
		return
	}
	p.Status = p.StatusEm(time.Now())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// GET /contas-pagar/calendario/{mes}/{ano}
func (h *Handler) Calendario(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mes, err := strconv.Atoi(vars["mes"])
	if err != nil || mes < 1 || mes > 12 {
		http.Error(w, "Mês inválido", http.StatusBadRequest)
		return
	}
	ano, err := strconv.Atoi(vars["ano"])
	if err != nil {
		http.Error(w, "Ano inválido", http.StatusBadRequest)
		return
	}

	inicio := time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, time.Local)
	fim := inicio.AddDate(0, 1, 0).Add(-time.Nanosecond)

	parcelas, err := h.Repository.ParcelasDoMes(h.DB, inicio, fim)
	if err != nil {
		h.Logger.Error("erro no calendário de contas", zap.Error(err))
		http.Error(w, "Erro ao montar calendário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(parcelas)
}
