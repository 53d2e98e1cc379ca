package produto

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gestaosimples/api-loja/internal/categoria"
	"github.com/gestaosimples/api-loja/internal/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	DB            *gorm.DB
	Repository    Repository
	CategoriaRepo categoria.Repository
	Logger        *zap.Logger
}

func NewHandler(db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Repository:    NewRepository(),
		CategoriaRepo: categoria.NewRepository(),
		Logger:        logger,
	}
}

type variacaoRequest struct {
	Nome         string  `json:"nome"`
	ValorCusto   float64 `json:"valorCusto"`
	ValorAtacado float64 `json:"valorAtacado"`
	ValorVarejo  float64 `json:"valorVarejo"`
	Quantidade   int     `json:"quantidade"`
	CodigoSKU    string  `json:"codigoSku"`
}

type produtoRequest struct {
	Nome        string            `json:"nome"`
	CategoriaID uint              `json:"categoriaId"`
	Texto       string            `json:"texto"`
	Variacoes   []variacaoRequest `json:"variacoes"`
}

func (req *produtoRequest) validar() string {
	if strings.TrimSpace(req.Nome) == "" {
		return "Nome é obrigatório"
	}
	if req.CategoriaID == 0 {
		return "Categoria é obrigatória"
	}
	if len(req.Variacoes) == 0 {
		return "Informe ao menos uma variação"
	}
	for _, v := range req.Variacoes {
		if strings.TrimSpace(v.Nome) == "" {
			return "Toda variação precisa de nome"
		}
		if v.ValorVarejo < 0 {
			return "Preço de varejo não pode ser negativo"
		}
	}
	return ""
}

func (req *produtoRequest) variacoes() []ProdutoVariacao {
	out := make([]ProdutoVariacao, 0, len(req.Variacoes))
	for _, v := range req.Variacoes {
		out = append(out, ProdutoVariacao{
			Nome:         v.Nome,
			ValorCusto:   v.ValorCusto,
			ValorAtacado: v.ValorAtacado,
			ValorVarejo:  v.ValorVarejo,
			Quantidade:   v.Quantidade,
			CodigoSKU:    v.CodigoSKU,
			Status:       models.StatusAtivo,
		})
	}
	return out
}

// GET /produtos?search=&categoriaId=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	categoriaID, _ := strconv.Atoi(r.URL.Query().Get("categoriaId"))
	produtos, err := h.Repository.Listar(h.DB, r.URL.Query().Get("search"), uint(categoriaID))
	if err != nil {
		h.Logger.Error("erro ao listar produtos", zap.Error(err))
		http.Error(w, "Erro ao listar produtos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(produtos)
}

// GET /produtos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// POST /produtos: cria o produto e suas variações em uma transação.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req produtoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if msg := req.validar(); msg != "" {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}

	existe, err := h.CategoriaRepo.Existe(h.DB, req.CategoriaID)
	if err != nil || !existe {
		http.Error(w, "Categoria não encontrada", http.StatusUnprocessableEntity)
		return
	}

	p := Produto{
		Nome:        req.Nome,
		CategoriaID: req.CategoriaID,
		Texto:       req.Texto,
		Status:      models.StatusAtivo,
		Variacoes:   req.variacoes(),
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&p).Error
	}); err != nil {
		h.Logger.Error("erro ao criar produto", zap.Error(err))
		http.Error(w, "Erro ao salvar produto", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// PUT /produtos/{id}: atualiza dados gerais e substitui o conjunto de variações.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}

	var req produtoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if msg := req.validar(); msg != "" {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}

	existe, err := h.CategoriaRepo.Existe(h.DB, req.CategoriaID)
	if err != nil || !existe {
		http.Error(w, "Categoria não encontrada", http.StatusUnprocessableEntity)
		return
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		p.Nome = req.Nome
		p.CategoriaID = req.CategoriaID
		p.Texto = req.Texto
		p.Variacoes = nil
		if err := tx.Omit("Variacoes").Save(p).Error; err != nil {
			return err
		}
		return h.Repository.SubstituirVariacoes(tx, p.ID, req.variacoes())
	}); err != nil {
		h.Logger.Error("erro ao atualizar produto", zap.Error(err))
		http.Error(w, "Erro ao atualizar produto", http.StatusInternalServerError)
		return
	}

	atualizado, err := h.Repository.BuscarPorID(h.DB, p.ID)
	if err != nil {
		http.Error(w, "Erro ao buscar produto atualizado", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// DELETE /produtos/{id} (soft delete)
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Remover(h.DB, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "Produto não encontrado", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao remover produto", zap.Error(err))
		http.Error(w, "Erro ao remover produto", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Produto removido com sucesso"}`))
}

type itemEstoqueDTO struct {
	Produto    string  `json:"produto"`
	Variacao   string  `json:"variacao"`
	Quantidade int     `json:"quantidade"`
	ValorCusto float64 `json:"valorCusto"`
	ValorTotal float64 `json:"valorTotal"`
}

type relatorioEstoqueDTO struct {
	Itens         []itemEstoqueDTO `json:"itens"`
	TotalProdutos int              `json:"totalProdutos"`
	TotalItens    int              `json:"totalItens"`
	ValorTotal    float64          `json:"valorTotal"`
}

// GET /produtos/relatorio-estoque
func (h *Handler) RelatorioEstoque(w http.ResponseWriter, r *http.Request) {
	categoriaID, _ := strconv.Atoi(r.URL.Query().Get("categoriaId"))
	produtos, err := h.Repository.Listar(h.DB, r.URL.Query().Get("nome"), uint(categoriaID))
	if err != nil {
		h.Logger.Error("erro no relatório de estoque", zap.Error(err))
		http.Error(w, "Erro ao gerar relatório de estoque", http.StatusInternalServerError)
		return
	}

	rel := relatorioEstoqueDTO{Itens: []itemEstoqueDTO{}}
	for _, p := range produtos {
		rel.TotalProdutos++
		for _, v := range p.Variacoes {
			valor := float64(v.Quantidade) * v.ValorCusto
			rel.Itens = append(rel.Itens, itemEstoqueDTO{
				Produto:    p.Nome,
				Variacao:   v.Nome,
				Quantidade: v.Quantidade,
				ValorCusto: v.ValorCusto,
				ValorTotal: valor,
			})
			rel.TotalItens += v.Quantidade
			rel.ValorTotal += valor
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rel)
}
