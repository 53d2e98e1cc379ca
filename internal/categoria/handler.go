package categoria

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

type categoriaRequest struct {
	Nome  string `json:"nome"`
	Texto string `json:"texto"`
}

// GET /categorias
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.Repository.ListarAtivas(h.DB)
	if err != nil {
		h.Logger.Error("erro ao listar categorias", zap.Error(err))
		http.Error(w, "Erro ao listar categorias", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(categorias)
}

// POST /categorias
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req categoriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Nome) == "" {
		http.Error(w, "Nome é obrigatório", http.StatusUnprocessableEntity)
		return
	}

	c := Categoria{Nome: req.Nome, Texto: req.Texto, Status: models.StatusAtivo}
	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		h.Logger.Error("erro ao criar categoria", zap.Error(err))
		http.Error(w, "Erro ao salvar categoria", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// PUT /categorias/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Categoria não encontrada", http.StatusNotFound)
		return
	}

	var req categoriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Nome) == "" {
		http.Error(w, "Nome é obrigatório", http.StatusUnprocessableEntity)
		return
	}

	c.Nome = req.Nome
	if req.Texto != "" {
		c.Texto = req.Texto
	}
	if err := h.Repository.Salvar(h.DB, c); err != nil {
		h.Logger.Error("erro ao atualizar categoria", zap.Error(err))
		http.Error(w, "Erro ao atualizar categoria", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// DELETE /categorias/{id} (soft delete)
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Remover(h.DB, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "Categoria não encontrada", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao remover categoria", zap.Error(err))
		http.Error(w, "Erro ao remover categoria", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Categoria removida com sucesso"}`))
}
