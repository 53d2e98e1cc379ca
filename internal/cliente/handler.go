package cliente

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

type clienteRequest struct {
	Nome       string `json:"nome"`
	Email      string `json:"email"`
	Whatsapp   string `json:"whatsapp"`
	CPF        string `json:"cpf"`
	Logradouro string `json:"logradouro"`
	Cidade     string `json:"cidade"`
	Estado     string `json:"estado"`
	CEP        string `json:"cep"`
}

func (req *clienteRequest) validar() string {
	if strings.TrimSpace(req.Nome) == "" {
		return "Nome é obrigatório"
	}
	if strings.TrimSpace(req.Whatsapp) == "" {
		return "Whatsapp é obrigatório"
	}
	return ""
}

// GET /clientes?search=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.Repository.Listar(h.DB, r.URL.Query().Get("search"))
	if err != nil {
		h.Logger.Error("erro ao listar clientes", zap.Error(err))
		http.Error(w, "Erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(clientes)
}

// GET /clientes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// POST /clientes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req clienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if msg := req.validar(); msg != "" {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}

	c := Cliente{
		Nome:       req.Nome,
		Email:      req.Email,
		Whatsapp:   req.Whatsapp,
		CPF:        req.CPF,
		Logradouro: req.Logradouro,
		Cidade:     req.Cidade,
		Estado:     req.Estado,
		CEP:        req.CEP,
		Status:     models.StatusAtivo,
	}
	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		h.Logger.Error("erro ao criar cliente", zap.Error(err))
		http.Error(w, "Erro ao salvar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// PUT /clientes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	var req clienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if msg := req.validar(); msg != "" {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}

	c.Nome = req.Nome
	c.Email = req.Email
	c.Whatsapp = req.Whatsapp
	c.CPF = req.CPF
	c.Logradouro = req.Logradouro
	c.Cidade = req.Cidade
	c.Estado = req.Estado
	c.CEP = req.CEP
	if err := h.Repository.Salvar(h.DB, c); err != nil {
		h.Logger.Error("erro ao atualizar cliente", zap.Error(err))
		http.Error(w, "Erro ao atualizar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// DELETE /clientes/{id} (soft delete)
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Remover(h.DB, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "Cliente não encontrado", http.StatusNotFound)
			return
		}
		h.Logger.Error("erro ao remover cliente", zap.Error(err))
		http.Error(w, "Erro ao remover cliente", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Cliente removido com sucesso"}`))
}
