package usuario

import (
	"encoding/json"
	"net/http"

	"github.com/gestaosimples/api-loja/internal/auth"
	"github.com/gestaosimples/api-loja/internal/models"
	"github.com/gestaosimples/api-loja/internal/utils"

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

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token   string   `json:"token"`
	Usuario *Usuario `json:"usuario"`
}

// Login valida credenciais e devolve um JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Senha == "" {
		http.Error(w, "E-mail e senha são obrigatórios", http.StatusUnprocessableEntity)
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(u.Senha, req.Senha) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if u.Status != models.StatusAtivo {
		http.Error(w, "Usuário inativo", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(u.ID)
	if err != nil {
		h.Logger.Error("erro ao gerar token", zap.Error(err))
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{Token: token, Usuario: u})
}

// Me devolve o usuário autenticado.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.UsuarioIDDoContexto(r.Context())
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	u, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}
