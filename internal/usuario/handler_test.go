package usuario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gestaosimples/api-loja/internal/models"
	"github.com/gestaosimples/api-loja/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "segredo-de-teste")
	os.Exit(m.Run())
}

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Usuario{}))
	return db
}

func criaUsuario(t *testing.T, db *gorm.DB, status models.Status) *Usuario {
	t.Helper()
	hash, err := utils.HashSenha("senha123")
	require.NoError(t, err)
	u := Usuario{Nome: "Ana Lima", Email: "ana@loja.com", Senha: hash, Status: status}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func fazLogin(t *testing.T, db *gorm.DB, corpo string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(db, zaptest.NewLogger(t))
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(corpo))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	db := abrirBanco(t)
	criaUsuario(t, db, models.StatusAtivo)

	rec := fazLogin(t, db, `{"email": "ana@loja.com", "senha": "senha123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token   string  `json:"token"`
		Usuario Usuario `json:"usuario"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@loja.com", resp.Usuario.Email)

	// O hash da senha nunca sai na resposta.
	assert.Empty(t, resp.Usuario.Senha)
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestLoginSenhaErrada(t *testing.T) {
	db := abrirBanco(t)
	criaUsuario(t, db, models.StatusAtivo)

	rec := fazLogin(t, db, `{"email": "ana@loja.com", "senha": "outra"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUsuarioInexistente(t *testing.T) {
	db := abrirBanco(t)

	rec := fazLogin(t, db, `{"email": "ninguem@loja.com", "senha": "senha123"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUsuarioInativo(t *testing.T) {
	db := abrirBanco(t)
	criaUsuario(t, db, models.StatusInativo)

	rec := fazLogin(t, db, `{"email": "ana@loja.com", "senha": "senha123"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginCamposObrigatorios(t *testing.T) {
	db := abrirBanco(t)

	rec := fazLogin(t, db, `{"email": "", "senha": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
