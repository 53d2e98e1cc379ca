package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gestaosimples/api-loja/internal/auth"
	"github.com/gestaosimples/api-loja/internal/categoria"
	"github.com/gestaosimples/api-loja/internal/cliente"
	"github.com/gestaosimples/api-loja/internal/contapagar"
	"github.com/gestaosimples/api-loja/internal/dashboard"
	"github.com/gestaosimples/api-loja/internal/formapagamento"
	"github.com/gestaosimples/api-loja/internal/funcionario"
	"github.com/gestaosimples/api-loja/internal/produto"
	"github.com/gestaosimples/api-loja/internal/usuario"
	utildb "github.com/gestaosimples/api-loja/internal/utils/db"
	"github.com/gestaosimples/api-loja/internal/venda"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Erro ao criar logger:", err)
	}
	defer logger.Sync()

	db, err := utildb.ConnectDataBase()
	if err != nil {
		logger.Fatal("Erro ao conectar no banco", zap.Error(err))
	}

	// AutoMigrate para todos os modelos
	if err := db.AutoMigrate(
		&usuario.Usuario{},
		&categoria.Categoria{},
		&cliente.Cliente{},
		&formapagamento.FormaPagamento{},
		&funcionario.Funcionario{},
		&produto.Produto{},
		&produto.ProdutoVariacao{},
		&venda.Venda{},
		&venda.ItemVenda{},
		&venda.VendaHistorico{},
		&contapagar.ContaPagar{},
		&contapagar.ParcelaContaPagar{},
	); err != nil {
		logger.Fatal("Erro no AutoMigrate", zap.Error(err))
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(db, logger)
	categoriaHandler := categoria.NewHandler(db, logger)
	clienteHandler := cliente.NewHandler(db, logger)
	formaPagamentoHandler := formapagamento.NewHandler(db, logger)
	produtoHandler := produto.NewHandler(db, logger)
	vendaHandler := venda.NewHandler(db, logger)
	contaPagarHandler := contapagar.NewHandler(db, logger)
	dashboardHandler := dashboard.NewHandler(db, logger)

	// Router
	r := mux.NewRouter()

	// Rota pública
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/me", usuarioHandler.Me).Methods("GET")

	// Rotas de categorias
	api.HandleFunc("/categorias", categoriaHandler.Listar).Methods("GET")
	api.HandleFunc("/categorias", categoriaHandler.Criar).Methods("POST")
	api.HandleFunc("/categorias/{id}", categoriaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/categorias/{id}", categoriaHandler.Remover).Methods("DELETE")

	// Rotas de clientes
	api.HandleFunc("/clientes", clienteHandler.Listar).Methods("GET")
	api.HandleFunc("/clientes", clienteHandler.Criar).Methods("POST")
	api.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/clientes/{id}", clienteHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/clientes/{id}", clienteHandler.Remover).Methods("DELETE")

	// Rotas de formas de pagamento
	api.HandleFunc("/formaspagamento", formaPagamentoHandler.Listar).Methods("GET")
	api.HandleFunc("/formaspagamento", formaPagamentoHandler.Criar).Methods("POST")
	api.HandleFunc("/formaspagamento/{id}", formaPagamentoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/formaspagamento/{id}", formaPagamentoHandler.Remover).Methods("DELETE")

	// Rotas de produtos
	api.HandleFunc("/produtos", produtoHandler.Listar).Methods("GET")
	api.HandleFunc("/produtos", produtoHandler.Criar).Methods("POST")
	api.HandleFunc("/produtos/relatorio-estoque", produtoHandler.RelatorioEstoque).Methods("GET")
	api.HandleFunc("/produtos/{id}", produtoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/produtos/{id}", produtoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/produtos/{id}", produtoHandler.Remover).Methods("DELETE")

	// Rotas de vendas
	api.HandleFunc("/vendas", vendaHandler.Listar).Methods("GET")
	api.HandleFunc("/vendas", vendaHandler.Criar).Methods("POST")
	api.HandleFunc("/vendas/relatorio", vendaHandler.Relatorio).Methods("GET")
	api.HandleFunc("/vendas/{id}", vendaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/vendas/{id}", vendaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/vendas/{id}", vendaHandler.Cancelar).Methods("DELETE")

	// Rotas de contas a pagar
	api.HandleFunc("/contas-pagar", contaPagarHandler.Listar).Methods("GET")
	api.HandleFunc("/contas-pagar", contaPagarHandler.Criar).Methods("POST")
	api.HandleFunc("/contas-pagar/calendario/{mes}/{ano}", contaPagarHandler.Calendario).Methods("GET")
	api.HandleFunc("/contas-pagar/{id}", contaPagarHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/contas-pagar/{id}", contaPagarHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/contas-pagar/{id}", contaPagarHandler.Excluir).Methods("DELETE")
	api.HandleFunc("/parcelas/{id}/pagar", contaPagarHandler.PagarParcela).Methods("POST")

	// Dashboard
	api.HandleFunc("/dashboard/estatisticas", dashboardHandler.Estatisticas).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Println("Servidor rodando em http://localhost:" + port)
	logger.Info("servidor iniciado", zap.String("porta", port))
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
