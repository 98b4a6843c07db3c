package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/AcquisicaoHub/api-livedash/internal/auth"
	"github.com/AcquisicaoHub/api-livedash/internal/ciclopagamento"
	"github.com/AcquisicaoHub/api-livedash/internal/financeiro"
	"github.com/AcquisicaoHub/api-livedash/internal/influenciador"
	"github.com/AcquisicaoHub/api-livedash/internal/live"
	"github.com/AcquisicaoHub/api-livedash/internal/pagamento"
	"github.com/AcquisicaoHub/api-livedash/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do ambiente")
	}

	database, err := db.ConnectDataBase()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := influenciador.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := live.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := ciclopagamento.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := pagamento.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Handlers
	influenciadorHandler := influenciador.NewHandler(database)
	liveHandler := live.NewHandler(live.NewRepository(database))
	cicloRepo := ciclopagamento.NewRepository(database)
	cicloHandler := ciclopagamento.NewHandler(cicloRepo, ciclopagamento.NewEngine(database))
	pagamentoHandler := pagamento.NewHandler(pagamento.NewRepository(database))
	financeiroHandler := financeiro.NewHandler(financeiro.NewServico(database))

	// Router
	r := mux.NewRouter()

	// Rota pública
	r.HandleFunc("/login", influenciadorHandler.Login).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/me", influenciadorHandler.Me).Methods("GET")
	api.HandleFunc("/influenciadores", influenciadorHandler.Listar).Methods("GET")
	api.HandleFunc("/influenciadores/{id}", influenciadorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/influenciadores/{id}", influenciadorHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/influenciadores/{id}/senha", influenciadorHandler.AlterarSenha).Methods("PATCH")

	api.HandleFunc("/lives", liveHandler.Listar).Methods("GET")
	api.HandleFunc("/lives/{id}", liveHandler.BuscarPorID).Methods("GET")

	api.HandleFunc("/ciclos", cicloHandler.Listar).Methods("GET")
	api.HandleFunc("/ciclos/{id}", cicloHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/ciclos/{id}/pagamentos", pagamentoHandler.ListarPorCiclo).Methods("GET")

	api.HandleFunc("/financeiro/consolidado", financeiroHandler.Consolidado).Methods("GET")
	api.HandleFunc("/financeiro/influenciadores/{id}/historico", financeiroHandler.Historico).Methods("GET")

	// Rotas administrativas
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)

	admin.HandleFunc("/influenciadores", influenciadorHandler.Criar).Methods("POST")
	admin.HandleFunc("/influenciadores/{id}", influenciadorHandler.Deletar).Methods("DELETE")

	admin.HandleFunc("/lives", liveHandler.Criar).Methods("POST")
	admin.HandleFunc("/lives/{id}", liveHandler.Atualizar).Methods("PUT")
	admin.HandleFunc("/lives/{id}", liveHandler.Deletar).Methods("DELETE")
	admin.HandleFunc("/lives/{id}/status", liveHandler.AtualizarStatus).Methods("PATCH")
	admin.HandleFunc("/lives/{id}/resultado", liveHandler.SalvarResultado).Methods("PUT")

	admin.HandleFunc("/ciclos", cicloHandler.Criar).Methods("POST")
	admin.HandleFunc("/ciclos/{id}/fechar", cicloHandler.Fechar).Methods("POST")
	admin.HandleFunc("/pagamentos/{id}/aprovar", pagamentoHandler.Aprovar).Methods("PATCH")
	admin.HandleFunc("/pagamentos/{id}/pagar", pagamentoHandler.MarcarPago).Methods("PATCH")

	// CORS para o frontend do painel
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("FRONTEND_ORIGIN")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	// Inicia servidor
	fmt.Printf("Servidor rodando em http://localhost:%s\n", porta)
	log.Fatal(http.ListenAndServe(":"+porta, c.Handler(r)))
}
