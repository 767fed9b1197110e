package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"goestoque/config"
	_ "goestoque/docs" // Registro do OpenAPI gerado pelo swag
	"goestoque/internal/pkg/cache"
	"goestoque/internal/pkg/database"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"goestoque/internal/api/location"
	"goestoque/internal/api/product"
	"goestoque/internal/api/router"
	"goestoque/internal/api/stock"
	"goestoque/internal/api/user"
	"goestoque/internal/repository/locationrepo"
	"goestoque/internal/repository/productrepo"
	"goestoque/internal/repository/stockrepo"
	"goestoque/internal/repository/userrepo"
	"goestoque/internal/service/locationservice"
	"goestoque/internal/service/productservice"
	"goestoque/internal/service/stockservice"
	"goestoque/internal/service/userservice"
)

// @title GoEstoque API
// @version 1.0
// @description API de catálogo, locais e reconciliação de estoque com controle de concorrência otimista.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoEstoque...")

	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		// Se o arquivo .env não for encontrado, avisamos, mas continuamos,
		// pois as variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig() // Carrega as configurações (URLs, Timeouts, etc.)
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close() // Fecha a conexão de DB ao sair
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// C. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Repository -> Service -> Handler

	// A. Produtos
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, log)
	productSvc := productservice.NewService(productRepo, log)
	productHandler := product.NewHandler(productSvc, log)
	log.Debug("Camadas de Produto inicializadas.", nil)

	// B. Locais de Estoque
	locationRepo := locationrepo.NewLocationRepository(db, cfg.DBTimeout, log)
	locationSvc := locationservice.NewService(locationRepo, log)
	locationHandler := location.NewHandler(locationSvc, log)
	log.Debug("Camadas de Local inicializadas.", nil)

	// C. Estoque (ajustes unitários e em lote)
	stockRepo := stockrepo.NewStockRepository(db, cfg.DBTimeout, cfg.BatchChunkTimeout, log)
	stockSvc := stockservice.NewService(stockRepo, cfg.BatchChunkSize, cfg.BatchMaxItems, log)
	stockHandler := stock.NewHandler(stockSvc, log)
	log.Debug("Camadas de Estoque inicializadas.", nil)

	// D. Usuários
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	userHandler := user.NewHandler(userSvc, log)
	log.Debug("Camadas de Usuário inicializadas.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(
		productHandler,
		locationHandler,
		stockHandler,
		userHandler,
		tokenSvc,
		cacheClient,
		cfg.RateLimitMaxRequests,
		cfg.RateLimitPeriod,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r, // O roteador final
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoEstoque ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	// Timeout para desligamento (usa o contexto)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
