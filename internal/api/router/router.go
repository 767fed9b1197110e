package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"goestoque/internal/api/location"
	"goestoque/internal/api/product"
	"goestoque/internal/api/stock"
	"goestoque/internal/api/user"
	"goestoque/internal/domain"
	"goestoque/internal/pkg/cache"
	"goestoque/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	productHandler *product.Handler,
	locationHandler *location.Handler,
	stockHandler *stock.Handler,
	userHandler *user.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	rateLimitMax int,
	rateLimitPeriod time.Duration,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	// Em projetos maiores, pode-se usar um mux de terceiros (e.g., gorilla/mux, chi)
	mux := http.NewServeMux()

	// Middlewares de autenticação (AuthN) e autorização (AuthZ)
	auth := middleware.NewAuthMiddleware(tokenSvc)
	adminOnly := middleware.PermissionMiddleware(domain.RoleAdmin)
	stockWriters := middleware.PermissionMiddleware(domain.RoleOperator, domain.RoleAdmin)

	// --- 1. Health Check ---
	mux.HandleFunc("/ping", PingHandler)

	// --- 2. Usuários (rotas públicas) ---
	mux.HandleFunc("/v1/users/register", userHandler.RegisterUserHandler)
	mux.HandleFunc("/v1/users/login", userHandler.LoginUserHandler)

	// --- 3. Produtos ---
	// Leitura é pública; escrita exige admin.
	mux.HandleFunc("/v1/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			productHandler.ListProductsHandler(w, r)
		case http.MethodPost:
			auth(adminOnly(productHandler.CreateProductHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/v1/products/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			productHandler.GetProductByIDHandler(w, r)
		case http.MethodPut:
			auth(adminOnly(productHandler.UpdateProductHandler))(w, r)
		case http.MethodDelete:
			auth(adminOnly(productHandler.DeleteProductHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	// --- 4. Locais de Estoque ---
	mux.HandleFunc("/v1/locations", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			locationHandler.GetAllLocationsHandler(w, r)
		case http.MethodPost:
			auth(adminOnly(locationHandler.CreateLocationHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/v1/locations/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			locationHandler.GetLocationByIDHandler(w, r)
		case http.MethodPut:
			auth(adminOnly(locationHandler.UpdateLocationHandler))(w, r)
		case http.MethodDelete:
			auth(adminOnly(locationHandler.DeleteLocationHandler))(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	// --- 5. Estoque ---
	// Consultas são públicas; movimentações exigem operator ou admin.
	mux.HandleFunc("/v1/stock", stockHandler.GetStockLevelHandler)
	mux.HandleFunc("/v1/stock/history", stockHandler.StockHistoryHandler)
	mux.HandleFunc("/v1/stock/update", auth(stockWriters(stockHandler.AdjustStockHandler)))
	mux.HandleFunc("/v1/stock/batch", auth(stockWriters(stockHandler.AdjustStockBatchHandler)))

	// --- 6. Documentação (Swagger) ---
	mux.Handle("/swagger/", httpSwagger.Handler())

	// --- 7. Middlewares Globais ---
	// O rate limiter envolve todo o mux (contador por IP no Redis).
	return middleware.RateLimiter(cacheClient, rateLimitMax, rateLimitPeriod)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
