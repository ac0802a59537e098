package httpserver

import (
	"context"
	"errors"
	"time"

	"dutyfree-pos/internal/checkout"
	"dutyfree-pos/internal/domain"
	"dutyfree-pos/internal/service/terminal"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type SessionService interface {
	Login(ctx context.Context, username, password string) (domain.User, error)
	Logout(ctx context.Context)
	User() (domain.User, bool)
}

type CatalogService interface {
	Search(q string) []domain.Product
	LoadedAt() time.Time
}

type TerminalService interface {
	Add(productID string) (domain.CartLine, error)
	UpdateQuantity(productID string, delta int) error
	Remove(productID string) error
	Clear() error
	SetCurrency(c domain.Currency) error
	RefreshCatalog(ctx context.Context) (int, error)
	Snapshot() terminal.Snapshot
	Checkout(ctx context.Context, method domain.PaymentMethod) (*checkout.Attempt, error)
}

// Deps carries the services behind the routes. DB is nil when the journal
// is disabled.
type Deps struct {
	Session  SessionService
	Catalog  CatalogService
	Terminal TerminalService
	DB       Pinger
}

func (d Deps) validate() error {
	if d.Session == nil || d.Catalog == nil || d.Terminal == nil {
		return errors.New("httpserver: session, catalog and terminal services are required")
	}
	return nil
}

// buildRouter wires routes for the terminal.
func buildRouter(logger zerolog.Logger, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger), gin.Recovery())

	if len(corsOrigins) > 0 {
		corsCfg := cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		if err := corsCfg.Validate(); err != nil {
			return nil, err
		}
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB, deps.Catalog))

	h := &handlers{deps: deps, logger: logger.With().Str("component", "http").Logger()}

	router.POST("/session/login", h.login)
	router.GET("/session", h.currentUser)
	router.POST("/session/logout", h.logout)

	pos := router.Group("/", requirePOSUser(deps.Session))
	pos.GET("/catalog", h.listCatalog)
	pos.POST("/catalog/refresh", h.refreshCatalog)
	pos.GET("/cart", h.getCart)
	pos.POST("/cart/items", h.addItem)
	pos.PATCH("/cart/items/:productId", h.updateItem)
	pos.DELETE("/cart/items/:productId", h.removeItem)
	pos.DELETE("/cart", h.clearCart)
	pos.PUT("/cart/currency", h.setCurrency)
	pos.POST("/checkout", h.checkout)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger zerolog.Logger
}
