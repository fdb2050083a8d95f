package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/session"
	accountsvc "storefront/internal/service/account"
	ordersvc "storefront/internal/service/order"
	wishlistsvc "storefront/internal/service/wishlist"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type CartService interface {
	Add(ctx context.Context, cart domain.Cart, productID int64, qty int) (*domain.Product, error)
	Update(cart domain.Cart, productID int64, qty int)
	Remove(cart domain.Cart, productID int64) bool
	Details(ctx context.Context, cart domain.Cart) (domain.CartDetails, error)
	Share(cart domain.Cart) (string, error)
	Load(token string) (domain.Cart, error)
}

type WishlistService interface {
	Add(ctx context.Context, userID, productID int64) (*domain.Product, bool, error)
	Remove(ctx context.Context, userID, productID int64) (*domain.Product, bool, error)
	List(ctx context.Context, userID int64) ([]domain.Product, error)
	ProductIDs(ctx context.Context, userID int64) ([]int64, error)
	Contains(ctx context.Context, userID, productID int64) (bool, error)
	Clear(ctx context.Context, userID int64) (int64, error)
	Share(ctx context.Context, userID int64, userName string) (*domain.SharedWishlist, error)
	ViewShared(ctx context.Context, token string) (*wishlistsvc.SharedView, error)
	MoveToCart(ctx context.Context, userID int64, cart domain.Cart, productID int64, alsoRemove bool) (*domain.Product, error)
}

type OrderService interface {
	Checkout(ctx context.Context, cart domain.Cart, in ordersvc.CheckoutInput) (*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type CharityService interface {
	ListActive(ctx context.Context) ([]domain.Charity, error)
}

type AccountService interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
}

// Deps groups the services and settings the router needs.
type Deps struct {
	Sessions  *session.Store
	Catalog   CatalogService
	Cart      CartService
	Wishlist  WishlistService
	Orders    OrderService
	Charities CharityService
	Accounts  AccountService
	OrderFeed *OrderFeed

	// PublicBaseURL prefixes share links. Empty means derive it from the request.
	PublicBaseURL string
	AllowOrigins  []string
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

// buildRouter wires routes for the storefront.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if deps.Catalog == nil || deps.Cart == nil || deps.Wishlist == nil || deps.Orders == nil || deps.Charities == nil || deps.Accounts == nil {
		return nil, errors.New("all services are required")
	}
	h := &handlers{deps: deps, logger: logger}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.Use(cors.New(corsConfig(deps.AllowOrigins)))
	api.GET("/products", h.apiProducts)
	api.GET("/products.xlsx", h.apiProductsXLSX)

	site := router.Group("/")
	site.Use(h.loadSession)

	site.GET("/", h.index)
	site.GET("/products", h.index)
	site.GET("/product/:pid", h.productDetail)
	site.GET("/wishlist/shared/:token", h.viewSharedWishlist)

	site.GET("/signup", h.signupPage)
	site.POST("/signup", h.signup)
	site.GET("/login", h.loginPage)
	site.POST("/login", h.login)
	site.GET("/login_signup", h.loginSignup)
	site.POST("/login_signup", h.loginSignup)
	site.GET("/logout", h.logout)

	member := site.Group("/")
	member.Use(h.requireLogin)

	member.GET("/cart", h.cartView)
	member.POST("/cart/add/:pid", h.cartAdd)
	member.POST("/cart/remove/:pid", h.cartRemove)
	member.POST("/cart/update/:pid", h.cartUpdate)
	member.GET("/cart/share", h.cartShare)
	member.GET("/cart/share/:token", h.cartLoadShared)

	member.GET("/checkout", h.checkoutPage)
	member.POST("/checkout", h.checkout)
	member.GET("/orders/:id", h.orderDetail)
	member.GET("/account/orders", h.accountOrders)

	member.GET("/wishlist", h.wishlistView)
	member.POST("/wishlist/add/:pid", h.wishlistAdd)
	member.POST("/wishlist/remove/:pid", h.wishlistRemove)
	member.GET("/wishlist/share", h.wishlistShare)
	member.POST("/wishlist/add_to_cart/:pid", h.wishlistMoveToCart)
	member.POST("/wishlist/clear", h.wishlistClear)

	admin := member.Group("/admin")
	admin.Use(h.requireAdmin)
	admin.GET("/orders/feed", h.orderFeed)
	admin.POST("/products/:pid/delete", h.adminDeleteProduct)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
