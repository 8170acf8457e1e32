package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fullstack/libreria-system/internal/api/handler"
	"github.com/fullstack/libreria-system/internal/core/domain"
	"github.com/fullstack/libreria-system/internal/core/ports"
	"github.com/fullstack/libreria-system/internal/core/service"
	mongodb "github.com/fullstack/libreria-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fullstack/libreria-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the catalog cache then degrades to a passthrough.
func NewRouter(db *mongo.Database, rdb *goredis.Client, hasher ports.CredentialHasher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("libreria"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	accountService := service.NewAccountService(accountRepo, hasher, log)
	accountHandler := handler.NewAccountHandler(accountService)

	var bookRepo ports.CrudRepository[domain.Book] = mongodb.NewBookRepository(db)
	bookRepo = redisdb.NewCachingBookRepository(bookRepo, rdb, log)
	bookService := service.NewCatalogService(bookRepo, "book", log)
	bookHandler := handler.NewBookHandler(bookService)

	// --- Account routes ---
	users := e.Group("/api/users")
	users.GET("", accountHandler.List)
	users.POST("", accountHandler.Create)
	users.GET("/id/:id", accountHandler.GetByID)
	users.PUT("/id/:id", accountHandler.Update)
	users.DELETE("/id/:id", accountHandler.Delete)
	users.GET("/email/:email", accountHandler.GetByEmail)
	users.GET("/role/:role", accountHandler.ListByRole)
	users.POST("/register", accountHandler.Register)
	users.POST("/login", accountHandler.Login)
	users.GET("/recover/:email", accountHandler.Recover)
	users.PUT("/profile/:id", accountHandler.UpdateProfile)

	// --- Book routes ---
	books := e.Group("/api/books")
	books.GET("", bookHandler.List)
	books.POST("", bookHandler.Create)
	books.GET("/:id", bookHandler.Get)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
