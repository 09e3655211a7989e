package httpapi

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/internal/service"
)

// StaticDirs points at the on-disk assets the server exposes: product
// images under /public and the login page under /login.
type StaticDirs struct {
	Public string
	Login  string
}

// Services bundles everything the HTTP layer dispatches to.
type Services struct {
	Catalog *service.CatalogService
	Cart    *service.CartService
	Orders  *service.OrderService
	Auth    *service.AuthService
	Items   *service.ItemService
	Voting  *service.VotingService
}

type Server struct {
	engine  *gin.Engine
	catalog *service.CatalogService
	cart    *service.CartService
	orders  *service.OrderService
	auth    *service.AuthService
	items   *service.ItemService
	voting  *service.VotingService
}

func NewServer(svcs Services, static StaticDirs) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), corsAllowAll())
	s := &Server{
		engine:  r,
		catalog: svcs.Catalog,
		cart:    svcs.Cart,
		orders:  svcs.Orders,
		auth:    svcs.Auth,
		items:   svcs.Items,
		voting:  svcs.Voting,
	}
	s.registerRoutes(static)
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes(static StaticDirs) {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Static assets
	s.engine.Static("/public", static.Public)
	s.engine.Static("/login", static.Login)

	s.engine.GET("/", s.welcome)

	api := s.engine.Group("/api")
	{
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
		api.GET("/categories", s.listCategories)

		api.POST("/cart", s.addToCart)
		api.GET("/cart/:userId", s.getCart)
		api.DELETE("/cart/:userId/:productId", s.removeFromCart)

		api.POST("/orders", s.placeOrder)
		api.GET("/orders/:userId", s.listOrders)

		api.POST("/register", s.register)
		api.POST("/login", s.login)
		api.GET("/registered-users", s.registeredUsers)

		api.GET("/items", s.listItems)
		api.GET("/items/:id", s.getItem)
		api.POST("/items", s.createItem)
		api.PUT("/items/:id", s.updateItem)
		api.DELETE("/items/:id", s.deleteItem)

		api.GET("/users", s.listVoters)
		api.POST("/users", s.createVoter)
		api.GET("/users/:id/can-vote", s.voterCanVote)
		api.POST("/check-vote-eligibility", s.checkEligibility)
		api.GET("/check-vote-eligibility/:age", s.checkEligibilityByAge)
	}
}
