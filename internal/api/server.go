package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/dstepanov/warehouse-api/docs"
	v1 "github.com/dstepanov/warehouse-api/internal/api/handler/v1"
	"github.com/dstepanov/warehouse-api/internal/api/middleware"
	"github.com/dstepanov/warehouse-api/internal/config"
	"github.com/dstepanov/warehouse-api/internal/repository"
	"github.com/dstepanov/warehouse-api/internal/repository/dao"
	"github.com/dstepanov/warehouse-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userSvc := initUserService(db)
	warehouseSvc := initWarehouseService(db)

	feed := v1.NewStockFeed()
	go feed.Run()

	userHandler := v1.NewUserHandler(userSvc)
	warehouseHandler := v1.NewWarehouseHandler(warehouseSvc, userSvc, feed)
	s.MountHandlers(userHandler, warehouseHandler, feed, middleware.NewAuthenticator(userSvc))

	return s
}

func initUserService(db *gorm.DB) *service.UserService {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)

	return service.NewUserService(repo)
}

func initWarehouseService(db *gorm.DB) *service.WarehouseService {
	warehouseDAO := dao.NewWarehouseDAO(db)
	repo := repository.NewWarehouseRepository(warehouseDAO)

	return service.NewWarehouseService(repo)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(userHandler *v1.UserHandler, warehouseHandler *v1.WarehouseHandler, feed *v1.StockFeed, auth *middleware.Authenticator) {
	users := s.Router.Group("/users")
	{
		users.POST("/", userHandler.HandleCreateUser)
		users.GET("/", userHandler.HandleListUsers)
		users.GET("/me", auth.VerifyBasicAuth(), userHandler.HandleGetCurrentUser)
		users.GET("/:userID", userHandler.HandleGetUser)
	}

	warehouses := s.Router.Group("/warehouses")
	{
		warehouses.POST("/", auth.VerifyBasicAuth(), warehouseHandler.HandleCreateWarehouse)
		warehouses.GET("/", warehouseHandler.HandleListWarehouses)
		warehouses.GET("/watch", feed.HandleWatchWarehouses)
		warehouses.GET("/:warehouseID", warehouseHandler.HandleGetWarehouse)
		warehouses.PUT("/:warehouseID/buy/", auth.VerifyBasicAuth(), warehouseHandler.HandleBuyWarehouse)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Title = "Warehouse Marketplace API"
	docs.SwaggerInfo.Description = "Sellers list warehouse stock, customers buy it."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
