package routes

import (
	"net/http"
	"time"

	"github.com/Hariokas/PersonRegistrationSystem/internal/app/controllers"
	"github.com/Hariokas/PersonRegistrationSystem/internal/app/middleware"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services/container"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// corsMiddleware 处理跨域请求
func corsMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		ctx.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		ctx.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}

// SetupRouter 组装全部路由和中间件
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), corsMiddleware())

	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	middleware.InitAuthMiddleware(cfg)

	api := router.Group("/api")

	// 公开接口，按IP限流，登录注册按IP+路径单独收紧
	public := api.Group("")
	public.Use(middleware.RateLimitByIP(20, 40))
	{
		public.GET("/ping", controllers.HandleHealthFunc(serviceContainer, "ping"))
		public.GET("/health", controllers.HandleHealthFunc(serviceContainer, "ping"))
		public.GET("/health/status", controllers.HandleHealthFunc(serviceContainer, "status"))

		auth := public.Group("/auth")
		auth.Use(middleware.RateLimitByIPAndPath(1, 5))
		{
			auth.POST("/register", controllers.HandleJWTFunc(serviceContainer, "register"))
			auth.POST("/login", controllers.HandleJWTFunc(serviceContainer, "login"))
		}
	}

	// 认证接口
	authed := api.Group("")
	authed.Use(middleware.Authentication(), middleware.RateLimitByIP(10, 20))
	{
		users := authed.Group("/users")
		{
			users.DELETE("", controllers.HandleUserFunc(serviceContainer, "deleteUser"))

			adminUsers := users.Group("")
			adminUsers.Use(middleware.RequireAdmin(), middleware.Cache(time.Minute))
			{
				adminUsers.GET("/:id", controllers.HandleUserFunc(serviceContainer, "getUser"))
				adminUsers.GET("/by-name/:name", controllers.HandleUserFunc(serviceContainer, "getUserByName"))
			}
		}

		persons := authed.Group("/persons")
		{
			persons.POST("", controllers.HandlePersonFunc(serviceContainer, "createPerson"))
			persons.GET("", controllers.HandlePersonFunc(serviceContainer, "listPersons"))
			persons.GET("/:id", controllers.HandlePersonFunc(serviceContainer, "getPerson"))
			persons.PUT("/:id", controllers.HandlePersonFunc(serviceContainer, "updatePerson"))
			persons.DELETE("/:id", controllers.HandlePersonFunc(serviceContainer, "deletePerson"))
			persons.GET("/:id/picture", controllers.HandlePersonFunc(serviceContainer, "getPicture"))
			persons.PUT("/:id/picture", controllers.HandlePersonFunc(serviceContainer, "updatePicture"))
			persons.DELETE("/:id/picture", controllers.HandlePersonFunc(serviceContainer, "deletePicture"))

			adminPersons := persons.Group("/admin")
			adminPersons.Use(middleware.RequireAdmin(), middleware.Cache(time.Minute))
			{
				adminPersons.GET("/:id", controllers.HandlePersonFunc(serviceContainer, "getPersonAsAdmin"))
			}
		}

		residences := authed.Group("/residences")
		{
			residences.POST("", controllers.HandleResidenceFunc(serviceContainer, "createResidence"))
			residences.GET("/:id", controllers.HandleResidenceFunc(serviceContainer, "getResidence"))
			residences.GET("/by-person/:personId", controllers.HandleResidenceFunc(serviceContainer, "getResidenceByPerson"))
			residences.PUT("/:id", controllers.HandleResidenceFunc(serviceContainer, "updateResidence"))
			residences.DELETE("/:id", controllers.HandleResidenceFunc(serviceContainer, "deleteResidence"))
		}
	}

	return router
}
