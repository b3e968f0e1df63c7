package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gift-service/internal/service"
	"gift-service/internal/transport/http/handler"
	mdw "gift-service/internal/transport/http/middleware"
)

type Deps struct {
	Log  *zap.Logger
	CORS []string

	Auth *service.AuthService

	AuthH     *handler.AuthHandler
	UserH     *handler.UserHandler
	WishH     *handler.WishHandler
	OfferH    *handler.OfferHandler
	WishlistH *handler.WishlistHandler
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	// 中间件
	corsCfg := cors.DefaultConfig()
	if len(d.CORS) > 0 {
		corsCfg.AllowOrigins = d.CORS
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.New(corsCfg),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 注册 / 登录（公共）
	r.POST("/signup", d.AuthH.Signup)
	r.POST("/signin", d.AuthH.Signin)

	api := r.Group("/api/v1")

	// 最新 / 热门榜不需要登录
	api.GET("/wishes/last", d.WishH.Last)
	api.GET("/wishes/top", d.WishH.Top)

	// 鉴权分组
	auth := api.Group("")
	auth.Use(mdw.AuthJWT(d.Auth))

	users := auth.Group("/users")
	{
		users.GET("/me", d.UserH.Me)
		users.PATCH("/me", d.UserH.UpdateMe)
		users.GET("/me/wishes", d.UserH.MyWishes)
		users.POST("/find", d.UserH.Find)
		users.GET("/:username", d.UserH.ByUsername)
		users.GET("/:username/wishes", d.UserH.WishesByUsername)
	}

	wishes := auth.Group("/wishes")
	{
		wishes.POST("", d.WishH.Create)
		wishes.GET("/search", d.WishH.Search)
		wishes.GET("/:id", d.WishH.Get)
		wishes.PATCH("/:id", d.WishH.Update)
		wishes.DELETE("/:id", d.WishH.Delete)
		wishes.POST("/:id/copy", d.WishH.Copy)
	}

	offers := auth.Group("/offers")
	{
		offers.POST("", d.OfferH.Create)
		offers.GET("", d.OfferH.List)
		offers.GET("/:id", d.OfferH.Get)
	}

	wishlists := auth.Group("/wishlists")
	{
		wishlists.POST("", d.WishlistH.Create)
		wishlists.GET("", d.WishlistH.List)
		wishlists.GET("/search", d.WishlistH.Search)
		wishlists.GET("/:id", d.WishlistH.Get)
		wishlists.PATCH("/:id", d.WishlistH.Update)
		wishlists.DELETE("/:id", d.WishlistH.Delete)
	}

	return r
}
