package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"household-expenses/internal/config"
	"household-expenses/internal/controllers"
)

// Store is everything the HTTP surface needs from persistence.
type Store interface {
	controllers.PersonStore
	controllers.CategoryStore
	controllers.TransactionStore
	controllers.TotalsStore
	Ping(ctx context.Context) error
}

func Register(store Store, cfg config.Config, logger *slog.Logger) *gin.Engine {
	pc := controllers.PersonController{Store: store}
	cat := controllers.CategoryController{Store: store}
	txc := controllers.TransactionController{Store: store}
	rep := controllers.ReportsController{Store: store}

	r := gin.New()
	r.Use(requestLogger(logger))
	r.Use(gin.CustomRecovery(recoverPanic))
	r.Use(securityHeaders())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "not ready")
			return
		}
		c.String(http.StatusOK, "ready")
	})

	// The browser client talks to /api; everything is also served at the root.
	for _, api := range []*gin.RouterGroup{r.Group("/"), r.Group("/api")} {
		api.POST("/pessoas", func(c *gin.Context) { pc.CreateOrList(c.Writer, c.Request) })
		api.GET("/pessoas", func(c *gin.Context) { pc.CreateOrList(c.Writer, c.Request) })
		api.GET("/pessoas/totais", func(c *gin.Context) { rep.GetTotals(c.Writer, c.Request) })
		api.GET("/totais", func(c *gin.Context) { rep.GetTotals(c.Writer, c.Request) })
		api.GET("/pessoas/:id", func(c *gin.Context) {
			c.Request.URL.Path = "/pessoas/" + c.Param("id")
			pc.GetByID(c.Writer, c.Request)
		})
		api.DELETE("/pessoas/:id", func(c *gin.Context) {
			c.Request.URL.Path = "/pessoas/" + c.Param("id")
			pc.Delete(c.Writer, c.Request)
		})

		api.POST("/categorias", func(c *gin.Context) { cat.CreateOrList(c.Writer, c.Request) })
		api.GET("/categorias", func(c *gin.Context) { cat.CreateOrList(c.Writer, c.Request) })
		api.GET("/categorias/:id", func(c *gin.Context) {
			c.Request.URL.Path = "/categorias/" + c.Param("id")
			cat.GetByID(c.Writer, c.Request)
		})
		api.DELETE("/categorias/:id", func(c *gin.Context) {
			c.Request.URL.Path = "/categorias/" + c.Param("id")
			cat.Delete(c.Writer, c.Request)
		})

		api.POST("/transacoes", func(c *gin.Context) { txc.CreateOrList(c.Writer, c.Request) })
		api.GET("/transacoes", func(c *gin.Context) { txc.CreateOrList(c.Writer, c.Request) })
		api.GET("/transacoes/:id", func(c *gin.Context) {
			c.Request.URL.Path = "/transacoes/" + c.Param("id")
			txc.GetByID(c.Writer, c.Request)
		})
		api.DELETE("/transacoes/:id", func(c *gin.Context) {
			c.Request.URL.Path = "/transacoes/" + c.Param("id")
			txc.Delete(c.Writer, c.Request)
		})
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"mensagem": "Recurso não encontrado"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", headerRequestID},
		ExposeHeaders: []string{"Content-Length", headerRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
