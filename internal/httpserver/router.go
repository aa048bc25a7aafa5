package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := &AuthMiddleware{JWTSecret: d.JWTSecret}

	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", d.AuthHandler.Register)
	v1.POST("/auth/login", d.AuthHandler.Login)
	v1.POST("/auth/refresh", d.AuthHandler.Refresh)
	v1.POST("/auth/logout", d.AuthHandler.LogOut)

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	admin := v1.Group("/admin", authMW.RequireAdmin)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	cart := v1.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddDelta)
	cart.PUT("/:itemID", d.CartHandler.SetQuantity)
	cart.DELETE("/:itemID", d.CartHandler.Remove)
}
