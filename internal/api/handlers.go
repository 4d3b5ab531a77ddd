package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index answers the root path with a plain banner
func Index(c *gin.Context) {
	c.String(http.StatusOK, "fridge-chef backend is running")
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, recipeHandler *RecipeHandler) {
	router.GET("/", Index)
	router.GET("/health", HealthCheck)

	recipeHandler.RegisterRoutes(&router.RouterGroup)
}
