package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Treasury Backend API v1"})
}

// registerHomeRoutes registers the public root route.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", getHome)
}
