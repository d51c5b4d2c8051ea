package server

import (
	"github.com/gin-gonic/gin"

	"resume-check/internal/shared/server/respond"
)

func registerHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
}
