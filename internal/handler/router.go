package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the API routes.
func NewRouter(logger zerolog.Logger, verifyHandler *VerifyHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/health", Health)
	r.GET("/verify", verifyHandler.VerifyAddress)
	r.POST("/locations/:id/verify", verifyHandler.VerifyLocation)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
