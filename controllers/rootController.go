package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler handles requests to the root path.
func rootHandler(c *gin.Context) {
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write([]byte("MediCitas scheduling API")); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// SetupRootRoute sets up the root route for the application.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
}
