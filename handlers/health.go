package handlers

import (
	"net/http"

	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	MongoClient  *mongo.Client
	RedisClients []*redis.Client
}

// Root handles GET /.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Tattoo studio backend is running"})
}

// Health handles GET /health, answering 503 when a dependency does not respond.
func (h *HealthHandler) Health(c *gin.Context) {
	status := utils.CheckHealth(c.Request.Context(), h.MongoClient, h.RedisClients)
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
