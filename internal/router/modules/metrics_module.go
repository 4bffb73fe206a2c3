package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Jaaccob/SagaApp/internal/container"
	"github.com/Jaaccob/SagaApp/internal/interface/middleware"
)

type MetricsModule struct{}

func NewMetricsModule() *MetricsModule { return &MetricsModule{} }

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	// Prometheus scrape endpoint, rate-limited per IP; scrapers on private networks bypass
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/metrics", rl, gin.WrapH(promhttp.Handler()))
}
