package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/portfolio-api/internal/container"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

// limit builds a Redis-backed limiter from the container's client; without
// Redis it is a pass-through.
func limit(max int, window time.Duration, key middleware.KeyFunc) gin.HandlerFunc {
	return limitUnless(max, window, key, nil)
}

func limitUnless(max int, window time.Duration, key middleware.KeyFunc, allow middleware.AllowFunc) gin.HandlerFunc {
	var rdb redis.Cmdable
	if c := container.GetRedis(); c != nil {
		rdb = c
	}
	return middleware.RateLimit(rdb, max, window, key, allow)
}
