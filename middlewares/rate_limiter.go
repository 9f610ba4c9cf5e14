package middlewares

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	redisclient "github.com/carkumbh/backend/config/redis"
)

// ParseCustomRate allows formats like "10-2m", "30-20m", "5-1h", "20-10s".
// The stock limiter format only supports single-unit periods.
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	if len(durationStr) < 2 {
		return limiter.Rate{}, fmt.Errorf("invalid duration: %s", durationStr)
	}
	unit := durationStr[len(durationStr)-1:]
	count, err := strconv.Atoi(durationStr[:len(durationStr)-1])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid duration: %s", durationStr)
	}

	var period time.Duration
	switch unit {
	case "s":
		period = time.Duration(count) * time.Second
	case "m":
		period = time.Duration(count) * time.Minute
	case "h":
		period = time.Duration(count) * time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	return limiter.Rate{
		Period: period,
		Limit:  int64(limit),
	}, nil
}

// NewRateLimiter builds a per-client-IP limiter for one route. When Redis is
// not configured the middleware degrades to a pass-through so the service
// keeps working without the edge protection.
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		log.Printf("Error parsing rate for route %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	rdb, err := redisclient.GetRedisClient(context.Background())
	if err != nil {
		log.Printf("Rate limiter disabled for route %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: rate.Period,
	})
	if err != nil {
		log.Printf("Error creating Redis store for route %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	instance := limiter.New(store, rate)
	return ginmiddleware.NewMiddleware(instance, ginmiddleware.WithKeyGetter(func(c *gin.Context) string {
		return c.ClientIP()
	}))
}
