package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/diary-stats-service/internal/service"
)

// APIV1Prefix is the canonical base path for public HTTP API v1.
const APIV1Prefix = "/api/v1"

// DefaultServiceTimeout bounds a single service call when no timeout is configured.
const DefaultServiceTimeout = 5 * time.Second

// base carries what every resource handler shares.
type base struct {
	timeout time.Duration
}

func newBase(timeout time.Duration) base {
	if timeout <= 0 {
		timeout = DefaultServiceTimeout
	}
	return base{timeout: timeout}
}

func (b base) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), b.timeout)
}

// queryMillis parses a required epoch-millis query parameter.
func queryMillis(c *gin.Context, name string, ferrs *[]service.FieldError) int64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		*ferrs = append(*ferrs, service.FieldError{Field: name, Message: "is required"})
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		*ferrs = append(*ferrs, service.FieldError{Field: name, Message: "must be epoch milliseconds"})
		return 0
	}
	return v
}

// window reads the from/to pair shared by the aggregation endpoints.
func window(c *gin.Context) (from, to int64, err error) {
	var ferrs []service.FieldError
	from = queryMillis(c, "from", &ferrs)
	to = queryMillis(c, "to", &ferrs)
	return from, to, service.NewInvalidInputError(ferrs)
}

func bodyError(err error) error {
	return service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "malformed JSON: " + err.Error()}})
}
