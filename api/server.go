package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	defaultReadTimeout = 10 * time.Second
	// batches answer only after the last asset, so writes get a long budget
	defaultWriteTimeout = 10 * time.Minute
	defaultIdleTimeout  = 60 * time.Second
)

func NewServer(router *gin.Engine, port int) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", port),
		Handler:      router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithField("method", c.Request.Method).
			WithField("path", c.FullPath()).
			WithField("status", c.Writer.Status()).
			WithField("duration", time.Since(start)).
			Debug("handled request")
	}
}
