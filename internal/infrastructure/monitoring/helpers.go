package monitoring

import "github.com/gin-gonic/gin"

// GinHandler serves the metrics endpoint from a Gin route
func (m *Metrics) GinHandler() gin.HandlerFunc {
	return gin.WrapH(m.Handler())
}
