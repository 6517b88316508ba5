package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/xmlorders/internal/ports"
	"github.com/Gunvolt24/xmlorders/pkg/ctxmeta"
)

// quietPaths — служебные маршруты, которые не пишутся в лог.
var quietPaths = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
}

// RequestLogger — одна строка на запрос; уровень зависит от статуса ответа
// (5xx — ошибка, 4xx — предупреждение).
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, quiet := quietPaths[route]; quiet {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		rid, _ := ctxmeta.RequestIDFromContext(ctx)
		tr, _ := ctxmeta.TraceIDFromContext(ctx)

		logf := log.Infof
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status >= http.StatusBadRequest:
			logf = log.Warnf
		}

		logf(ctx, "http %s %s status=%d request_id=%s trace=%s ip=%s took=%s bytes=%d",
			c.Request.Method, route, c.Writer.Status(), rid, tr, c.ClientIP(), time.Since(start), c.Writer.Size())
	}
}
