package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig lists origins allowed to read responses. An empty list or "*"
// allows any origin.
type CORSConfig struct {
	AllowedOrigins []string
}

func (cfg CORSConfig) allowAny() bool {
	if len(cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// CORS writes the cross-origin headers for a route serving methods. The
// headers go on every response, including errors. Preflight requests end
// here with 200 and an empty body.
func CORS(cfg CORSConfig, methods ...string) gin.HandlerFunc {
	allowMethods := strings.Join(methods, ", ")
	anyOrigin := cfg.allowAny()
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Credentials", "true")
		if anyOrigin {
			h.Set("Access-Control-Allow-Origin", "*")
		} else if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
