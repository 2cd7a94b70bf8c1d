package handlers

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const unknownClient = "unknown"

// ClientKey identifies the caller for the contact rate limit: the first
// X-Forwarded-For hop, else the connection's host, else "unknown".
func ClientKey(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	addr := strings.TrimSpace(c.Request.RemoteAddr)
	if addr == "" {
		return unknownClient
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		if host == "" {
			return unknownClient
		}
		return host
	}
	return addr
}
