package middleware

import (
	"github.com/gin-gonic/gin"
)

// ClientIPHeaders are read in order, and only when the peer is a trusted proxy.
var ClientIPHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// TrustProxies configures how r resolves c.ClientIP. Forwarding headers are
// honoured only from peers inside proxies (IPs or CIDRs). X-Forwarded-For is
// walked right to left and the first hop outside proxies is the client.
// With no proxies the socket peer address is always used.
func TrustProxies(r *gin.Engine, proxies []string) error {
	r.ForwardedByClientIP = true
	r.RemoteIPHeaders = ClientIPHeaders
	// gin reads TrustedPlatform without checking the peer
	r.TrustedPlatform = ""
	if len(proxies) == 0 {
		return r.SetTrustedProxies(nil)
	}
	return r.SetTrustedProxies(proxies)
}

// RealIP stores the resolved caller address under "real_ip" for rate limit
// keys and audit fields.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
