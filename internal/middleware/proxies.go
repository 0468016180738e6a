package middleware

import "github.com/gin-gonic/gin"

// TrustProxies define de quem o X-Forwarded-For é aceito. Lista vazia:
// ninguém, e ClientIP passa a ser o endereço da conexão (base do rate limit).
func TrustProxies(r *gin.Engine, proxies []string) error {
	if len(proxies) == 0 {
		return r.SetTrustedProxies(nil)
	}
	return r.SetTrustedProxies(proxies)
}
