package middleware

import "github.com/gin-gonic/gin"

// publicKeyCtxKey is the key used to store the authenticated user's public
// key in the request context.
const publicKeyCtxKey = contextKey("publicKey")

// GetPublicKeyFromContext retrieves the authenticated user's public key from
// the Gin request context. It returns the key and a boolean indicating if it
// was found.
func GetPublicKeyFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(publicKeyCtxKey)
	if val == nil {
		return "", false
	}
	publicKey, ok := val.(string)
	if !ok || publicKey == "" {
		return "", false
	}
	return publicKey, true
}
