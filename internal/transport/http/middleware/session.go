package middleware

import (
	"github.com/gin-gonic/gin"

	"vmap-rag/internal/session"
)

const (
	// TokenHeader carries the signed session token in both directions.
	TokenHeader = "X-Session-Token"

	ContextSessionKey   = "rag_session"
	ContextSessionIDKey = "rag_session_id"
)

// Session resolves the caller's RAG session from the signed token header,
// creating a fresh session (and echoing its token back) when the header is
// absent, invalid, or points at an evicted session.
func Session(store *session.Store, signer *session.TokenSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(TokenHeader); raw != "" {
			if id, err := signer.Parse(raw); err == nil {
				if sess, ok := store.Lookup(id); ok {
					c.Set(ContextSessionIDKey, id)
					c.Set(ContextSessionKey, sess)
					c.Next()
					return
				}
			}
		}

		id, sess := store.Create()
		token, err := signer.Sign(id)
		if err != nil {
			c.AbortWithStatusJSON(500, gin.H{
				"success": false,
				"error":   "failed to issue session token",
			})
			return
		}
		c.Header(TokenHeader, token)
		c.Set(ContextSessionIDKey, id)
		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}
