package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loopdesk/loopdesk/internal/shared/logger"
	"github.com/loopdesk/loopdesk/internal/shared/utils"
)

const (
	syncKeyHeader       = "X-Sync-Key"
	legacySyncKeyHeader = "X-Api-Key"
)

// SyncKey guards the peer webhook surface with a shared secret. The key is
// read from X-Sync-Key, or X-Api-Key for peers that predate the rename. A
// rejected delivery must leave no trace, so the chain is aborted before any
// handler runs.
func SyncKey(key string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(syncKeyHeader)
		if presented == "" {
			presented = c.GetHeader(legacySyncKeyHeader)
		}

		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			log.Warnw("webhook delivery rejected, bad sync key",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
			)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid sync key")
			c.Abort()
			return
		}

		c.Next()
	}
}
