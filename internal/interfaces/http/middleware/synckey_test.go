package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

func newSyncKeyRouter(key string) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	handlerCalls := 0

	r := gin.New()
	group := r.Group("/webhooks/peer", SyncKey(key, logger.NewLogger()))
	group.POST("/task-create", func(c *gin.Context) {
		handlerCalls++
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r, &handlerCalls
}

func TestSyncKey_AcceptsMatchingKey(t *testing.T) {
	r, calls := newSyncKeyRouter("secret")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/peer/task-create", nil)
	req.Header.Set("X-Sync-Key", "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestSyncKey_AcceptsLegacyHeader(t *testing.T) {
	r, calls := newSyncKeyRouter("secret")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/peer/task-create", nil)
	req.Header.Set("X-Api-Key", "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestSyncKey_RejectsWrongKeyBeforeHandler(t *testing.T) {
	r, calls := newSyncKeyRouter("secret")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/peer/task-create", nil)
	req.Header.Set("X-Sync-Key", "not-the-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, *calls, "a rejected delivery must not reach the handler")
}

func TestSyncKey_RejectsMissingKey(t *testing.T) {
	r, calls := newSyncKeyRouter("secret")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/peer/task-create", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, *calls)
}
