// Package handlers wires the HTTP surfaces: the peer webhook endpoints the
// other platform's dispatcher calls, the browser-facing REST routes, and the
// realtime websocket gateway.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
)

// webhookError writes the flat error shape the peer dispatcher expects.
// Webhook endpoints do not use the enveloped APIResponse: the peer protocol
// predates it and both sides bind the flat form.
func webhookError(c *gin.Context, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, gin.H{"success": false, "error": appErr.Message})
		return
	}
	// Service-to-service surface: the peer's operators read these bodies, so
	// the underlying message is included rather than masked.
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}

func webhookBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body: " + err.Error()})
}
