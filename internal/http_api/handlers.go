package http_api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cryptoherald/pkg/validation"
)

// PreviewRequest represents the JSON body for a notification preview
type PreviewRequest struct {
	Symbol    string `json:"symbol" binding:"required"`
	Hour      int    `json:"hour" binding:"min=0,max=23"`
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"` // 0 = Monday
}

// PreviewResponse represents the rendered preview
type PreviewResponse struct {
	Symbol    string `json:"symbol"`
	WouldSend bool   `json:"would_send"`
	Message   string `json:"message,omitempty"`
}

// health is a handler for the /health endpoint.
func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"symbols": s.herald.TrackedSymbols(),
	})
}

// config is a handler for the /config endpoint.
// It exposes the loaded notification settings snapshot.
func (s *HTTPServer) config(c *gin.Context) {
	settings := s.herald.NotificationSettings()
	if settings == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "settings not loaded"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// preview is a handler for the /preview endpoint.
// It renders the notification a symbol would receive at the given hour
// without sending anything.
func (s *HTTPServer) preview(c *gin.Context) {
	var req PreviewRequest

	// Parse and validate JSON request body
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	symbol, err := validation.ValidateAndNormalizeSymbol(req.Symbol)
	if err != nil {
		s.logger.Debug("Invalid symbol", "error", err, "symbol", req.Symbol)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid symbol: " + err.Error(),
		})
		return
	}

	message, wouldSend, err := s.herald.PreviewNotification(symbol, req.Hour, req.DayOfWeek)
	if err != nil {
		s.logger.Error("Failed to render preview", "error", err, "symbol", symbol)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render preview",
		})
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Symbol:    symbol,
		WouldSend: wouldSend,
		Message:   message,
	})
}

// history is a handler for the /history endpoint.
// It lists recently sent notifications, optionally filtered by symbol.
func (s *HTTPServer) history(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol != "" {
		normalized, err := validation.ValidateAndNormalizeSymbol(symbol)
		if err != nil {
			s.logger.Debug("Invalid symbol", "error", err, "symbol", symbol)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid symbol: " + err.Error()})
			return
		}
		symbol = normalized
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 || parsed > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
			return
		}
		limit = parsed
	}

	records, err := s.herald.NotificationHistory(symbol, limit)
	if err != nil {
		s.logger.Error("Failed to list notification history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": records})
}
