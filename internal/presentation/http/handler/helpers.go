package handler

import (
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetTerminalID extracts the terminal ID from the Gin context. Every cart
// operation is keyed by it.
func GetTerminalID(c *gin.Context) string {
	terminalID, exists := c.Get("terminal_id")
	if !exists {
		return ""
	}
	id, _ := terminalID.(string)
	return id
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	r, _ := role.(string)
	return r
}

// parseDiscountType maps the wire strings to the enum; defaults to percent.
func parseDiscountType(s *string) *enum.DiscountType {
	if s == nil {
		return nil
	}
	t := enum.DiscountTypePercent
	if *s == "amount" {
		t = enum.DiscountTypeAmount
	}
	return &t
}

// parseDate parses a YYYY-MM-DD query parameter; nil when absent or invalid.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// endOfDay shifts a date filter to the last instant of that day so EndDate is
// inclusive.
func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := t.Add(24*time.Hour - time.Nanosecond)
	return &end
}
