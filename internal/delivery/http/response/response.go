package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response. Message is user-facing
// and localized; Details carries diagnostics for operators only.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, details string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Details:   details,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
