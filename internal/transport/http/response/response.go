// Package response renders the service's envelope: every body carries a
// success flag, failures add a machine error and a human-readable message.
package response

import "github.com/gin-gonic/gin"

// OK writes a 200 with the given payload merged under success:true.
func OK(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(200, body)
}

// Error writes a failure with an error detail and a user-facing message.
func Error(c *gin.Context, status int, errMsg, message string) {
	body := gin.H{"success": false, "error": errMsg}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// ChatError writes a failure on the query boundary, which carries a
// fallback response text instead of a message.
func ChatError(c *gin.Context, status int, errMsg, responseText string) {
	c.JSON(status, gin.H{
		"success":  false,
		"error":    errMsg,
		"response": responseText,
	})
}
