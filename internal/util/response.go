package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Responses wrap their payload in a {"data": ...} envelope. List
// endpoints additionally echo the paging knobs they honored.

// Data writes a success envelope with the given status.
func Data(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, gin.H{"data": payload})
}

// Page writes a success envelope for a paged list, echoing limit/offset.
func Page(c *gin.Context, payload interface{}, limit, offset int) {
	c.JSON(http.StatusOK, gin.H{
		"data":   payload,
		"limit":  limit,
		"offset": offset,
	})
}

// Message writes a bare {"message": ...} body, used for error outcomes.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// ValidationFailed writes the field-level error list of a rejected input.
func ValidationFailed(c *gin.Context, errs interface{}) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}
