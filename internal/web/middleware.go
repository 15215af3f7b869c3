package web

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HandleError logs the failure and aborts the request with a terse JSON body.
func HandleError(ctx *gin.Context, status int, message string, err error) {
	logger, ok := ctx.Get("logger")
	if ok {
		event := logger.(*zerolog.Logger).Error().Str("message", message)
		if err != nil {
			event = event.Err(err)
		}
		event.Msg("Request failed")
	}

	body := gin.H{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}

	ctx.AbortWithStatusJSON(status, body)
}
