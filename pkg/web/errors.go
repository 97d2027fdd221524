package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/westat/peregrine/pkg/trigger"
)

// HTTPError is the body of every non-2xx response.
type HTTPError struct {
	Code    int    `json:"code" example:"409"`
	Message string `json:"message" example:"aws client error in start_a_crawler: CrawlerRunningException: already running"`
}

func NewError(ctx *gin.Context, status int, err error) {
	ctx.JSON(status, HTTPError{Code: status, Message: err.Error()})
}

// statusForTrigger maps a failed start request onto an HTTP status.
func statusForTrigger(err error) int {
	var failure *trigger.TriggerFailure
	if !errors.As(err, &failure) {
		return http.StatusInternalServerError
	}
	switch {
	case failure.Kind == trigger.KindUnexpected:
		return http.StatusInternalServerError
	case errors.Is(failure, trigger.ErrAlreadyRunning):
		return http.StatusConflict
	case failure.Code == trigger.CrawlerNotFoundCode:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
