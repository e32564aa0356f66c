package router

import (
	"errors"
	"net/http"

	"github.com/farmlink/backend/pkg/errorx"
	"github.com/gin-gonic/gin"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

// StatusCode maps an error to the HTTP status written with it.
func StatusCode(err error) int {
	switch errorx.CodeOf(err) {
	case errorx.BadRequest, errorx.SourceUnreadable:
		return http.StatusBadRequest
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.NotConfigured, errorx.Unavailable:
		return http.StatusServiceUnavailable
	case errorx.UploadFailed, errorx.BadResponse:
		return http.StatusBadGateway
	case errorx.NotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(StatusCode(err), newErrorResponse(err))
}
