package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/farmlink/backend/pkg/errorx"
	"github.com/farmlink/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	baseCtx, bodyLimit := router.ctx, router.bodyLimit
	befores, afters, closers := router.befores, router.afters, router.closers

	return func(c *gin.Context) {
		// Values come from the router context, cancellation from the request.
		ctx, cancel := context.WithCancel(baseCtx)
		defer cancel()
		stop := context.AfterFunc(c.Request.Context(), cancel)
		defer stop()

		if bodyLimit > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)
		}
		ctx = xcontext.WithHTTPRequest(ctx, c.Request)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		ctx, err := serve(ctx, c, method, befores, afters, handler)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, newResponse(xcontext.Response(ctx)))
	}
}

func serve[Request, Response any](
	ctx context.Context,
	c *gin.Context,
	method string,
	befores, afters []MiddlewareFunc,
	handler HandlerFunc[Request, Response],
) (context.Context, error) {
	var err error
	for _, m := range befores {
		if ctx, err = m(ctx); err != nil {
			return ctx, err
		}
	}

	var req Request
	if err := bind(c, method, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ctx, errorx.New(errorx.BadRequest, "Request body must be smaller than %d bytes", maxErr.Limit)
		}

		xcontext.Logger(ctx).Debugf("cannot bind request: %v", err)
		return ctx, errorx.New(errorx.BadRequest, "Invalid request")
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return ctx, err
	}
	ctx = xcontext.WithResponse(ctx, resp)

	for _, m := range afters {
		if ctx, err = m(ctx); err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}

func bind(c *gin.Context, method string, req any) error {
	switch method {
	case http.MethodGet:
		return c.ShouldBindQuery(req)
	case http.MethodPost:
		if c.Request.ContentLength == 0 {
			return nil
		}
		return c.ShouldBindJSON(req)
	default:
		return errors.New("unsupported method")
	}
}
