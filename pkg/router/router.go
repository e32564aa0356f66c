package router

import (
	"context"
	"net/http"

	"github.com/farmlink/backend/pkg/errorx"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may replace the request context. A non-nil error stops the
// chain and is written as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, whatever the outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	Inner gin.IRouter
	ctx   context.Context

	bodyLimit int64
	befores   []MiddlewareFunc
	afters    []MiddlewareFunc
	closers   []CloserFunc
}

// New returns a Router whose handlers see every value stored in ctx, such as
// configs, logger and database.
func New(ctx context.Context) *Router {
	engine := gin.New()
	engine.NoRoute(func(c *gin.Context) {
		writeError(c, errorx.New(errorx.NotFound, "Not found %s %s", c.Request.Method, c.Request.URL.Path))
	})

	return &Router{Inner: engine, ctx: ctx}
}

// Branch shares the routes of r but copies its middlewares and body limit, so
// changes made to the branch do not affect r.
func (r *Router) Branch() *Router {
	return &Router{
		Inner:     r.Inner,
		ctx:       r.ctx,
		bodyLimit: r.bodyLimit,
		befores:   append([]MiddlewareFunc(nil), r.befores...),
		afters:    append([]MiddlewareFunc(nil), r.afters...),
		closers:   append([]CloserFunc(nil), r.closers...),
	}
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

// LimitBody caps request bodies of routes registered afterwards. Zero means
// no cap.
func (r *Router) LimitBody(n int64) {
	r.bodyLimit = n
}

// Handle mounts a plain http.Handler for every method, bypassing middlewares
// and the response envelope.
func (r *Router) Handle(pattern string, h http.Handler) {
	r.Inner.Any(pattern, gin.WrapH(h))
}

// Handler wraps the routes with CORS for the given origins.
func (r *Router) Handler(allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	}).Handler(r.Inner.(*gin.Engine))
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
