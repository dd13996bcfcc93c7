package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/httpapi"
)

// Route maps a path prefix to the base URL of the owning backend.
type Route struct {
	Prefix string
	Target *url.URL
}

type ctxKey int

const targetKey ctxKey = iota

// Gateway forwards each inbound request to exactly one backend chosen
// by longest matching path prefix. The routing table is static; the
// request is forwarded unchanged apart from host rewriting and a
// request id. One inbound request, at most one outbound request.
type Gateway struct {
	routes []Route
	proxy  *httputil.ReverseProxy
	logger *zap.Logger
}

// New builds a gateway from a prefix -> base URL table.
func New(routes map[string]string, logger *zap.Logger) (*Gateway, error) {
	g := &Gateway{logger: logger}

	for prefix, base := range routes {
		target, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid backend URL for %s: %w", prefix, err)
		}
		if target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("backend URL for %s must be absolute, got %q", prefix, base)
		}
		g.routes = append(g.routes, Route{Prefix: strings.TrimSuffix(prefix, "/"), Target: target})
	}
	sort.Slice(g.routes, func(i, j int) bool {
		return len(g.routes[i].Prefix) > len(g.routes[j].Prefix)
	})

	g.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			target := pr.In.Context().Value(targetKey).(*url.URL)
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: g.handleProxyError,
	}

	return g, nil
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, ok := g.match(r.URL.Path)
	if !ok {
		g.logger.Warn("no route for path",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		httpapi.WriteJSON(w, http.StatusNotFound,
			httpapi.Fail(httpapi.CodeRouteNotFound, "no route configured for path"))
		return
	}

	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set("X-Request-Id", requestID)
	}

	g.logger.Info("forwarding request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("route", route.Prefix),
		zap.String("backend", route.Target.String()),
		zap.String("request_id", requestID),
	)

	ctx := context.WithValue(r.Context(), targetKey, route.Target)
	g.proxy.ServeHTTP(w, r.WithContext(ctx))
}

// match returns the longest configured prefix covering path. Prefixes
// match on segment boundaries: /api/patients covers /api/patients/42
// but not /api/patientsfoo.
func (g *Gateway) match(path string) (Route, bool) {
	for _, route := range g.routes {
		if path == route.Prefix || strings.HasPrefix(path, route.Prefix+"/") {
			return route, true
		}
	}
	return Route{}, false
}

func (g *Gateway) handleProxyError(w http.ResponseWriter, r *http.Request, err error) {
	g.logger.Error("backend unreachable",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	httpapi.WriteJSON(w, http.StatusBadGateway,
		httpapi.Fail(httpapi.CodeDependencyUnavailable, "backend service unreachable"))
}
