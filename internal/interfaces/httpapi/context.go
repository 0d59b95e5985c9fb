package httpapi

import (
	"context"
	"net/http"
)

type contextKey string

const routeContextKey contextKey = "matched_route"

// matchedRoute is filled in by the mux handler so outer middleware can label
// metrics and logs with the route pattern instead of the raw path.
type matchedRoute struct {
	pattern string
}

func withRouteHolder(ctx context.Context) (context.Context, *matchedRoute) {
	holder := &matchedRoute{}
	return context.WithValue(ctx, routeContextKey, holder), holder
}

func routeHolderFromContext(ctx context.Context) (*matchedRoute, bool) {
	holder, ok := ctx.Value(routeContextKey).(*matchedRoute)
	return holder, ok
}

func recordRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if holder, ok := routeHolderFromContext(r.Context()); ok && r.Pattern != "" {
			holder.pattern = r.Pattern
		}
		next.ServeHTTP(w, r)
	})
}

func (m *matchedRoute) label() string {
	if m == nil || m.pattern == "" {
		return "unmatched"
	}
	return m.pattern
}
