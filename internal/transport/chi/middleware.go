package chi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/inventory/internal/domain/permission"
	"github.com/kailas-cloud/inventory/internal/i18n"
	"github.com/kailas-cloud/inventory/internal/logger"
)

// Request headers.
const (
	HeaderSessionID   = "X-Session-Id"
	HeaderPermissions = "X-Okapi-Permissions"
)

type sessionKey struct{}

type permissionsKey struct{}

// SessionMiddleware attaches the caller's session id to the context. A request
// without one starts a new session whose id is returned in the response header.
func SessionMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderSessionID)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderSessionID, id)
			ctx := context.WithValue(r.Context(), sessionKey{}, id)
			ctx = logger.With(ctx, zap.String("session_id", id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PermissionsMiddleware reads the granted permissions, a JSON array of names.
// An unreadable header grants nothing.
func PermissionsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var names []string
			if raw := r.Header.Get(HeaderPermissions); raw != "" {
				if err := json.Unmarshal([]byte(raw), &names); err != nil {
					logger.FromContext(r.Context()).Warn("Ignoring malformed permissions header", zap.Error(err))
					names = nil
				}
			}
			ctx := context.WithValue(r.Context(), permissionsKey{}, permission.NewSet(names...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleMiddleware picks the message printer from Accept-Language.
func LocaleMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := i18n.ForAcceptLanguage(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", p.Tag().String())
			next.ServeHTTP(w, r.WithContext(i18n.ContextWithPrinter(r.Context(), p)))
		})
	}
}

func sessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

func permissions(ctx context.Context) permission.Set {
	p, _ := ctx.Value(permissionsKey{}).(permission.Set)
	return p
}
