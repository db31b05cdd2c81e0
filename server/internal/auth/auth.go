package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "github.com/crossplatform/resourcesvc/api/crossplatform/v1"
)

// DefaultHeader is used when Settings.Header is empty.
const DefaultHeader = "x-api-key"

var publicMethods = map[string]bool{
	pb.CrossPlatformService_Ping_FullMethodName: true,
}

var publicPaths = map[string]bool{
	"/api/v1/health": true,
	"/metrics":       true,
}

// Settings is one snapshot of the authentication configuration.
type Settings struct {
	// Mode is one of: apikey | none.
	Mode string
	// Header is the gRPC metadata key and HTTP header carrying the key.
	Header string
	// Key is the expected API key value.
	Key string
}

func (s Settings) enforced() bool { return s.Mode == "apikey" && s.Key != "" }

func (s Settings) header() string {
	if s.Header == "" {
		return DefaultHeader
	}
	return strings.ToLower(s.Header)
}

func (s Settings) matches(got string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.Key)) == 1
}

// Authenticator enforces API key authentication with hot-swappable settings.
type Authenticator struct {
	cur atomic.Pointer[Settings]
}

// New creates an Authenticator with the given initial settings.
func New(s Settings) *Authenticator {
	a := &Authenticator{}
	a.Update(s)
	return a
}

// Update replaces the active settings. In-flight calls finish with the
// settings they started with.
func (a *Authenticator) Update(s Settings) {
	a.cur.Store(&s)
}

// Settings returns the active settings.
func (a *Authenticator) Settings() Settings {
	return *a.cur.Load()
}

// UnaryInterceptor returns a gRPC UnaryServerInterceptor that enforces the
// active settings on every incoming call.
func (a *Authenticator) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		s := a.Settings()
		if !s.enforced() || publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		vals := md.Get(s.header())
		if len(vals) == 0 || !s.matches(vals[0]) {
			return nil, status.Error(codes.Unauthenticated, "invalid api key")
		}

		return handler(ctx, req)
	}
}

// Middleware wraps next with API key enforcement for HTTP requests.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := a.Settings()
		if !s.enforced() || publicPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		if !s.matches(r.Header.Get(s.header())) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"}) //nolint:errcheck
			return
		}
		next.ServeHTTP(w, r)
	})
}

// APIKeyInterceptor returns a gRPC UnaryServerInterceptor with fixed
// settings.
//
// header should be a lowercase string (gRPC metadata keys are normalised to
// lowercase by the gRPC library).
func APIKeyInterceptor(mode, header, key string) grpc.UnaryServerInterceptor {
	return New(Settings{Mode: mode, Header: header, Key: key}).UnaryInterceptor()
}
