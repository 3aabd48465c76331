package middleware

import (
	"strings"

	"travelagency/internal/domain"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// TokenParser turns a bearer token into a caller.
type TokenParser interface {
	ParseToken(raw string) (domain.Caller, error)
}

type AuthOptions struct {
	Tokens TokenParser
	// TrustHeaders accepts X-User-Email / X-User-Role set by an upstream
	// dashboard proxy. Disable when the API is reachable without it.
	TrustHeaders bool
}

// Auth resolves the caller and stores it in the context. It never rejects:
// anonymous requests carry an empty Caller and handlers decide.
func Auth(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var caller domain.Caller

		if raw, ok := bearer(c.GetHeader("Authorization")); ok && opts.Tokens != nil {
			parsed, err := opts.Tokens.ParseToken(raw)
			if err == nil {
				caller = parsed
			}
		} else if opts.TrustHeaders {
			caller = domain.Caller{
				Email: strings.TrimSpace(c.GetHeader("X-User-Email")),
				Role:  domain.ParseRole(c.GetHeader("X-User-Role")),
			}
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

func bearer(h string) (string, bool) {
	h = strings.TrimSpace(h)
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[7:])
	return tok, tok != ""
}

// GetCaller returns the caller resolved by Auth, or an anonymous one.
func GetCaller(c *gin.Context) domain.Caller {
	if c == nil {
		return domain.Caller{}
	}
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(domain.Caller); ok {
			return caller
		}
	}
	return domain.Caller{}
}
