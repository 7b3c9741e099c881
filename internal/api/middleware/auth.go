package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/equicrm/equicrm/internal/api/handler/v1/response"
	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/pkg/jwthelper"
	"github.com/equicrm/equicrm/internal/service"
)

const (
	CtxKeyUser = "authed_user"

	bearerPrefix = "Bearer "
)

type TokenResolver interface {
	ResolveToken(ctx context.Context, userID uint) (domain.User, error)
}

type Authenticator struct {
	signingKey []byte
	resolver   TokenResolver
}

func NewAuthenticator(signingKey string, resolver TokenResolver) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		resolver:   resolver,
	}
}

// VerifyJWT checks the bearer token and resolves its subject against
// the live user table, so archived or deleted accounts lose access
// immediately even with an unexpired token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.RenderErr(ctx, response.ErrUnauthorized("missing or malformed authorization header"))

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("invalid or expired token"))

			return
		}

		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
			response.RenderErr(ctx, response.ErrUnauthorized("invalid or expired token"))

			return
		}

		user, err := a.resolver.ResolveToken(ctx.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrUserInactive) {
				response.RenderErr(ctx, response.ErrUnauthorized("account no longer active"))

				return
			}

			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}

		ctx.Set(CtxKeyUser, user)
		ctx.Next()
	}
}

// GetAuthedUser returns the user VerifyJWT stored on the context.
func GetAuthedUser(ctx *gin.Context) (domain.User, bool) {
	v, ok := ctx.Get(CtxKeyUser)
	if !ok {
		return domain.User{}, false
	}

	user, ok := v.(domain.User)

	return user, ok
}
