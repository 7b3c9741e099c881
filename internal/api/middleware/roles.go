package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/equicrm/equicrm/internal/api/handler/v1/response"
	"github.com/equicrm/equicrm/internal/domain"
)

// RequireRoles rejects authenticated users whose role is not in the
// allow list. Must be mounted after VerifyJWT.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(ctx *gin.Context) {
		user, ok := GetAuthedUser(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))

			return
		}

		if _, ok := allowed[user.Role]; !ok {
			response.RenderErr(ctx, response.ErrPermissionDenied())

			return
		}

		ctx.Next()
	}
}
