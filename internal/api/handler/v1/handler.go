package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equicrm/equicrm/internal/api/handler/v1/response"
	"github.com/equicrm/equicrm/internal/api/middleware"
	"github.com/equicrm/equicrm/internal/domain"
)

// authedUser pulls the user VerifyJWT stored on the context, aborting
// with 401 when the middleware did not run.
func authedUser(ctx *gin.Context) (domain.User, bool) {
	user, ok := middleware.GetAuthedUser(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))

		return domain.User{}, false
	}

	return user, true
}

// HandleHealthcheck godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
