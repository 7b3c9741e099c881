package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equicrm/equicrm/internal/api/handler/v1/request"
	"github.com/equicrm/equicrm/internal/api/handler/v1/response"
	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
	"github.com/equicrm/equicrm/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	ListUsers(ctx context.Context, filter repository.UserFilter, offset, limit int) ([]domain.User, int64, error)
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) (domain.User, error)
	ChangePassword(ctx context.Context, id uint, password string) error
	ArchiveUser(ctx context.Context, id uint) error
	RestoreUser(ctx context.Context, id uint) error
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page      query     int    false "page number"
// @Param        limit     query     int    false "page size"
// @Param        role      query     string false "filter by role"
// @Param        is_active query     bool   false "filter by active flag"
// @Success      200      {object}   response.PaginatedEnvelope
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [get]
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	page := request.ParsePage(ctx)
	filter := repository.UserFilter{
		Role:     ctx.Query("role"),
		IsActive: request.QueryBool(ctx, "is_active"),
	}

	users, total, err := h.svc.ListUsers(ctx.Request.Context(), filter, page.Offset(), page.Limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.Paginated(users, page.Page, page.Limit, total))
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID    path      int  true "user ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	id := request.ParamID(ctx, "userID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("user"))

		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user"))

			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(user))
}

// HandleCreateUser godoc
// @Summary      Create a user with any role
// @Tags         users
// @Produce      json
// @Param        request   body      request.CreateUserRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users [post]
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.CreateUser(ctx.Request.Context(), domain.User{
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Role:             domain.Role(req.Role),
		MembershipType:   req.MembershipType,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserEmailExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateUser -> h.svc.CreateUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.OK(user))
}

// HandleUpdateUser godoc
// @Summary      Update a user
// @Tags         users
// @Produce      json
// @Param        userID    path      int  true "user ID"
// @Param        request   body      request.UpdateUserRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [put]
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	id := request.ParamID(ctx, "userID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("user"))

		return
	}

	var req request.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.UpdateUser(ctx.Request.Context(), domain.User{
		ID:               id,
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Role:             domain.Role(req.Role),
		MembershipType:   req.MembershipType,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user"))
		case errors.Is(err, service.ErrUserEmailExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserEmailExists))
		case errors.Is(err, service.ErrLastActiveAdmin):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrLastActiveAdmin))
		default:
			err = fmt.Errorf("v1.HandleUpdateUser -> h.svc.UpdateUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(user))
}

// HandleChangePassword godoc
// @Summary      Set a new password for a user
// @Tags         users
// @Produce      json
// @Param        userID    path      int  true "user ID"
// @Param        request   body      request.ChangePasswordRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/password [put]
func (h *UserHandler) HandleChangePassword(ctx *gin.Context) {
	id := request.ParamID(ctx, "userID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("user"))

		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.ChangePassword(ctx.Request.Context(), id, req.Password); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user"))

			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "password_changed": true}))
}

// HandleArchiveUser godoc
// @Summary      Archive (soft-delete) a user
// @Tags         users
// @Produce      json
// @Param        userID    path      int  true "user ID"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/archive [post]
func (h *UserHandler) HandleArchiveUser(ctx *gin.Context) {
	h.setActive(ctx, false)
}

// HandleRestoreUser godoc
// @Summary      Restore an archived user
// @Tags         users
// @Produce      json
// @Param        userID    path      int  true "user ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/restore [post]
func (h *UserHandler) HandleRestoreUser(ctx *gin.Context) {
	h.setActive(ctx, true)
}

func (h *UserHandler) setActive(ctx *gin.Context, active bool) {
	id := request.ParamID(ctx, "userID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("user"))

		return
	}

	var err error
	if active {
		err = h.svc.RestoreUser(ctx.Request.Context(), id)
	} else {
		err = h.svc.ArchiveUser(ctx.Request.Context(), id)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user"))
		case errors.Is(err, service.ErrLastActiveAdmin):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrLastActiveAdmin))
		default:
			err = fmt.Errorf("v1.setActive -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "is_active": active}))
}

// HandleDeleteUser godoc
// @Summary      Permanently delete a user
// @Tags         users
// @Produce      json
// @Param        userID    path      int  true "user ID"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [delete]
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	id := request.ParamID(ctx, "userID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("user"))

		return
	}

	if err := h.svc.DeleteUser(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user"))
		case errors.Is(err, service.ErrLastActiveAdmin):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrLastActiveAdmin))
		default:
			err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "deleted": true}))
}
