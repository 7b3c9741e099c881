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

type HorseService interface {
	GetHorse(ctx context.Context, id uint) (domain.Horse, error)
	ListHorses(ctx context.Context, filter repository.HorseFilter, offset, limit int) ([]domain.Horse, int64, error)
	CreateHorse(ctx context.Context, horse domain.Horse) (domain.Horse, error)
	UpdateHorse(ctx context.Context, horse domain.Horse) (domain.Horse, error)
	ArchiveHorse(ctx context.Context, id uint) error
}

type HorseHandler struct {
	svc HorseService
}

func NewHorseHandler(svc HorseService) *HorseHandler {
	return &HorseHandler{
		svc: svc,
	}
}

// HandleListHorses godoc
// @Summary      List horses
// @Tags         horses
// @Produce      json
// @Param        page          query     int    false "page number"
// @Param        limit         query     int    false "page size"
// @Param        boarding_type query     string false "filter by boarding type"
// @Param        owner_id      query     int    false "filter by owner"
// @Param        is_active     query     bool   false "filter by active flag"
// @Success      200      {object}   response.PaginatedEnvelope
// @Failure      500      {object}   response.Err
// @Router       /horses [get]
func (h *HorseHandler) HandleListHorses(ctx *gin.Context) {
	page := request.ParsePage(ctx)
	filter := repository.HorseFilter{
		BoardingType: ctx.Query("boarding_type"),
		OwnerID:      request.QueryUint(ctx, "owner_id"),
		IsActive:     request.QueryBool(ctx, "is_active"),
	}

	horses, total, err := h.svc.ListHorses(ctx.Request.Context(), filter, page.Offset(), page.Limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListHorses -> h.svc.ListHorses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.Paginated(horses, page.Page, page.Limit, total))
}

// HandleGetHorse godoc
// @Summary      Get a horse by ID
// @Tags         horses
// @Produce      json
// @Param        horseID   path      int  true "horse ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /horses/{horseID} [get]
func (h *HorseHandler) HandleGetHorse(ctx *gin.Context) {
	id := request.ParamID(ctx, "horseID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("horse"))

		return
	}

	horse, err := h.svc.GetHorse(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrHorseNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("horse"))

			return
		}

		err = fmt.Errorf("v1.HandleGetHorse -> h.svc.GetHorse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(horse))
}

// HandleCreateHorse godoc
// @Summary      Create a horse
// @Tags         horses
// @Produce      json
// @Param        request   body      request.HorseRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /horses [post]
func (h *HorseHandler) HandleCreateHorse(ctx *gin.Context) {
	var req request.HorseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	horse, err := h.svc.CreateHorse(ctx.Request.Context(), horseFromRequest(0, req))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("owner not found")))

			return
		}

		err = fmt.Errorf("v1.HandleCreateHorse -> h.svc.CreateHorse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.OK(horse))
}

// HandleUpdateHorse godoc
// @Summary      Update a horse
// @Tags         horses
// @Produce      json
// @Param        horseID   path      int  true "horse ID"
// @Param        request   body      request.HorseRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /horses/{horseID} [put]
func (h *HorseHandler) HandleUpdateHorse(ctx *gin.Context) {
	id := request.ParamID(ctx, "horseID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("horse"))

		return
	}

	var req request.HorseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	horse, err := h.svc.UpdateHorse(ctx.Request.Context(), horseFromRequest(id, req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHorseNotFound):
			response.RenderErr(ctx, response.ErrNotFound("horse"))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("owner not found")))
		default:
			err = fmt.Errorf("v1.HandleUpdateHorse -> h.svc.UpdateHorse -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(horse))
}

// HandleArchiveHorse godoc
// @Summary      Archive (soft-delete) a horse
// @Tags         horses
// @Produce      json
// @Param        horseID   path      int  true "horse ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /horses/{horseID}/archive [post]
func (h *HorseHandler) HandleArchiveHorse(ctx *gin.Context) {
	id := request.ParamID(ctx, "horseID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("horse"))

		return
	}

	if err := h.svc.ArchiveHorse(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrHorseNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("horse"))

			return
		}

		err = fmt.Errorf("v1.HandleArchiveHorse -> h.svc.ArchiveHorse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "is_active": false}))
}

func horseFromRequest(id uint, req request.HorseRequest) domain.Horse {
	return domain.Horse{
		ID:           id,
		Name:         req.Name,
		Breed:        req.Breed,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Color:        req.Color,
		HeightHands:  req.HeightHands,
		WeightKg:     req.WeightKg,
		BoardingType: req.BoardingType,
		MedicalNotes: req.MedicalNotes,
		SpecialNeeds: req.SpecialNeeds,
		OwnerID:      req.OwnerID,
	}
}
