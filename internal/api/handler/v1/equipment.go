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

type EquipmentService interface {
	GetEquipment(ctx context.Context, id uint) (domain.Equipment, error)
	ListEquipment(ctx context.Context, filter repository.EquipmentFilter, offset, limit int) ([]domain.Equipment, int64, error)
	CreateEquipment(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error)
	ArchiveEquipment(ctx context.Context, id uint) error
	DeleteEquipment(ctx context.Context, id uint) error
}

type EquipmentHandler struct {
	svc EquipmentService
}

func NewEquipmentHandler(svc EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		svc: svc,
	}
}

// HandleListEquipment godoc
// @Summary      List equipment
// @Tags         equipment
// @Produce      json
// @Param        page      query     int    false "page number"
// @Param        limit     query     int    false "page size"
// @Param        category  query     string false "filter by category"
// @Param        condition query     string false "filter by condition"
// @Param        horse_id  query     int    false "filter by assigned horse"
// @Param        is_active query     bool   false "filter by active flag"
// @Success      200      {object}   response.PaginatedEnvelope
// @Failure      500      {object}   response.Err
// @Router       /equipment [get]
func (h *EquipmentHandler) HandleListEquipment(ctx *gin.Context) {
	page := request.ParsePage(ctx)
	filter := repository.EquipmentFilter{
		Category:  ctx.Query("category"),
		Condition: ctx.Query("condition"),
		HorseID:   request.QueryUint(ctx, "horse_id"),
		IsActive:  request.QueryBool(ctx, "is_active"),
	}

	items, total, err := h.svc.ListEquipment(ctx.Request.Context(), filter, page.Offset(), page.Limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEquipment -> h.svc.ListEquipment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.Paginated(items, page.Page, page.Limit, total))
}

// HandleGetEquipment godoc
// @Summary      Get an equipment item by ID
// @Tags         equipment
// @Produce      json
// @Param        equipmentID path    int  true "equipment ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /equipment/{equipmentID} [get]
func (h *EquipmentHandler) HandleGetEquipment(ctx *gin.Context) {
	id := request.ParamID(ctx, "equipmentID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("equipment"))

		return
	}

	item, err := h.svc.GetEquipment(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEquipmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("equipment"))

			return
		}

		err = fmt.Errorf("v1.HandleGetEquipment -> h.svc.GetEquipment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(item))
}

// HandleCreateEquipment godoc
// @Summary      Create an equipment item
// @Tags         equipment
// @Produce      json
// @Param        request   body      request.EquipmentRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /equipment [post]
func (h *EquipmentHandler) HandleCreateEquipment(ctx *gin.Context) {
	var req request.EquipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	item, err := h.svc.CreateEquipment(ctx.Request.Context(), equipmentFromRequest(0, req))
	if err != nil {
		if errors.Is(err, service.ErrHorseNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("horse not found")))

			return
		}

		err = fmt.Errorf("v1.HandleCreateEquipment -> h.svc.CreateEquipment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.OK(item))
}

// HandleUpdateEquipment godoc
// @Summary      Update an equipment item
// @Tags         equipment
// @Produce      json
// @Param        equipmentID path    int  true "equipment ID"
// @Param        request   body      request.EquipmentRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /equipment/{equipmentID} [put]
func (h *EquipmentHandler) HandleUpdateEquipment(ctx *gin.Context) {
	id := request.ParamID(ctx, "equipmentID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("equipment"))

		return
	}

	var req request.EquipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	item, err := h.svc.UpdateEquipment(ctx.Request.Context(), equipmentFromRequest(id, req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEquipmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("equipment"))
		case errors.Is(err, service.ErrHorseNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("horse not found")))
		default:
			err = fmt.Errorf("v1.HandleUpdateEquipment -> h.svc.UpdateEquipment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(item))
}

// HandleArchiveEquipment godoc
// @Summary      Archive (soft-delete) an equipment item
// @Tags         equipment
// @Produce      json
// @Param        equipmentID path    int  true "equipment ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /equipment/{equipmentID}/archive [post]
func (h *EquipmentHandler) HandleArchiveEquipment(ctx *gin.Context) {
	id := request.ParamID(ctx, "equipmentID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("equipment"))

		return
	}

	if err := h.svc.ArchiveEquipment(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEquipmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("equipment"))

			return
		}

		err = fmt.Errorf("v1.HandleArchiveEquipment -> h.svc.ArchiveEquipment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "is_active": false}))
}

// HandleDeleteEquipment godoc
// @Summary      Permanently delete an equipment item
// @Tags         equipment
// @Produce      json
// @Param        equipmentID path    int  true "equipment ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /equipment/{equipmentID} [delete]
func (h *EquipmentHandler) HandleDeleteEquipment(ctx *gin.Context) {
	id := request.ParamID(ctx, "equipmentID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("equipment"))

		return
	}

	if err := h.svc.DeleteEquipment(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEquipmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("equipment"))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteEquipment -> h.svc.DeleteEquipment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "deleted": true}))
}

func equipmentFromRequest(id uint, req request.EquipmentRequest) domain.Equipment {
	return domain.Equipment{
		ID:                id,
		Name:              req.Name,
		Category:          req.Category,
		Condition:         req.Condition,
		Quantity:          req.Quantity,
		PurchaseDate:      req.PurchaseDate,
		PurchasePrice:     req.PurchasePrice,
		HorseID:           req.HorseID,
		LastMaintenanceAt: req.LastMaintenanceAt,
		NextMaintenanceAt: req.NextMaintenanceAt,
		Notes:             req.Notes,
	}
}
