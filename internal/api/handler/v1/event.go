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

type EventService interface {
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	ListEvents(ctx context.Context, filter repository.EventFilter, offset, limit int) ([]domain.Event, int64, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, userID uint) (bool, error)
	Unregister(ctx context.Context, eventID, userID uint) (uint, error)
	SetParticipantPayment(ctx context.Context, eventID, userID uint, status string) error
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        page       query     int    false "page number"
// @Param        limit      query     int    false "page size"
// @Param        status     query     string false "filter by status"
// @Param        event_type query     string false "filter by type"
// @Param        from       query     string false "starting from (RFC3339)"
// @Param        to         query     string false "starting until (RFC3339)"
// @Success      200      {object}   response.PaginatedEnvelope
// @Failure      500      {object}   response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	page := request.ParsePage(ctx)
	filter := repository.EventFilter{
		Status:    ctx.Query("status"),
		EventType: ctx.Query("event_type"),
		From:      request.QueryTime(ctx, "from"),
		To:        request.QueryTime(ctx, "to"),
	}

	events, total, err := h.svc.ListEvents(ctx.Request.Context(), filter, page.Offset(), page.Limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.Paginated(events, page.Page, page.Limit, total))
}

// HandleGetEvent godoc
// @Summary      Get an event with participants and waitlist
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id := request.ParamID(ctx, "eventID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("event"))

		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event"))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(event))
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Produce      json
// @Param        request   body      request.EventRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), eventFromRequest(0, req))
	if err != nil {
		if errors.Is(err, service.ErrEventEndsBeforeStart) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventEndsBeforeStart))

			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.OK(event))
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true "event ID"
// @Param        request   body      request.EventRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	id := request.ParamID(ctx, "eventID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("event"))

		return
	}

	var req request.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), eventFromRequest(id, req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event"))
		case errors.Is(err, service.ErrEventEndsBeforeStart):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventEndsBeforeStart))
		default:
			err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(event))
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [delete]
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	id := request.ParamID(ctx, "eventID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("event"))

		return
	}

	if err := h.svc.DeleteEvent(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event"))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "deleted": true}))
}

// HandleRegister godoc
// @Summary      Register the authenticated user for an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/register [post]
func (h *EventHandler) HandleRegister(ctx *gin.Context) {
	user, ok := authedUser(ctx)
	if !ok {
		return
	}

	id := request.ParamID(ctx, "eventID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("event"))

		return
	}

	waitlisted, err := h.svc.Register(ctx.Request.Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event"))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAlreadyRegistered))
		case errors.Is(err, service.ErrEventNotOpen):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventNotOpen))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	msg := "registered"
	if waitlisted {
		msg = "event is full, added to waitlist"
	}

	ctx.JSON(http.StatusOK, response.OK(response.RegistrationResponse{
		Waitlisted: waitlisted,
		Message:    msg,
	}))
}

// HandleUnregister godoc
// @Summary      Unregister the authenticated user from an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true "event ID"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/unregister [post]
func (h *EventHandler) HandleUnregister(ctx *gin.Context) {
	user, ok := authedUser(ctx)
	if !ok {
		return
	}

	id := request.ParamID(ctx, "eventID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("event"))

		return
	}

	promoted, err := h.svc.Unregister(ctx.Request.Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event"))
		case errors.Is(err, service.ErrNotRegistered):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotRegistered))
		default:
			err = fmt.Errorf("v1.HandleUnregister -> h.svc.Unregister -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	data := gin.H{"unregistered": true}
	if promoted != 0 {
		data["promoted_user_id"] = promoted
	}

	ctx.JSON(http.StatusOK, response.OK(data))
}

// HandleParticipantPayment godoc
// @Summary      Set a participant's payment status
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true "event ID"
// @Param        userID    path      int  true "user ID"
// @Param        request   body      request.ParticipantPaymentRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/payment/{userID} [put]
func (h *EventHandler) HandleParticipantPayment(ctx *gin.Context) {
	eventID := request.ParamID(ctx, "eventID")
	userID := request.ParamID(ctx, "userID")
	if eventID == 0 || userID == 0 {
		response.RenderErr(ctx, response.ErrNotFound("event participant"))

		return
	}

	var req request.ParticipantPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.SetParticipantPayment(ctx.Request.Context(), eventID, userID, req.PaymentStatus); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event"))
		case errors.Is(err, service.ErrParticipantNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event participant"))
		default:
			err = fmt.Errorf("v1.HandleParticipantPayment -> h.svc.SetParticipantPayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{
		"event_id":       eventID,
		"user_id":        userID,
		"payment_status": req.PaymentStatus,
	}))
}

func eventFromRequest(id uint, req request.EventRequest) domain.Event {
	return domain.Event{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		EventType:       req.EventType,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		EntryFee:        req.EntryFee,
		Status:          domain.EventStatus(req.Status),
	}
}
