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

type PaymentService interface {
	GetPayment(ctx context.Context, id uint) (domain.Payment, error)
	ListPayments(ctx context.Context, filter repository.PaymentFilter, offset, limit int) ([]domain.Payment, int64, error)
	CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	UpdatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	SetStatus(ctx context.Context, id uint, status domain.PaymentStatus) (domain.Payment, error)
	DeletePayment(ctx context.Context, id uint) error
	Summary(ctx context.Context) (domain.PaymentSummary, error)
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

// HandleListPayments godoc
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        page         query     int    false "page number"
// @Param        limit        query     int    false "page size"
// @Param        user_id      query     int    false "filter by user"
// @Param        status       query     string false "filter by status"
// @Param        payment_type query     string false "filter by type"
// @Param        from         query     string false "due from (RFC3339)"
// @Param        to           query     string false "due until (RFC3339)"
// @Success      200      {object}   response.PaginatedEnvelope
// @Failure      500      {object}   response.Err
// @Router       /payments [get]
func (h *PaymentHandler) HandleListPayments(ctx *gin.Context) {
	user, ok := authedUser(ctx)
	if !ok {
		return
	}

	page := request.ParsePage(ctx)
	filter := repository.PaymentFilter{
		UserID:      request.QueryUint(ctx, "user_id"),
		Status:      ctx.Query("status"),
		PaymentType: ctx.Query("payment_type"),
		From:        request.QueryTime(ctx, "from"),
		To:          request.QueryTime(ctx, "to"),
	}

	// Members only ever see their own payments.
	if !user.Role.IsStaff() {
		filter.UserID = &user.ID
	}

	payments, total, err := h.svc.ListPayments(ctx.Request.Context(), filter, page.Offset(), page.Limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPayments -> h.svc.ListPayments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.Paginated(payments, page.Page, page.Limit, total))
}

// HandleGetPayment godoc
// @Summary      Get a payment by ID
// @Tags         payments
// @Produce      json
// @Param        paymentID path      int  true "payment ID"
// @Success      200      {object}   response.Envelope
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/{paymentID} [get]
func (h *PaymentHandler) HandleGetPayment(ctx *gin.Context) {
	user, ok := authedUser(ctx)
	if !ok {
		return
	}

	id := request.ParamID(ctx, "paymentID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("payment"))

		return
	}

	payment, err := h.svc.GetPayment(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("payment"))

			return
		}

		err = fmt.Errorf("v1.HandleGetPayment -> h.svc.GetPayment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if !user.Role.IsStaff() && payment.UserID != user.ID {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	ctx.JSON(http.StatusOK, response.OK(payment))
}

// HandleCreatePayment godoc
// @Summary      Create a payment
// @Tags         payments
// @Produce      json
// @Param        request   body      request.PaymentRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments [post]
func (h *PaymentHandler) HandleCreatePayment(ctx *gin.Context) {
	var req request.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	payment, err := h.svc.CreatePayment(ctx.Request.Context(), paymentFromRequest(0, req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("user not found")))
		case errors.Is(err, service.ErrInvoiceNumberExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvoiceNumberExists))
		default:
			err = fmt.Errorf("v1.HandleCreatePayment -> h.svc.CreatePayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.OK(payment))
}

// HandleUpdatePayment godoc
// @Summary      Update a payment
// @Tags         payments
// @Produce      json
// @Param        paymentID path      int  true "payment ID"
// @Param        request   body      request.PaymentRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/{paymentID} [put]
func (h *PaymentHandler) HandleUpdatePayment(ctx *gin.Context) {
	id := request.ParamID(ctx, "paymentID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("payment"))

		return
	}

	var req request.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	payment, err := h.svc.UpdatePayment(ctx.Request.Context(), paymentFromRequest(id, req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("payment"))
		case errors.Is(err, service.ErrInvoiceNumberExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvoiceNumberExists))
		default:
			err = fmt.Errorf("v1.HandleUpdatePayment -> h.svc.UpdatePayment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(payment))
}

// HandleUpdatePaymentStatus godoc
// @Summary      Change a payment's status
// @Tags         payments
// @Produce      json
// @Param        paymentID path      int  true "payment ID"
// @Param        request   body      request.UpdatePaymentStatusRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/{paymentID}/status [put]
func (h *PaymentHandler) HandleUpdatePaymentStatus(ctx *gin.Context) {
	id := request.ParamID(ctx, "paymentID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("payment"))

		return
	}

	var req request.UpdatePaymentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	payment, err := h.svc.SetStatus(ctx.Request.Context(), id, domain.PaymentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("payment"))
		case errors.Is(err, service.ErrInvalidStatusChange):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStatusChange))
		default:
			err = fmt.Errorf("v1.HandleUpdatePaymentStatus -> h.svc.SetStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(payment))
}

// HandleDeletePayment godoc
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Param        paymentID path      int  true "payment ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments/{paymentID} [delete]
func (h *PaymentHandler) HandleDeletePayment(ctx *gin.Context) {
	id := request.ParamID(ctx, "paymentID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("payment"))

		return
	}

	if err := h.svc.DeletePayment(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("payment"))

			return
		}

		err = fmt.Errorf("v1.HandleDeletePayment -> h.svc.DeletePayment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "deleted": true}))
}

// HandlePaymentSummary godoc
// @Summary      Monthly revenue and outstanding totals
// @Tags         payments
// @Produce      json
// @Success      200      {object}   response.Envelope
// @Failure      500      {object}   response.Err
// @Router       /payments/stats/summary [get]
func (h *PaymentHandler) HandlePaymentSummary(ctx *gin.Context) {
	summary, err := h.svc.Summary(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandlePaymentSummary -> h.svc.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(summary))
}

func paymentFromRequest(id uint, req request.PaymentRequest) domain.Payment {
	return domain.Payment{
		ID:            id,
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentType:   req.PaymentType,
		LessonID:      req.LessonID,
		EventID:       req.EventID,
		Method:        req.Method,
		DueDate:       req.DueDate,
		InvoiceNumber: req.InvoiceNumber,
		Description:   req.Description,
	}
}
