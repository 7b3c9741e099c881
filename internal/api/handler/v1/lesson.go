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

type LessonService interface {
	GetLesson(ctx context.Context, id uint) (domain.Lesson, error)
	ListLessons(ctx context.Context, filter repository.LessonFilter, offset, limit int) ([]domain.Lesson, int64, error)
	ScheduleLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	UpdateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	CancelLesson(ctx context.Context, id uint) error
	SetStatus(ctx context.Context, id uint, status domain.LessonStatus) error
	DeleteLesson(ctx context.Context, id uint) error
}

type LessonHandler struct {
	svc LessonService
}

func NewLessonHandler(svc LessonService) *LessonHandler {
	return &LessonHandler{
		svc: svc,
	}
}

// HandleListLessons godoc
// @Summary      List lessons
// @Tags         lessons
// @Produce      json
// @Param        page          query     int    false "page number"
// @Param        limit         query     int    false "page size"
// @Param        instructor_id query     int    false "filter by instructor"
// @Param        student_id    query     int    false "filter by student"
// @Param        status        query     string false "filter by status"
// @Param        from          query     string false "scheduled from (RFC3339)"
// @Param        to            query     string false "scheduled until (RFC3339)"
// @Success      200      {object}   response.PaginatedEnvelope
// @Failure      500      {object}   response.Err
// @Router       /lessons [get]
func (h *LessonHandler) HandleListLessons(ctx *gin.Context) {
	user, ok := authedUser(ctx)
	if !ok {
		return
	}

	page := request.ParsePage(ctx)
	filter := repository.LessonFilter{
		InstructorID: request.QueryUint(ctx, "instructor_id"),
		StudentID:    request.QueryUint(ctx, "student_id"),
		Status:       ctx.Query("status"),
		From:         request.QueryTime(ctx, "from"),
		To:           request.QueryTime(ctx, "to"),
	}

	// Members only ever see their own lessons.
	if !user.Role.IsStaff() {
		filter.StudentID = &user.ID
	}

	lessons, total, err := h.svc.ListLessons(ctx.Request.Context(), filter, page.Offset(), page.Limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleListLessons -> h.svc.ListLessons -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.Paginated(lessons, page.Page, page.Limit, total))
}

// HandleGetLesson godoc
// @Summary      Get a lesson by ID
// @Tags         lessons
// @Produce      json
// @Param        lessonID  path      int  true "lesson ID"
// @Success      200      {object}   response.Envelope
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /lessons/{lessonID} [get]
func (h *LessonHandler) HandleGetLesson(ctx *gin.Context) {
	user, ok := authedUser(ctx)
	if !ok {
		return
	}

	id := request.ParamID(ctx, "lessonID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("lesson"))

		return
	}

	lesson, err := h.svc.GetLesson(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lesson"))

			return
		}

		err = fmt.Errorf("v1.HandleGetLesson -> h.svc.GetLesson -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if !user.Role.IsStaff() && lesson.StudentID != user.ID {
		response.RenderErr(ctx, response.ErrPermissionDenied())

		return
	}

	ctx.JSON(http.StatusOK, response.OK(lesson))
}

// HandleScheduleLesson godoc
// @Summary      Schedule a lesson
// @Tags         lessons
// @Produce      json
// @Param        request   body      request.LessonRequest true "request body"
// @Success      201      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /lessons [post]
func (h *LessonHandler) HandleScheduleLesson(ctx *gin.Context) {
	var req request.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	lesson, err := h.svc.ScheduleLesson(ctx.Request.Context(), lessonFromRequest(0, req))
	if err != nil {
		h.renderLessonErr(ctx, "HandleScheduleLesson", err)

		return
	}

	ctx.JSON(http.StatusCreated, response.OK(lesson))
}

// HandleUpdateLesson godoc
// @Summary      Update a lesson, re-checking instructor availability
// @Tags         lessons
// @Produce      json
// @Param        lessonID  path      int  true "lesson ID"
// @Param        request   body      request.LessonRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /lessons/{lessonID} [put]
func (h *LessonHandler) HandleUpdateLesson(ctx *gin.Context) {
	id := request.ParamID(ctx, "lessonID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("lesson"))

		return
	}

	var req request.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	lesson, err := h.svc.UpdateLesson(ctx.Request.Context(), lessonFromRequest(id, req))
	if err != nil {
		h.renderLessonErr(ctx, "HandleUpdateLesson", err)

		return
	}

	ctx.JSON(http.StatusOK, response.OK(lesson))
}

// HandleCancelLesson godoc
// @Summary      Cancel a scheduled lesson
// @Tags         lessons
// @Produce      json
// @Param        lessonID  path      int  true "lesson ID"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /lessons/{lessonID}/cancel [post]
func (h *LessonHandler) HandleCancelLesson(ctx *gin.Context) {
	id := request.ParamID(ctx, "lessonID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("lesson"))

		return
	}

	if err := h.svc.CancelLesson(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrLessonNotFound):
			response.RenderErr(ctx, response.ErrNotFound("lesson"))
		case errors.Is(err, service.ErrLessonNotCancellable):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrLessonNotCancellable))
		default:
			err = fmt.Errorf("v1.HandleCancelLesson -> h.svc.CancelLesson -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "status": domain.LessonCancelled}))
}

// HandleUpdateLessonStatus godoc
// @Summary      Change a lesson's status
// @Tags         lessons
// @Produce      json
// @Param        lessonID  path      int  true "lesson ID"
// @Param        request   body      request.UpdateLessonStatusRequest true "request body"
// @Success      200      {object}   response.Envelope
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /lessons/{lessonID}/status [put]
func (h *LessonHandler) HandleUpdateLessonStatus(ctx *gin.Context) {
	id := request.ParamID(ctx, "lessonID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("lesson"))

		return
	}

	var req request.UpdateLessonStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.SetStatus(ctx.Request.Context(), id, domain.LessonStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lesson"))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateLessonStatus -> h.svc.SetStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "status": req.Status}))
}

// HandleDeleteLesson godoc
// @Summary      Delete a lesson
// @Tags         lessons
// @Produce      json
// @Param        lessonID  path      int  true "lesson ID"
// @Success      200      {object}   response.Envelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /lessons/{lessonID} [delete]
func (h *LessonHandler) HandleDeleteLesson(ctx *gin.Context) {
	id := request.ParamID(ctx, "lessonID")
	if id == 0 {
		response.RenderErr(ctx, response.ErrNotFound("lesson"))

		return
	}

	if err := h.svc.DeleteLesson(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("lesson"))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteLesson -> h.svc.DeleteLesson -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.OK(gin.H{"id": id, "deleted": true}))
}

func (h *LessonHandler) renderLessonErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		response.RenderErr(ctx, response.ErrNotFound("lesson"))
	case errors.Is(err, service.ErrScheduleConflict):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrScheduleConflict))
	case errors.Is(err, service.ErrNotAnInstructor):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotAnInstructor))
	case errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("instructor or student not found")))
	case errors.Is(err, service.ErrHorseNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("horse not found")))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func lessonFromRequest(id uint, req request.LessonRequest) domain.Lesson {
	return domain.Lesson{
		ID:              id,
		InstructorID:    req.InstructorID,
		StudentID:       req.StudentID,
		HorseID:         req.HorseID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		LessonType:      req.LessonType,
		Discipline:      req.Discipline,
		PaymentStatus:   req.PaymentStatus,
		Price:           req.Price,
		Notes:           req.Notes,
	}
}
