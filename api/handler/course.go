package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/academylabs/backend/api/transport"
	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/internal/middleware"
	"github.com/academylabs/backend/pkg/httpcontext"
	courseUC "github.com/academylabs/backend/usecase/course"
)

type CourseHandler struct {
	baseHandler
	uc *courseUC.UseCase
}

func NewCourseHandler(uc *courseUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// staffCaller reports whether the request carries a staff-role user record.
func staffCaller(ctx *fasthttp.RequestCtx) bool {
	user, ok := middleware.UserFrom(ctx)
	return ok && user.HasAnyRole(domain.RoleAdmin, domain.RoleMentor)
}

// @Summary List courses
// @Tags courses
// @Router /api/v1/courses [get]
func (h *CourseHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	courses, err := h.uc.ListCourses(stdCtx, staffCaller(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, courses)
}

// @Summary Get course by slug
// @Tags courses
// @Router /api/v1/courses/{slug} [get]
func (h *CourseHandler) Get(ctx *fasthttp.RequestCtx) {
	slug, _ := ctx.UserValue("slug").(string)
	if slug == "" {
		h.respondError(ctx, domain.ErrMissingParameters)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	course, err := h.uc.GetCourse(stdCtx, slug, staffCaller(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, course)
}

// @Summary Create course
// @Tags courses
// @Router /api/v1/courses [post]
func (h *CourseHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CourseRequest
	if !h.decode(ctx, &req) {
		return
	}

	course := &domain.Course{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.CreateCourse(stdCtx, course); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, course)
}

// @Summary Update course
// @Tags courses
// @Router /api/v1/courses/{id} [put]
func (h *CourseHandler) Update(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	var req transport.CourseRequest
	if !h.decode(ctx, &req) {
		return
	}

	course := &domain.Course{
		ID:          id,
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UpdateCourse(stdCtx, course); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, course)
}

// @Summary Delete course
// @Tags courses
// @Router /api/v1/courses/{id} [delete]
func (h *CourseHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteCourse(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Create topic
// @Tags courses
// @Router /api/v1/topics [post]
func (h *CourseHandler) CreateTopic(ctx *fasthttp.RequestCtx) {
	var req transport.TopicRequest
	if !h.decode(ctx, &req) {
		return
	}

	topic := &domain.Topic{
		CourseID: req.CourseID,
		Title:    req.Title,
		Position: req.Position,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.CreateTopic(stdCtx, topic); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, topic)
}

// @Summary Update topic
// @Tags courses
// @Router /api/v1/topics/{id} [put]
func (h *CourseHandler) UpdateTopic(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	var req transport.TopicRequest
	if !h.decode(ctx, &req) {
		return
	}

	topic := &domain.Topic{
		ID:       id,
		CourseID: req.CourseID,
		Title:    req.Title,
		Position: req.Position,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UpdateTopic(stdCtx, topic); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, topic)
}

// @Summary Delete topic
// @Tags courses
// @Router /api/v1/topics/{id} [delete]
func (h *CourseHandler) DeleteTopic(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTopic(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Get lesson
// @Tags courses
// @Router /api/v1/lessons/{id} [get]
func (h *CourseHandler) GetLesson(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondError(ctx, domain.ErrMissingParameters)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	lesson, err := h.uc.GetLesson(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, lesson)
}

// @Summary Create lesson
// @Tags courses
// @Router /api/v1/lessons [post]
func (h *CourseHandler) CreateLesson(ctx *fasthttp.RequestCtx) {
	var req transport.LessonRequest
	if !h.decode(ctx, &req) {
		return
	}

	lesson := &domain.Lesson{
		TopicID:     req.TopicID,
		Title:       req.Title,
		Content:     req.Content,
		Position:    req.Position,
		CreditValue: req.CreditValue,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.CreateLesson(stdCtx, lesson); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, lesson)
}

// @Summary Update lesson
// @Tags courses
// @Router /api/v1/lessons/{id} [put]
func (h *CourseHandler) UpdateLesson(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	var req transport.LessonRequest
	if !h.decode(ctx, &req) {
		return
	}

	lesson := &domain.Lesson{
		ID:          id,
		TopicID:     req.TopicID,
		Title:       req.Title,
		Content:     req.Content,
		Position:    req.Position,
		CreditValue: req.CreditValue,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UpdateLesson(stdCtx, lesson); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, lesson)
}

// @Summary Delete lesson
// @Tags courses
// @Router /api/v1/lessons/{id} [delete]
func (h *CourseHandler) DeleteLesson(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteLesson(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
