package member

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/service/member"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
	"github.com/zerefharsh/amp-csr-portal/pkg/httputil"
)

type Handler struct {
	service *member.Service
}

func NewHandler(service *member.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	members := r.Group("/members")
	{
		members.GET("", h.ListMembers)
		members.GET("/:id", h.GetMember)
		members.PATCH("/:id", h.UpdateMember)
		members.GET("/:id/vehicles", h.ListVehicles)
		members.POST("/:id/vehicles", h.AddVehicle)
	}
}

func (h *Handler) ListMembers(c *gin.Context) {
	var filters model.MemberFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}
	var page model.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	result, err := h.service.ListMembers(c.Request.Context(), filters, page)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) GetMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid member ID"))
		return
	}

	detail, err := h.service.GetMember(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, detail)
}

func (h *Handler) UpdateMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid member ID"))
		return
	}

	var req model.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	updated, err := h.service.UpdateMember(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) ListVehicles(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid member ID"))
		return
	}

	vehicles, err := h.service.ListVehicles(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, vehicles)
}

func (h *Handler) AddVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid member ID"))
		return
	}

	var req model.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	vehicle, err := h.service.AddVehicle(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, vehicle)
}
