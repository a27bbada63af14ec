package subscription

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/service/subscription"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
	"github.com/zerefharsh/amp-csr-portal/pkg/httputil"
)

type Handler struct {
	service *subscription.Service
}

func NewHandler(service *subscription.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	subs := r.Group("/subscriptions")
	{
		subs.GET("", h.ListSubscriptions)
		subs.POST("", h.CreateSubscription)
		subs.GET("/:id", h.GetSubscription)
		subs.PATCH("/:id", h.UpdateSubscription)
		subs.POST("/:id/pause", h.PauseSubscription)
		subs.POST("/:id/resume", h.ResumeSubscription)
		subs.POST("/:id/cancel", h.CancelSubscription)
		subs.POST("/:id/transfer", h.TransferSubscription)
	}
}

func (h *Handler) ListSubscriptions(c *gin.Context) {
	var filters model.SubscriptionFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}
	var page model.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	result, err := h.service.ListSubscriptions(c.Request.Context(), filters, page)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) GetSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid subscription ID"))
		return
	}

	sub, err := h.service.GetSubscription(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sub)
}

func (h *Handler) CreateSubscription(c *gin.Context) {
	var req model.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	sub, err := h.service.CreateSubscription(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, sub)
}

func (h *Handler) UpdateSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid subscription ID"))
		return
	}

	var req model.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	sub, err := h.service.UpdateSubscription(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sub)
}

func (h *Handler) PauseSubscription(c *gin.Context) {
	h.action(c, h.service.Pause)
}

func (h *Handler) ResumeSubscription(c *gin.Context) {
	h.action(c, h.service.Resume)
}

func (h *Handler) CancelSubscription(c *gin.Context) {
	h.action(c, h.service.Cancel)
}

func (h *Handler) action(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*model.SubscriptionWithDetails, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid subscription ID"))
		return
	}

	sub, err := fn(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sub)
}

func (h *Handler) TransferSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid subscription ID"))
		return
	}

	var req model.TransferSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	sub, err := h.service.TransferSubscription(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sub)
}
