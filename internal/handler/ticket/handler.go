package ticket

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/service/ticket"
	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
	"github.com/zerefharsh/amp-csr-portal/pkg/httputil"
)

type Handler struct {
	service *ticket.Service
}

func NewHandler(service *ticket.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tickets := r.Group("/tickets")
	{
		tickets.GET("", h.ListTickets)
		tickets.POST("", h.CreateTicket)
		tickets.GET("/:id", h.GetTicket)
		tickets.PATCH("/:id", h.UpdateTicket)
	}
}

func (h *Handler) ListTickets(c *gin.Context) {
	var filters model.TicketFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	tickets, err := h.service.ListTickets(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tickets)
}

func (h *Handler) GetTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid ticket ID"))
		return
	}

	t, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, t)
}

func (h *Handler) CreateTicket(c *gin.Context) {
	var req model.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	t, err := h.service.CreateTicket(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, t)
}

func (h *Handler) UpdateTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperror.Validationf("invalid ticket ID"))
		return
	}

	var req model.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindError(c, err)
		return
	}

	t, err := h.service.UpdateTicket(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, t)
}
