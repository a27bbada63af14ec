package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/zerefharsh/amp-csr-portal/internal/service/dashboard"
	"github.com/zerefharsh/amp-csr-portal/pkg/httputil"
)

type Handler struct {
	service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/metrics", h.GetDashboardMetrics)
}

func (h *Handler) GetDashboardMetrics(c *gin.Context) {
	metrics, err := h.service.GetDashboardMetrics(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, metrics)
}
