package http

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/globalvoice/esim-balance/internal/apierror"
	"github.com/globalvoice/esim-balance/internal/config"
	"github.com/globalvoice/esim-balance/internal/iccid"
	"github.com/globalvoice/esim-balance/internal/models"
	"github.com/globalvoice/esim-balance/internal/service"
)

type Handler struct {
	cfg            *config.Config
	balanceService *service.BalanceService
	plansService   *service.PlansService
}

func NewHandler(cfg *config.Config, balanceService *service.BalanceService, plansService *service.PlansService) *Handler {
	return &Handler{
		cfg:            cfg,
		balanceService: balanceService,
		plansService:   plansService,
	}
}

// Health reports liveness and the running version.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Ok:      true,
		Ver:     h.cfg.Server.Version,
		Service: "esim-balance",
	})
}

// Balance proxies the usage API verbatim: upstream status and body are
// echoed without reshaping.
func (h *Handler) Balance(c *gin.Context) {
	id, err := iccid.Extract(h.source(c), h.cfg.ICCID.MinLen, h.cfg.ICCID.MaxLen)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.balanceService.RawUsage(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(res.Status, "application/json", res.Body)
}

// BalanceClean returns the normalized usage shape. Upstream non-success
// answers still pass through verbatim; only a successful but unparsable
// payload becomes a typed error.
func (h *Handler) BalanceClean(c *gin.Context) {
	id, err := iccid.Extract(h.source(c), h.cfg.ICCID.MinLen, h.cfg.ICCID.MaxLen)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.balanceService.RawUsage(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if res.Status < 200 || res.Status >= 300 {
		c.Data(res.Status, "application/json", res.Body)
		return
	}

	clean, err := h.balanceService.Normalize(res.Body)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, clean)
}

// PlansByDestination accepts destination and limit from the body or the
// query string and returns the matched coverage plus the ordered plan list.
func (h *Handler) PlansByDestination(c *gin.Context) {
	var q models.PlansQuery
	if body, err := io.ReadAll(c.Request.Body); err == nil && len(body) > 0 {
		// Tolerate non-JSON bodies: the query string still applies.
		if err := json.Unmarshal(body, &q); err != nil {
			log.Printf("[Handler] Plans body is not JSON, falling back to query params: %v", err)
		}
	}

	if q.Destination == "" {
		q.Destination = c.Query("destination")
	}

	limit := q.LimitValue()
	if limit == 0 {
		limit, _ = strconv.Atoi(c.Query("limit"))
	}

	resp, err := h.plansService.PlansByDestination(c.Request.Context(), q.Destination, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// source assembles the extractor's view of the request. The body is consumed
// here; nothing downstream reads it again.
func (h *Handler) source(c *gin.Context) iccid.Source {
	body, _ := io.ReadAll(c.Request.Body)
	return iccid.Source{
		PathParam: c.Param("iccid"),
		Query:     c.Request.URL.Query(),
		Header:    c.Request.Header,
		Body:      body,
	}
}

func writeError(c *gin.Context, err error) {
	ae := apierror.From(err)
	if ae.Kind == apierror.ProxyError {
		log.Printf("[Handler] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(ae.Status(), ae.Body())
}
