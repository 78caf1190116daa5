package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/updateos/binmgr/internal/binmgr"
	"github.com/updateos/binmgr/internal/infrastructure/logging"
	"github.com/updateos/binmgr/internal/mq"
	"github.com/updateos/binmgr/internal/registry"
	"github.com/updateos/binmgr/internal/shared/paths"
	"github.com/updateos/binmgr/internal/shared/types"
)

// Handlers bundles the API's dependencies.
type Handlers struct {
	manager  *binmgr.Manager
	registry registry.Registry
	broker   *mq.Broker
	logger   *logging.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(manager *binmgr.Manager, reg registry.Registry, broker *mq.Broker, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		manager:  manager,
		registry: reg,
		broker:   broker,
		logger:   logger,
	}
}

// Root returns the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "binmgr",
		"status":  "running",
	})
}

// Health is the liveness probe.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"slots":  h.registry.Count(),
	})
}

// Scan runs the directory scan and reports the slot count afterwards.
func (h *Handlers) Scan(c *gin.Context) {
	h.manager.ScanAll()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"slots":   h.registry.Count(),
	})
}

// CreateEntry handles an update request. The body returns the result code
// synchronously; the authoritative response lands on the requester's
// channel.
func (h *Handlers) CreateEntry(c *gin.Context) {
	var req types.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request: " + err.Error(),
		})
		return
	}

	result := h.manager.CreateEntry(req.RequesterID, req.Name, req.Version)

	h.logger.Info("create entry handled",
		zap.Int("requester_id", req.RequesterID),
		zap.String("name", req.Name),
		zap.Int("version", req.Version),
		zap.Stringer("result", result),
	)

	c.JSON(statusFor(result), gin.H{
		"success": result.OK(),
		"result":  result,
	})
}

// Activate flips a slot's active version. This is the second phase of the
// update protocol, owned by the activation subsystem.
func (h *Handlers) Activate(c *gin.Context) {
	name := c.Param("name")

	var req struct {
		Version int `json:"version"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request: " + err.Error(),
		})
		return
	}

	if err := h.registry.Activate(name, req.Version); err != nil {
		status := http.StatusInternalServerError
		if err == registry.ErrSlotNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    name,
		"version": req.Version,
	})
}

// DrainResponse pops one response message from the requester's channel.
func (h *Handlers) DrainResponse(c *gin.Context) {
	requesterID, err := strconv.Atoi(c.Param("requester_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "requester_id must be an integer",
		})
		return
	}

	payload, ok := h.broker.Receive(paths.ResponseChannel(requesterID))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "no pending response",
		})
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// ListSlots lists all registered slots.
func (h *Handlers) ListSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"slots":   h.registry.Slots(),
	})
}

// statusFor maps a result code to an HTTP status.
func statusFor(result types.Result) int {
	switch result {
	case types.ResultOK, types.ResultAlreadyUpdated:
		return http.StatusOK
	case types.ResultInvalidParam:
		return http.StatusBadRequest
	case types.ResultNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
