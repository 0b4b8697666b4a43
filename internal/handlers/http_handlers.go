package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"golang.org/x/net/websocket"

	"giveaway/internal/broadcast"
	"giveaway/internal/models"
	"giveaway/internal/services"
	"giveaway/internal/source"
)

// HTTPHandler holds the dependencies for the HTTP and websocket handlers.
type HTTPHandler struct {
	service *services.GiveawayService
	hub     *broadcast.Hub
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(service *services.GiveawayService, hub *broadcast.Hub) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		hub:     hub,
	}
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Health)
	router.GET("/api/state", h.GetState)
	router.POST("/api/events", h.IngestEvent)
	router.GET("/ws", gin.WrapH(websocket.Handler(h.handleWS)))
}

// Health reports that the backend is up.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "Giveaway backend is running!")
}

// GetState returns the current session snapshot.
func (h *HTTPHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Snapshot())
}

// IngestEvent accepts one live event over HTTP, for relays that push via
// webhook instead of holding a websocket open. Malformed events are
// rejected here and never reach the engine.
func (h *HTTPHandler) IngestEvent(c *gin.Context) {
	var env models.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		logger.Errorf("dropping unparsable ingest payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid envelope"})
		return
	}

	ev, err := source.Decode(env)
	if err != nil {
		logger.Errorf("dropping malformed ingest event: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.service.HandleEvent(ev)
	c.Status(http.StatusAccepted)
}
