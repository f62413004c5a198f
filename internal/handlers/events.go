package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/finbook/finbook/internal/middleware"
	"github.com/finbook/finbook/internal/services"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	ledgerService *services.LedgerService
	exportService *services.ExportService
}

func NewEventHandler(ledgerService *services.LedgerService, exportService *services.ExportService) *EventHandler {
	return &EventHandler{
		ledgerService: ledgerService,
		exportService: exportService,
	}
}

type CreateEventRequest struct {
	Value int64  `json:"value" binding:"required"`
	Type  string `json:"type" binding:"required"`
}

type EventResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"userId"`
	Value     int64  `json:"value"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

type SumResponse struct {
	Sum int64 `json:"sum"`
}

// CreateEvent godoc
// @Summary Record a financial event
// @Description Append an INCOME or OUTCOME entry to the caller's ledger
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event details"
// @Success 201
// @Failure 400 {object} ErrorResponse
// @Failure 401
// @Failure 500
// @Router /financial-events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "value and type are required"})
		return
	}

	err := h.ledgerService.Record(userID, req.Value, req.Type)
	if err != nil {
		switch err {
		case services.ErrNegativeValue:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "value must be non-negative"})
		case services.ErrInvalidEventType:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "type must be INCOME or OUTCOME"})
		default:
			log.Printf("record event failed: %v", err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusCreated)
}

// ListEvents godoc
// @Summary List financial events
// @Description List the caller's financial events, newest first
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} EventResponse
// @Failure 401
// @Failure 500
// @Router /financial-events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	userID := middleware.GetUserID(c)

	events, err := h.ledgerService.Events(userID)
	if err != nil {
		log.Printf("list events failed: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]EventResponse, len(events))
	for i, event := range events {
		response[i] = EventResponse{
			ID:        event.ID,
			UserID:    event.UserID,
			Value:     event.Value,
			Type:      event.Type,
			CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, response)
}

// SumEvents godoc
// @Summary Sum financial events
// @Description Running total of the caller's ledger: INCOME adds, OUTCOME subtracts
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SumResponse
// @Failure 401
// @Failure 500
// @Router /financial-events/sum [get]
func (h *EventHandler) SumEvents(c *gin.Context) {
	userID := middleware.GetUserID(c)

	sum, err := h.ledgerService.Balance(userID)
	if err != nil {
		log.Printf("sum events failed: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, SumResponse{Sum: sum})
}

// ExportEvents godoc
// @Summary Export the ledger
// @Description Signed JSON statement of the caller's ledger
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.LedgerExport
// @Failure 401
// @Failure 500
// @Router /financial-events/export [get]
func (h *EventHandler) ExportEvents(c *gin.Context) {
	userID := middleware.GetUserID(c)

	export, err := h.exportService.Export(userID)
	if err != nil {
		log.Printf("export failed: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, export)
}
