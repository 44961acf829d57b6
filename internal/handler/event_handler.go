package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"eventbuddy/internal/errors"
	"eventbuddy/internal/model"
	"eventbuddy/internal/service"
)

// EventHandler handles event catalog endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEventRequest represents an event creation request.
type CreateEventRequest struct {
	EventName     string `json:"event_name" validate:"required"`
	Location      string `json:"location" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string `json:"time" validate:"required"`
	Description   string `json:"description"`
	TotalCapacity int    `json:"total_capacity" validate:"required,gt=0"`
}

// UpdateEventRequest represents a partial event update. Absent fields
// are left unchanged; the booked counter cannot be set through this API.
type UpdateEventRequest struct {
	EventName     *string `json:"event_name"`
	Location      *string `json:"location"`
	Date          *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time          *string `json:"time"`
	Description   *string `json:"description"`
	TotalCapacity *int    `json:"total_capacity" validate:"omitempty,gt=0"`
}

// CreateEvent godoc
// @Summary Create a new event (admin only)
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := &model.Event{
		EventName:     req.EventName,
		Location:      req.Location,
		Date:          req.Date,
		Time:          req.Time,
		Description:   req.Description,
		TotalCapacity: req.TotalCapacity,
	}

	created, err := h.eventService.CreateEvent(c.Request().Context(), event)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "event created successfully",
		"event":   created,
	})
}

// UpdateEvent godoc
// @Summary Update an event (admin only)
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body UpdateEventRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.UpdateEventInput{
		EventName:     req.EventName,
		Location:      req.Location,
		Date:          req.Date,
		Time:          req.Time,
		Description:   req.Description,
		TotalCapacity: req.TotalCapacity,
	}

	updated, err := h.eventService.UpdateEvent(c.Request().Context(), uint(id), input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "event updated successfully",
		"event":   updated,
	})
}

// DeleteEvent godoc
// @Summary Delete an event (admin only)
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.eventService.DeleteEvent(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "event deleted successfully",
	})
}

// ListEvents godoc
// @Summary List all events (admin only)
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Event
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.eventService.GetAllEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, events)
}

// ListUpcomingEvents godoc
// @Summary List upcoming events (public)
// @Tags events
// @Produce json
// @Success 200 {array} model.Event
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/upcoming [get]
func (h *EventHandler) ListUpcomingEvents(c echo.Context) error {
	events, err := h.eventService.GetUpcomingEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, events)
}

// ListPastEvents godoc
// @Summary List past events (public)
// @Tags events
// @Produce json
// @Success 200 {array} model.Event
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/past [get]
func (h *EventHandler) ListPastEvents(c echo.Context) error {
	events, err := h.eventService.GetPastEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get event details by name (public)
// @Tags events
// @Produce json
// @Param eventName path string true "Event name"
// @Success 200 {object} model.Event
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{eventName} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	name := c.Param("eventName")
	event, err := h.eventService.GetEventByName(c.Request().Context(), name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, event)
}
