package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

type Handler struct {
	requestService     *service.RequestService
	tripService        *service.TripService
	maintenanceService *service.MaintenanceService
	rosterService      *service.RosterService
	log                zerolog.Logger
}

func NewHandler(
	requestService *service.RequestService,
	tripService *service.TripService,
	maintenanceService *service.MaintenanceService,
	rosterService *service.RosterService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		requestService:     requestService,
		tripService:        tripService,
		maintenanceService: maintenanceService,
		rosterService:      rosterService,
		log:                log,
	}
}

func (h *Handler) listRequests(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	opts, err := parseRequestQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	records, err := h.requestService.List(c.Request.Context(), principal, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": records}))
}

func (h *Handler) getRequest(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request id"))
		return
	}

	record, err := h.requestService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(record))
}

func (h *Handler) submitRequest(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Title       string  `json:"title" binding:"required"`
		SectorID    string  `json:"sector_id" binding:"required"`
		Details     string  `json:"details"`
		Destination *string `json:"destination"`
		Priority    string  `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	sectorID, err := uuid.Parse(strings.TrimSpace(req.SectorID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid sector_id"))
		return
	}

	input := service.SubmitRequestInput{
		Title:       req.Title,
		SectorID:    sectorID,
		Details:     req.Details,
		Destination: req.Destination,
		Priority:    model.RequestPriority(strings.ToUpper(strings.TrimSpace(req.Priority))),
	}

	request, err := h.requestService.Submit(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(request))
}

func (h *Handler) decideRequest(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request id"))
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
		Note     string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	decision := service.Decision(strings.ToUpper(strings.TrimSpace(req.Decision)))

	result, err := h.requestService.Decide(c.Request.Context(), principal, id, decision, req.Note)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) listTrips(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	opts, err := parseTripQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	records, err := h.tripService.List(c.Request.Context(), principal, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": records}))
}

func (h *Handler) getTrip(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid trip id"))
		return
	}

	details, err := h.tripService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(details))
}

type tripTransitionPayload struct {
	Mileage   *int64   `json:"mileage"`
	Notes     string   `json:"notes"`
	Checklist []string `json:"checklist"`
}

func (p tripTransitionPayload) checklistItems() []model.ChecklistItem {
	items := make([]model.ChecklistItem, 0, len(p.Checklist))
	for _, raw := range p.Checklist {
		items = append(items, model.ChecklistItem(strings.ToUpper(strings.TrimSpace(raw))))
	}
	return items
}

func (h *Handler) startTrip(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid trip id"))
		return
	}

	var req tripTransitionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := h.tripService.Start(c.Request.Context(), principal, id, service.StartTripInput{
		Mileage:   req.Mileage,
		Notes:     req.Notes,
		Checklist: req.checklistItems(),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) finishTrip(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid trip id"))
		return
	}

	var req tripTransitionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := h.tripService.Finish(c.Request.Context(), principal, id, service.FinishTripInput{
		Mileage:   req.Mileage,
		Notes:     req.Notes,
		Checklist: req.checklistItems(),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) cancelTrip(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid trip id"))
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&req)

	trip, err := h.tripService.Cancel(c.Request.Context(), principal, id, req.Note)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) addRefueling(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid trip id"))
		return
	}

	var req struct {
		Liters   float64  `json:"liters" binding:"required"`
		Odometer *int64   `json:"odometer"`
		Cost     *float64 `json:"cost"`
		Station  string   `json:"station"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	refueling, err := h.tripService.AddRefueling(c.Request.Context(), principal, id, service.RefuelingInput{
		Liters:   req.Liters,
		Odometer: req.Odometer,
		Cost:     req.Cost,
		Station:  req.Station,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(refueling))
}

func (h *Handler) listMaintenance(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	opts, err := parseMaintenanceQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	requests, err := h.maintenanceService.List(c.Request.Context(), principal, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": requests}))
}

func (h *Handler) getMaintenance(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid maintenance id"))
		return
	}

	request, err := h.maintenanceService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(request))
}

func (h *Handler) createMaintenance(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		VehicleID   string `json:"vehicle_id" binding:"required"`
		Type        string `json:"type" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicleID, err := uuid.Parse(strings.TrimSpace(req.VehicleID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle_id"))
		return
	}

	request, err := h.maintenanceService.Create(c.Request.Context(), principal, service.CreateMaintenanceInput{
		VehicleID:   vehicleID,
		Type:        model.MaintenanceType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(request))
}

func (h *Handler) updateMaintenanceStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid maintenance id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.MaintenanceStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	request, err := h.maintenanceService.UpdateStatus(c.Request.Context(), principal, id, status, req.Note)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(request))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch err {
	case service.ErrPermissionDenied:
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case service.ErrConflict:
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case service.ErrInvalidStatus, service.ErrChecklistIncomplete, service.ErrMissingMileage, service.ErrMileageDecreased:
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseRequestQuery(c *gin.Context) (service.ListRequestsOptions, error) {
	var opts service.ListRequestsOptions

	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			status := model.RequestStatus(strings.ToUpper(val))
			if !model.ValidRequestStatus(status) {
				return opts, fmt.Errorf("unknown request status %q", val)
			}
			opts.Statuses = append(opts.Statuses, status)
		}
	}
	if priorityParam := c.Query("priority"); priorityParam != "" {
		for _, val := range splitCSV(priorityParam) {
			priority := model.RequestPriority(strings.ToUpper(val))
			if !model.ValidRequestPriority(priority) {
				return opts, fmt.Errorf("unknown priority %q", val)
			}
			opts.Priorities = append(opts.Priorities, priority)
		}
	}
	if sectorID := strings.TrimSpace(c.Query("sector_id")); sectorID != "" {
		id, err := uuid.Parse(sectorID)
		if err != nil {
			return opts, err
		}
		opts.SectorID = &id
	}

	var err error
	if opts.DateFrom, opts.DateTo, err = parseDateRange(c); err != nil {
		return opts, err
	}
	opts.Limit, opts.Offset = parsePagination(c)

	return opts, nil
}

func parseTripQuery(c *gin.Context) (service.ListTripsOptions, error) {
	var opts service.ListTripsOptions

	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			status := model.TripStatus(strings.ToUpper(val))
			if !model.ValidTripStatus(status) {
				return opts, fmt.Errorf("unknown trip status %q", val)
			}
			opts.Statuses = append(opts.Statuses, status)
		}
	}
	if driverID := strings.TrimSpace(c.Query("driver_id")); driverID != "" {
		id, err := uuid.Parse(driverID)
		if err != nil {
			return opts, err
		}
		opts.DriverID = &id
	}
	if vehicleID := strings.TrimSpace(c.Query("vehicle_id")); vehicleID != "" {
		id, err := uuid.Parse(vehicleID)
		if err != nil {
			return opts, err
		}
		opts.VehicleID = &id
	}

	var err error
	if opts.DateFrom, opts.DateTo, err = parseDateRange(c); err != nil {
		return opts, err
	}
	opts.Limit, opts.Offset = parsePagination(c)
	opts.Search = strings.TrimSpace(c.Query("search"))

	return opts, nil
}

func parseMaintenanceQuery(c *gin.Context) (service.ListMaintenanceOptions, error) {
	var opts service.ListMaintenanceOptions

	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			status := model.MaintenanceStatus(strings.ToUpper(val))
			if !model.ValidMaintenanceStatus(status) {
				return opts, fmt.Errorf("unknown maintenance status %q", val)
			}
			opts.Statuses = append(opts.Statuses, status)
		}
	}
	if typeParam := c.Query("type"); typeParam != "" {
		for _, val := range splitCSV(typeParam) {
			mType := model.MaintenanceType(strings.ToUpper(val))
			if !model.ValidMaintenanceType(mType) {
				return opts, fmt.Errorf("unknown maintenance type %q", val)
			}
			opts.Types = append(opts.Types, mType)
		}
	}
	if vehicleID := strings.TrimSpace(c.Query("vehicle_id")); vehicleID != "" {
		id, err := uuid.Parse(vehicleID)
		if err != nil {
			return opts, err
		}
		opts.VehicleID = &id
	}

	var err error
	if opts.DateFrom, opts.DateTo, err = parseDateRange(c); err != nil {
		return opts, err
	}
	opts.Limit, opts.Offset = parsePagination(c)

	return opts, nil
}

func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if dateFrom := strings.TrimSpace(c.Query("date_from")); dateFrom != "" {
		ts, err := time.Parse(time.RFC3339, dateFrom)
		if err != nil {
			return nil, nil, err
		}
		from = &ts
	}
	if dateTo := strings.TrimSpace(c.Query("date_to")); dateTo != "" {
		ts, err := time.Parse(time.RFC3339, dateTo)
		if err != nil {
			return nil, nil, err
		}
		to = &ts
	}
	return from, to, nil
}

func parsePagination(c *gin.Context) (int, int) {
	var limit, offset int
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			offset = v
		}
	}
	return limit, offset
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
