package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

func (h *Handler) listEmployees(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var filter repository.EmployeeFilter
	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			status := model.EmployeeStatus(strings.ToUpper(val))
			if !model.ValidEmployeeStatus(status) {
				c.JSON(http.StatusBadRequest, errorResponse(fmt.Sprintf("unknown employee status %q", val)))
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if sectorID := strings.TrimSpace(c.Query("sector_id")); sectorID != "" {
		id, err := uuid.Parse(sectorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid sector_id"))
			return
		}
		filter.SectorID = &id
	}
	if canDrive := strings.TrimSpace(c.Query("can_drive")); canDrive != "" {
		v := canDrive == "true"
		filter.CanDrive = &v
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Limit, filter.Offset = parsePagination(c)

	employees, err := h.rosterService.ListEmployees(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": employees}))
}

func (h *Handler) getEmployee(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid employee id"))
		return
	}

	employee, err := h.rosterService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(employee))
}

type employeePayload struct {
	FullName        string     `json:"full_name" binding:"required"`
	JobTitle        string     `json:"job_title"`
	CanDrive        bool       `json:"can_drive"`
	SectorID        string     `json:"sector_id" binding:"required"`
	LicenseNumber   *string    `json:"license_number"`
	LicenseCategory *string    `json:"license_category"`
	LicenseExpiry   *time.Time `json:"license_expiry"`
}

func (h *Handler) createEmployee(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req employeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	sectorID, err := uuid.Parse(strings.TrimSpace(req.SectorID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid sector_id"))
		return
	}

	employee, err := h.rosterService.CreateEmployee(c.Request.Context(), principal, service.CreateEmployeeInput{
		FullName:        req.FullName,
		JobTitle:        req.JobTitle,
		CanDrive:        req.CanDrive,
		SectorID:        sectorID,
		LicenseNumber:   req.LicenseNumber,
		LicenseCategory: req.LicenseCategory,
		LicenseExpiry:   req.LicenseExpiry,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(employee))
}

func (h *Handler) updateEmployee(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid employee id"))
		return
	}

	var req struct {
		FullName        *string    `json:"full_name"`
		JobTitle        *string    `json:"job_title"`
		CanDrive        *bool      `json:"can_drive"`
		SectorID        *string    `json:"sector_id"`
		LicenseNumber   *string    `json:"license_number"`
		LicenseCategory *string    `json:"license_category"`
		LicenseExpiry   *time.Time `json:"license_expiry"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.UpdateEmployeeInput{
		FullName:        req.FullName,
		JobTitle:        req.JobTitle,
		CanDrive:        req.CanDrive,
		LicenseNumber:   req.LicenseNumber,
		LicenseCategory: req.LicenseCategory,
		LicenseExpiry:   req.LicenseExpiry,
	}
	if req.SectorID != nil {
		sectorID, err := uuid.Parse(strings.TrimSpace(*req.SectorID))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid sector_id"))
			return
		}
		input.SectorID = &sectorID
	}

	employee, err := h.rosterService.UpdateEmployee(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(employee))
}

func (h *Handler) updateEmployeeStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid employee id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.EmployeeStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	if err := h.rosterService.SetEmployeeStatus(c.Request.Context(), principal, id, status); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "updated"}))
}

func (h *Handler) listVehicles(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var filter repository.VehicleFilter
	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			status := model.VehicleStatus(strings.ToUpper(val))
			if !model.ValidVehicleStatus(status) {
				c.JSON(http.StatusBadRequest, errorResponse(fmt.Sprintf("unknown vehicle status %q", val)))
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if sectorID := strings.TrimSpace(c.Query("sector_id")); sectorID != "" {
		id, err := uuid.Parse(sectorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid sector_id"))
			return
		}
		filter.SectorID = &id
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Limit, filter.Offset = parsePagination(c)

	vehicles, err := h.rosterService.ListVehicles(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": vehicles}))
}

func (h *Handler) getVehicle(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle id"))
		return
	}

	vehicle, err := h.rosterService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) createVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Model    string `json:"model" binding:"required"`
		Plate    string `json:"plate" binding:"required"`
		SectorID string `json:"sector_id" binding:"required"`
		Mileage  int64  `json:"mileage"`
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

	vehicle, err := h.rosterService.CreateVehicle(c.Request.Context(), principal, service.CreateVehicleInput{
		Model:    req.Model,
		Plate:    req.Plate,
		SectorID: sectorID,
		Mileage:  req.Mileage,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) updateVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle id"))
		return
	}

	var req struct {
		Model    *string `json:"model"`
		SectorID *string `json:"sector_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.UpdateVehicleInput{Model: req.Model}
	if req.SectorID != nil {
		sectorID, err := uuid.Parse(strings.TrimSpace(*req.SectorID))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid sector_id"))
			return
		}
		input.SectorID = &sectorID
	}

	vehicle, err := h.rosterService.UpdateVehicle(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) updateVehicleStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.VehicleStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	if err := h.rosterService.SetVehicleStatus(c.Request.Context(), principal, id, status); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "updated"}))
}

func (h *Handler) listSectors(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	summaries, err := h.rosterService.ListSectors(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": summaries}))
}

func (h *Handler) createSector(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	sector, err := h.rosterService.CreateSector(c.Request.Context(), principal, service.CreateSectorInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(sector))
}

func (h *Handler) updateSector(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid sector id"))
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	sector, err := h.rosterService.UpdateSector(c.Request.Context(), principal, id, service.UpdateSectorInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(sector))
}
