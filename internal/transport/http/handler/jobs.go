package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobtracker/internal/app"
	"jobtracker/internal/model"
	"jobtracker/internal/transport/http/middleware"
	"jobtracker/internal/transport/http/response"
)

type JobHandler struct {
	appService *app.ApplicationService
}

func NewJobHandler(appService *app.ApplicationService) *JobHandler {
	return &JobHandler{appService: appService}
}

type createApplicationRequest struct {
	CompanyName     string      `json:"company_name" binding:"required,max=200"`
	JobTitle        string      `json:"job_title" binding:"required,max=200"`
	JobURL          string      `json:"job_url" binding:"omitempty,url"`
	JobDescription  string      `json:"job_description" binding:"max=5000"`
	Location        string      `json:"location" binding:"max=200"`
	SalaryMin       *int        `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax       *int        `json:"salary_max" binding:"omitempty,gte=0"`
	Currency        string      `json:"currency"`
	JobType         string      `json:"job_type"`
	RemoteType      string      `json:"remote_type"`
	ApplicationDate *model.Date `json:"application_date"`
	Deadline        *model.Date `json:"deadline"`
	Status          string      `json:"status"`
	Priority        string      `json:"priority"`
	Notes           string      `json:"notes" binding:"max=2000"`
	ReferralName    string      `json:"referral_name" binding:"max=100"`
	ContactEmail    string      `json:"contact_email" binding:"omitempty,email"`
	ContactPerson   string      `json:"contact_person" binding:"max=100"`
}

type updateApplicationRequest struct {
	CompanyName     *string     `json:"company_name" binding:"omitempty,max=200"`
	JobTitle        *string     `json:"job_title" binding:"omitempty,max=200"`
	JobURL          *string     `json:"job_url" binding:"omitempty,url"`
	JobDescription  *string     `json:"job_description" binding:"omitempty,max=5000"`
	Location        *string     `json:"location" binding:"omitempty,max=200"`
	SalaryMin       *int        `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax       *int        `json:"salary_max" binding:"omitempty,gte=0"`
	Currency        *string     `json:"currency"`
	JobType         *string     `json:"job_type"`
	RemoteType      *string     `json:"remote_type"`
	ApplicationDate *model.Date `json:"application_date"`
	Deadline        *model.Date `json:"deadline"`
	Status          *string     `json:"status"`
	Priority        *string     `json:"priority"`
	Notes           *string     `json:"notes" binding:"omitempty,max=2000"`
	ReferralName    *string     `json:"referral_name" binding:"omitempty,max=100"`
	ContactEmail    *string     `json:"contact_email" binding:"omitempty,email"`
	ContactPerson   *string     `json:"contact_person" binding:"omitempty,max=100"`
}

// applicationView is an Application plus its read-time derived field.
type applicationView struct {
	*model.Application
	DaysSinceApplied *int `json:"days_since_applied,omitempty"`
}

func newApplicationView(a *model.Application) applicationView {
	return applicationView{Application: a, DaysSinceApplied: a.DaysSinceApplied()}
}

type paginatedApplications struct {
	Items       []applicationView `json:"items"`
	Total       int64             `json:"total"`
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
	Pages       int               `json:"pages"`
	HasNext     bool              `json:"has_next"`
	HasPrevious bool              `json:"has_previous"`
}

func (h *JobHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid page parameter")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid limit parameter")
		return
	}

	apps, total, err := h.appService.List(app.ListApplicationsInput{
		Page:        page,
		Limit:       limit,
		Status:      c.Query("status"),
		CompanyName: c.Query("company_name"),
		OwnerID:     middleware.UserIDFromContext(c),
	})
	if err != nil {
		if errors.Is(err, app.ErrValidation) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "error retrieving applications")
		return
	}

	items := make([]applicationView, 0, len(apps))
	for i := range apps {
		items = append(items, newApplicationView(&apps[i]))
	}

	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	c.JSON(http.StatusOK, paginatedApplications{
		Items:       items,
		Total:       total,
		Page:        page,
		Limit:       limit,
		Pages:       pages,
		HasNext:     page < pages,
		HasPrevious: page > 1,
	})
}

func (h *JobHandler) Create(c *gin.Context) {
	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	created, err := h.appService.Create(app.CreateApplicationInput{
		CompanyName:     req.CompanyName,
		JobTitle:        req.JobTitle,
		JobURL:          req.JobURL,
		JobDescription:  req.JobDescription,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Currency:        req.Currency,
		JobType:         req.JobType,
		RemoteType:      req.RemoteType,
		ApplicationDate: req.ApplicationDate,
		Deadline:        req.Deadline,
		Status:          req.Status,
		Priority:        req.Priority,
		Notes:           req.Notes,
		ReferralName:    req.ReferralName,
		ContactEmail:    req.ContactEmail,
		ContactPerson:   req.ContactPerson,
	}, middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, app.ErrValidation) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusBadRequest, "error creating application")
		return
	}

	response.Created(c, "Application created successfully", newApplicationView(created))
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.appService.Get(id, middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, app.ErrApplicationNotFound) {
			response.Error(c, http.StatusNotFound, "Application not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "error retrieving application")
		return
	}

	response.OK(c, "Application retrieved successfully", newApplicationView(found))
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	updated, err := h.appService.Update(id, app.UpdateApplicationInput{
		CompanyName:     req.CompanyName,
		JobTitle:        req.JobTitle,
		JobURL:          req.JobURL,
		JobDescription:  req.JobDescription,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Currency:        req.Currency,
		JobType:         req.JobType,
		RemoteType:      req.RemoteType,
		ApplicationDate: req.ApplicationDate,
		Deadline:        req.Deadline,
		Status:          req.Status,
		Priority:        req.Priority,
		Notes:           req.Notes,
		ReferralName:    req.ReferralName,
		ContactEmail:    req.ContactEmail,
		ContactPerson:   req.ContactPerson,
	}, middleware.UserIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyUpdate):
			response.Error(c, http.StatusBadRequest, "No fields provided for update")
		case errors.Is(err, app.ErrValidation):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrApplicationNotFound):
			response.Error(c, http.StatusNotFound, "Application not found")
		default:
			response.Error(c, http.StatusBadRequest, "error updating application")
		}
		return
	}

	response.OK(c, "Application updated successfully", newApplicationView(updated))
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.appService.Delete(id, middleware.UserIDFromContext(c)); err != nil {
		if errors.Is(err, app.ErrApplicationNotFound) {
			response.Error(c, http.StatusNotFound, "Application not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "error deleting application")
		return
	}

	response.OK(c, "Application deleted successfully", gin.H{"deleted_id": id})
}

func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.appService.Stats(middleware.UserIDFromContext(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "error retrieving statistics")
		return
	}

	response.OK(c, "Statistics retrieved successfully", gin.H{
		"total_applications":     stats.Total,
		"applications_by_status": stats.ByStatus,
	})
}

func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid application id")
		return 0, false
	}
	return uint(id), true
}
