package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kwikwork/internal/models"
	"kwikwork/internal/repository"
	"kwikwork/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const searchResultLimit = 20

type JobController struct {
	repo repository.JobRepository
}

func NewJobController(repo repository.JobRepository) *JobController {
	return &JobController{repo: repo}
}

type createJobRequest struct {
	Categories  []string `json:"categories" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	TimeFrom    string   `json:"time_from" binding:"required"`
	TimeTo      string   `json:"time_to" binding:"required"`
	Payment     float64  `json:"payment" binding:"required"`
	Currency    string   `json:"currency"`
}

// CreateJob godoc
// @Summary Post a new job
// @Description Creates an open job owned by the calling employer
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body createJobRequest true "Job data"
// @Success 201 {object} map[string]interface{} "Job created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Failed to create job"
// @Router /jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {
	var req createJobRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if len(req.Categories) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "At least one category is required",
			"error":   "Pick one or more job categories",
		})
		return
	}
	for _, category := range req.Categories {
		if !models.IsValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Unknown category",
				"error":   category + " is not a recognized job category",
			})
			return
		}
	}

	if strings.TrimSpace(req.Location) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Location is required",
			"error":   "Location must not be empty",
		})
		return
	}

	if req.Payment <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Payment must be positive",
			"error":   "Payment must be greater than zero",
		})
		return
	}

	duration, err := jobDuration(req.TimeFrom, req.TimeTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid time range",
			"error":   err.Error(),
		})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "ZAR"
	}

	job := models.Job{
		EmployerID:  c.GetUint("user_id"),
		Category:    models.JoinCategories(req.Categories),
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		TimeFrom:    req.TimeFrom,
		TimeTo:      req.TimeTo,
		Duration:    duration,
		Payment:     req.Payment,
		Currency:    currency,
		Status:      models.JobStatusOpen,
	}

	// The reference number is the only unique column on jobs, so a
	// duplicate-key error always means a collision; redraw and retry.
	var createErr error
	for attempt := 0; attempt < uniqueNumberAttempts; attempt++ {
		job.ReferenceNumber = utils.GenerateReferenceNumber()
		createErr = jc.repo.Create(c.Request.Context(), &job)
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if createErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create job",
			"error":   createErr.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Job created successfully",
		"data":    job,
	})
}

// jobDuration derives the advertised hours from the working window.
func jobDuration(timeFrom, timeTo string) (float64, error) {
	from, err := time.Parse("15:04", timeFrom)
	if err != nil {
		return 0, errors.New("time_from must use the HH:MM format")
	}
	to, err := time.Parse("15:04", timeTo)
	if err != nil {
		return 0, errors.New("time_to must use the HH:MM format")
	}
	duration := to.Sub(from).Hours()
	if duration <= 0 {
		return 0, errors.New("time_to must be later than time_from")
	}
	return duration, nil
}

// GetPostedJobs godoc
// @Summary List the employer's posted jobs
// @Description Returns the calling employer's jobs, newest first
// @Tags jobs
// @Produce json
// @Success 200 {object} map[string]interface{} "Jobs retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve jobs"
// @Router /jobs/mine [get]
func (jc *JobController) GetPostedJobs(c *gin.Context) {
	employerID := c.GetUint("user_id")

	jobs, err := jc.repo.FindByEmployer(c.Request.Context(), employerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve jobs",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Jobs retrieved successfully",
		"data":    jobs,
	})
}

// SearchJobs godoc
// @Summary Search open jobs
// @Description Returns up to 20 open jobs, newest first, matching the location substring and any of the given categories
// @Tags jobs
// @Produce json
// @Param location query string true "Location substring"
// @Param category query []string false "Category tags (repeatable)"
// @Success 200 {object} map[string]interface{} "Jobs retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Missing location"
// @Failure 500 {object} map[string]interface{} "Failed to search jobs"
// @Router /jobs/search [get]
func (jc *JobController) SearchJobs(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Location is required",
			"error":   "Enter a location to search",
		})
		return
	}

	var categories []string
	for _, category := range c.QueryArray("category") {
		if trimmed := strings.TrimSpace(category); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}

	jobs, err := jc.repo.SearchOpen(c.Request.Context(), location, categories, searchResultLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to search jobs",
			"error":   err.Error(),
		})
		return
	}

	// An empty result is a valid answer, not an error.
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Jobs retrieved successfully",
		"data":    jobs,
	})
}

// GetJobByID godoc
// @Summary Get a job by ID
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} map[string]interface{} "Job retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid job ID"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid job ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	job, err := jc.repo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Job not found",
				"error":   "No job exists with the provided ID",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve job",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Job retrieved successfully",
		"data":    job,
	})
}
