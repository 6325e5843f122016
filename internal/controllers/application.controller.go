package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"kwikwork/internal/cache"
	"kwikwork/internal/events"
	"kwikwork/internal/repository"
	"kwikwork/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ApplicationController struct {
	repo      repository.ApplicationRepository
	userRepo  repository.UserRepository
	guard     cache.ActionGuard
	publisher events.Publisher
	notifier  *services.Notifier
}

func NewApplicationController(
	repo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	guard cache.ActionGuard,
	publisher events.Publisher,
	notifier *services.Notifier,
) *ApplicationController {
	return &ApplicationController{
		repo:      repo,
		userRepo:  userRepo,
		guard:     guard,
		publisher: publisher,
		notifier:  notifier,
	}
}

// acquireAction turns away a second identical request while one is still in
// flight for the same caller and target. A guard outage never blocks the
// action; the transactional write path holds the invariants on its own.
func (ac *ApplicationController) acquireAction(c *gin.Context, action string, targetID uint) (release func(), ok bool) {
	if ac.guard == nil {
		return func() {}, true
	}

	key := cache.ActionKey(c.GetUint("user_id"), action, targetID)
	acquired, err := ac.guard.Acquire(c.Request.Context(), key)
	if err != nil {
		log.Printf("Action guard unavailable for %s: %v", key, err)
		return func() {}, true
	}
	if !acquired {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"status":  "error",
			"message": "This action is already in progress",
			"error":   "Wait for the previous request to finish",
		})
		return nil, false
	}
	return func() { ac.guard.Release(c.Request.Context(), key) }, true
}

func (ac *ApplicationController) publishEvent(c *gin.Context, name string, payload map[string]interface{}) {
	if ac.publisher == nil {
		return
	}
	if err := ac.publisher.Publish(c.Request.Context(), name, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", name, err)
	}
}

func (ac *ApplicationController) notify(recipient, subject, message string) {
	if ac.notifier == nil || recipient == "" {
		return
	}
	ac.notifier.Enqueue(services.Notification{
		Recipient: recipient,
		Subject:   subject,
		Message:   message,
	})
}

// SubmitApplication godoc
// @Summary Apply for a job
// @Description Creates a pending application for the calling seeker; a seeker can hold at most one application per job
// @Tags applications
// @Produce json
// @Param id path int true "Job ID"
// @Success 201 {object} map[string]interface{} "Application submitted"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Failure 409 {object} map[string]interface{} "Duplicate application or job filled"
// @Router /jobs/{id}/applications [post]
func (ac *ApplicationController) SubmitApplication(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid job ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	release, ok := ac.acquireAction(c, "submit", uint(jobID))
	if !ok {
		return
	}
	defer release()

	seeker, err := ac.userRepo.FindByID(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists for this session",
		})
		return
	}

	app, err := ac.repo.SubmitForJob(c.Request.Context(), uint(jobID), seeker)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Job not found",
				"error":   "No job exists with the provided ID",
			})
		case errors.Is(err, repository.ErrDuplicateApplication):
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "You have already applied for this job",
				"error":   "Only one application per job is allowed",
			})
		case errors.Is(err, repository.ErrJobFilled):
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Job is no longer open",
				"error":   "This job has already been filled",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to submit application",
				"error":   err.Error(),
			})
		}
		return
	}

	ac.publishEvent(c, events.ApplicationSubmitted, map[string]interface{}{
		"application_id":   app.ID,
		"job_id":           app.JobID,
		"reference_number": app.ReferenceNumber,
		"user_number":      app.UserNumber,
	})
	ac.notify(app.Email, "Application received",
		fmt.Sprintf("Your application for job %s has been received and is pending review.", app.ReferenceNumber))

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Application submitted successfully",
		"data":    app,
	})
}

// GetMyApplications godoc
// @Summary List the seeker's applications
// @Description Returns the calling seeker's applications with their job details
// @Tags applications
// @Produce json
// @Success 200 {object} map[string]interface{} "Applications retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve applications"
// @Router /applications/mine [get]
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	seeker, err := ac.userRepo.FindByID(c.Request.Context(), c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists for this session",
		})
		return
	}

	apps, err := ac.repo.FindByUserNumber(c.Request.Context(), seeker.UserNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve applications",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Applications retrieved successfully",
		"data":    apps,
	})
}

// GetPendingApplicants godoc
// @Summary List pending applicants
// @Description Returns pending applications across the calling employer's jobs, with each seeker's card
// @Tags applications
// @Produce json
// @Success 200 {object} map[string]interface{} "Applicants retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve applicants"
// @Router /applications/pending [get]
func (ac *ApplicationController) GetPendingApplicants(c *gin.Context) {
	employerID := c.GetUint("user_id")

	apps, err := ac.repo.FindPendingByEmployer(c.Request.Context(), employerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve applicants",
			"error":   err.Error(),
		})
		return
	}

	applicants := make([]gin.H, 0, len(apps))
	for _, app := range apps {
		entry := gin.H{
			"application":      app,
			"reference_number": app.ReferenceNumber,
		}
		if seeker, err := ac.userRepo.FindByUserNumber(c.Request.Context(), app.UserNumber); err == nil {
			entry["seeker_name"] = seeker.Name
			entry["profile_pic"] = seeker.ProfilePic
		}
		applicants = append(applicants, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Applicants retrieved successfully",
		"data":    applicants,
	})
}

// ApproveApplication godoc
// @Summary Approve an application
// @Description Approves one application, rejects every competing application for the job, and marks the job filled, as a single transaction
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]interface{} "Application approved"
// @Failure 403 {object} map[string]interface{} "Not the owning employer"
// @Failure 404 {object} map[string]interface{} "Application not found"
// @Failure 409 {object} map[string]interface{} "Job filled or application not pending"
// @Router /applications/{id}/approve [post]
func (ac *ApplicationController) ApproveApplication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid application ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	release, ok := ac.acquireAction(c, "approve", uint(id))
	if !ok {
		return
	}
	defer release()

	approved, rejected, err := ac.repo.Approve(c.Request.Context(), uint(id), c.GetUint("user_id"))
	if err != nil {
		ac.respondLifecycleError(c, err, "Failed to approve application")
		return
	}

	ac.publishEvent(c, events.ApplicationApproved, map[string]interface{}{
		"application_id":   approved.ID,
		"job_id":           approved.JobID,
		"reference_number": approved.ReferenceNumber,
		"user_number":      approved.UserNumber,
	})
	ac.publishEvent(c, events.JobFilled, map[string]interface{}{
		"job_id":           approved.JobID,
		"reference_number": approved.ReferenceNumber,
	})

	ac.notify(approved.Email, "Application approved",
		fmt.Sprintf("Congratulations! Your application for job %s has been approved.", approved.ReferenceNumber))
	for _, sibling := range rejected {
		ac.notify(sibling.Email, "Application update",
			fmt.Sprintf("Your application for job %s was not successful this time.", sibling.ReferenceNumber))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Application approved; job is now filled",
		"data": gin.H{
			"application":    approved,
			"rejected_count": len(rejected),
		},
	})
}

// RejectApplication godoc
// @Summary Reject an application
// @Description Moves one pending application to rejected; the job stays open
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]interface{} "Application rejected"
// @Failure 403 {object} map[string]interface{} "Not the owning employer"
// @Failure 404 {object} map[string]interface{} "Application not found"
// @Failure 409 {object} map[string]interface{} "Application not pending"
// @Router /applications/{id}/reject [post]
func (ac *ApplicationController) RejectApplication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid application ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	release, ok := ac.acquireAction(c, "reject", uint(id))
	if !ok {
		return
	}
	defer release()

	app, err := ac.repo.Reject(c.Request.Context(), uint(id), c.GetUint("user_id"))
	if err != nil {
		ac.respondLifecycleError(c, err, "Failed to reject application")
		return
	}

	ac.publishEvent(c, events.ApplicationRejected, map[string]interface{}{
		"application_id":   app.ID,
		"job_id":           app.JobID,
		"reference_number": app.ReferenceNumber,
		"user_number":      app.UserNumber,
	})
	ac.notify(app.Email, "Application update",
		fmt.Sprintf("Your application for job %s was not successful this time.", app.ReferenceNumber))

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Application rejected",
		"data":    app,
	})
}

func (ac *ApplicationController) respondLifecycleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Application not found",
			"error":   "No application exists with the provided ID",
		})
	case errors.Is(err, repository.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Not your applicant",
			"error":   "This application belongs to another employer's job",
		})
	case errors.Is(err, repository.ErrJobFilled):
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Job is already filled",
			"error":   "An applicant has already been approved for this job",
		})
	case errors.Is(err, repository.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Application is no longer pending",
			"error":   "Only pending applications can be decided",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fallback,
			"error":   err.Error(),
		})
	}
}
