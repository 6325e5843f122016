package controllers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kwikwork/internal/controllers"
	"kwikwork/internal/mocks"
	"kwikwork/internal/models"
	"kwikwork/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Test helper functions
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func addAuthMiddleware(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("email", "test@example.com")
		c.Set("role", role)
		c.Next()
	}
}

func setupApplicationControllerWithMocks() (*controllers.ApplicationController, *mocks.MockApplicationRepository, *mocks.MockUserRepository) {
	mockAppRepo := new(mocks.MockApplicationRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	controller := controllers.NewApplicationController(mockAppRepo, mockUserRepo, nil, nil, nil)
	return controller, mockAppRepo, mockUserRepo
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	return response
}

func TestSubmitApplication(t *testing.T) {
	seeker := &models.User{
		Model:      gorm.Model{ID: 7},
		Name:       "Thabo",
		Email:      "thabo@example.com",
		Role:       models.RoleSeeker,
		UserNumber: "U-100001",
	}

	tests := []struct {
		name           string
		jobID          string
		setupMocks     func(*mocks.MockApplicationRepository, *mocks.MockUserRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:  "successful submission",
			jobID: "1",
			setupMocks: func(appRepo *mocks.MockApplicationRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByID", mock.Anything, uint(7)).Return(seeker, nil)
				appRepo.On("SubmitForJob", mock.Anything, uint(1), seeker).Return(&models.Application{
					Model:           gorm.Model{ID: 11},
					JobID:           1,
					UserNumber:      seeker.UserNumber,
					Email:           seeker.Email,
					ReferenceNumber: "KW-000001",
					Status:          models.ApplicationStatusPending,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Application submitted successfully",
		},
		{
			name:  "duplicate application",
			jobID: "1",
			setupMocks: func(appRepo *mocks.MockApplicationRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByID", mock.Anything, uint(7)).Return(seeker, nil)
				appRepo.On("SubmitForJob", mock.Anything, uint(1), seeker).
					Return(nil, repository.ErrDuplicateApplication)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "You have already applied for this job",
		},
		{
			name:  "job already filled",
			jobID: "1",
			setupMocks: func(appRepo *mocks.MockApplicationRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByID", mock.Anything, uint(7)).Return(seeker, nil)
				appRepo.On("SubmitForJob", mock.Anything, uint(1), seeker).
					Return(nil, repository.ErrJobFilled)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Job is no longer open",
		},
		{
			name:  "job not found",
			jobID: "99",
			setupMocks: func(appRepo *mocks.MockApplicationRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByID", mock.Anything, uint(7)).Return(seeker, nil)
				appRepo.On("SubmitForJob", mock.Anything, uint(99), seeker).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Job not found",
		},
		{
			name:           "invalid job id",
			jobID:          "abc",
			setupMocks:     func(*mocks.MockApplicationRepository, *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid job ID",
		},
		{
			name:  "persistence failure",
			jobID: "1",
			setupMocks: func(appRepo *mocks.MockApplicationRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByID", mock.Anything, uint(7)).Return(seeker, nil)
				appRepo.On("SubmitForJob", mock.Anything, uint(1), seeker).
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to submit application",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockAppRepo, mockUserRepo := setupApplicationControllerWithMocks()
			tt.setupMocks(mockAppRepo, mockUserRepo)

			router := setupTestRouter()
			router.POST("/jobs/:id/applications", addAuthMiddleware(7, models.RoleSeeker), controller.SubmitApplication)

			req := httptest.NewRequest(http.MethodPost, "/jobs/"+tt.jobID+"/applications", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)
			assert.Equal(t, tt.expectedMsg, response["message"])
			mockAppRepo.AssertExpectations(t)
		})
	}
}

func TestSubmitApplicationInFlightDuplicate(t *testing.T) {
	mockAppRepo := new(mocks.MockApplicationRepository)
	mockUserRepo := new(mocks.MockUserRepository)
	mockGuard := new(mocks.MockActionGuard)
	controller := controllers.NewApplicationController(mockAppRepo, mockUserRepo, mockGuard, nil, nil)

	mockGuard.On("Acquire", mock.Anything, "inflight:7:submit:1").Return(false, nil)

	router := setupTestRouter()
	router.POST("/jobs/:id/applications", addAuthMiddleware(7, models.RoleSeeker), controller.SubmitApplication)

	req := httptest.NewRequest(http.MethodPost, "/jobs/1/applications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	// The guarded action never reaches the repositories.
	mockAppRepo.AssertNotCalled(t, "SubmitForJob", mock.Anything, mock.Anything, mock.Anything)
	mockGuard.AssertExpectations(t)
}

func TestApproveApplication(t *testing.T) {
	approved := &models.Application{
		Model:           gorm.Model{ID: 21},
		JobID:           5,
		UserNumber:      "U-100001",
		EmployerID:      3,
		Email:           "winner@example.com",
		ReferenceNumber: "KW-000005",
		Status:          models.ApplicationStatusApproved,
	}
	rejected := []models.Application{
		{Model: gorm.Model{ID: 22}, JobID: 5, Email: "other@example.com", Status: models.ApplicationStatusRejected},
	}

	tests := []struct {
		name           string
		applicationID  string
		setupMocks     func(*mocks.MockApplicationRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:          "successful approval rejects siblings and fills the job",
			applicationID: "21",
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.On("Approve", mock.Anything, uint(21), uint(3)).Return(approved, rejected, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Application approved; job is now filled",
		},
		{
			name:          "application not found",
			applicationID: "99",
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.On("Approve", mock.Anything, uint(99), uint(3)).
					Return(nil, nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Application not found",
		},
		{
			name:          "another employer's applicant",
			applicationID: "21",
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.On("Approve", mock.Anything, uint(21), uint(3)).
					Return(nil, nil, repository.ErrNotOwner)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Not your applicant",
		},
		{
			name:          "job already filled by a prior approval",
			applicationID: "22",
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.On("Approve", mock.Anything, uint(22), uint(3)).
					Return(nil, nil, repository.ErrJobFilled)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Job is already filled",
		},
		{
			name:          "application no longer pending",
			applicationID: "22",
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.On("Approve", mock.Anything, uint(22), uint(3)).
					Return(nil, nil, repository.ErrInvalidStateTransition)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Application is no longer pending",
		},
		{
			name:          "persistence failure leaves no partial state visible",
			applicationID: "21",
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.On("Approve", mock.Anything, uint(21), uint(3)).
					Return(nil, nil, errors.New("deadlock detected"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Failed to approve application",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockAppRepo, _ := setupApplicationControllerWithMocks()
			tt.setupMocks(mockAppRepo)

			router := setupTestRouter()
			router.POST("/applications/:id/approve", addAuthMiddleware(3, models.RoleEmployer), controller.ApproveApplication)

			req := httptest.NewRequest(http.MethodPost, "/applications/"+tt.applicationID+"/approve", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)
			assert.Equal(t, tt.expectedMsg, response["message"])
			mockAppRepo.AssertExpectations(t)
		})
	}
}

func TestApproveApplicationReportsRejectedCount(t *testing.T) {
	approved := &models.Application{
		Model:  gorm.Model{ID: 21},
		JobID:  5,
		Status: models.ApplicationStatusApproved,
	}
	rejected := []models.Application{
		{Model: gorm.Model{ID: 22}, JobID: 5, Status: models.ApplicationStatusRejected},
		{Model: gorm.Model{ID: 23}, JobID: 5, Status: models.ApplicationStatusRejected},
	}

	controller, mockAppRepo, _ := setupApplicationControllerWithMocks()
	mockAppRepo.On("Approve", mock.Anything, uint(21), uint(3)).Return(approved, rejected, nil)

	router := setupTestRouter()
	router.POST("/applications/:id/approve", addAuthMiddleware(3, models.RoleEmployer), controller.ApproveApplication)

	req := httptest.NewRequest(http.MethodPost, "/applications/21/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["rejected_count"])
}

func TestRejectApplication(t *testing.T) {
	rejected := &models.Application{
		Model:           gorm.Model{ID: 31},
		JobID:           5,
		EmployerID:      3,
		Email:           "someone@example.com",
		ReferenceNumber: "KW-000005",
		Status:          models.ApplicationStatusRejected,
	}

	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockApplicationRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful rejection",
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.On("Reject", mock.Anything, uint(31), uint(3)).Return(rejected, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Application rejected",
		},
		{
			name: "double reject is an error, not a no-op",
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.On("Reject", mock.Anything, uint(31), uint(3)).
					Return(nil, repository.ErrInvalidStateTransition)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Application is no longer pending",
		},
		{
			name: "rejecting an approved application fails",
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.On("Reject", mock.Anything, uint(31), uint(3)).
					Return(nil, repository.ErrInvalidStateTransition)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Application is no longer pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockAppRepo, _ := setupApplicationControllerWithMocks()
			tt.setupMocks(mockAppRepo)

			router := setupTestRouter()
			router.POST("/applications/:id/reject", addAuthMiddleware(3, models.RoleEmployer), controller.RejectApplication)

			req := httptest.NewRequest(http.MethodPost, "/applications/31/reject", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)
			assert.Equal(t, tt.expectedMsg, response["message"])
			mockAppRepo.AssertExpectations(t)
		})
	}
}

func TestGetMyApplications(t *testing.T) {
	seeker := &models.User{
		Model:      gorm.Model{ID: 7},
		Role:       models.RoleSeeker,
		UserNumber: "U-100001",
	}
	apps := []models.Application{
		{Model: gorm.Model{ID: 1}, JobID: 5, UserNumber: "U-100001", Status: models.ApplicationStatusPending,
			Job: models.Job{ReferenceNumber: "KW-000005", Location: "Sandton"}},
	}

	controller, mockAppRepo, mockUserRepo := setupApplicationControllerWithMocks()
	mockUserRepo.On("FindByID", mock.Anything, uint(7)).Return(seeker, nil)
	mockAppRepo.On("FindByUserNumber", mock.Anything, "U-100001").Return(apps, nil)

	router := setupTestRouter()
	router.GET("/applications/mine", addAuthMiddleware(7, models.RoleSeeker), controller.GetMyApplications)

	req := httptest.NewRequest(http.MethodGet, "/applications/mine", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestGetPendingApplicants(t *testing.T) {
	apps := []models.Application{
		{Model: gorm.Model{ID: 1}, JobID: 5, UserNumber: "U-100001", EmployerID: 3,
			ReferenceNumber: "KW-000005", Status: models.ApplicationStatusPending},
		{Model: gorm.Model{ID: 2}, JobID: 5, UserNumber: "U-100002", EmployerID: 3,
			ReferenceNumber: "KW-000005", Status: models.ApplicationStatusPending},
	}

	controller, mockAppRepo, mockUserRepo := setupApplicationControllerWithMocks()
	mockAppRepo.On("FindPendingByEmployer", mock.Anything, uint(3)).Return(apps, nil)
	mockUserRepo.On("FindByUserNumber", mock.Anything, "U-100001").
		Return(&models.User{Name: "Thabo", Role: models.RoleSeeker}, nil)
	mockUserRepo.On("FindByUserNumber", mock.Anything, "U-100002").
		Return(&models.User{Name: "Lerato", Role: models.RoleSeeker}, nil)

	router := setupTestRouter()
	router.GET("/applications/pending", addAuthMiddleware(3, models.RoleEmployer), controller.GetPendingApplicants)

	req := httptest.NewRequest(http.MethodGet, "/applications/pending", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Thabo", first["seeker_name"])
}
