package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kwikwork/internal/models"
	"kwikwork/internal/repository"
	"kwikwork/internal/storage"
	"kwikwork/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxBioWords = 50

// uniqueNumberAttempts bounds how often a generated display number is redrawn
// after a unique-key collision before the request fails.
const uniqueNumberAttempts = 3

type UserController struct {
	repo             repository.UserRepository
	resetRepo        repository.ResetPasswordRepository
	verificationRepo repository.VerificationRepository
	store            storage.Store
	mailConfig       utils.MailConfig
}

func NewUserController(repo repository.UserRepository, resetRepo repository.ResetPasswordRepository, verificationRepo repository.VerificationRepository, store storage.Store) *UserController {
	return &UserController{
		repo:             repo,
		resetRepo:        resetRepo,
		verificationRepo: verificationRepo,
		store:            store,
		mailConfig:       utils.LoadMailConfig(),
	}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// CreateUser godoc
// @Summary Register a new user
// @Description Creates a seeker or employer account; the role is fixed at signup
// @Tags users
// @Accept json
// @Produce json
// @Param user body signupRequest true "Signup data"
// @Success 201 {object} map[string]interface{} "User registered"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /users [post]
func (uc *UserController) CreateUser(c *gin.Context) {
	var req signupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if req.Role != models.RoleSeeker && req.Role != models.RoleEmployer {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid role",
			"error":   "Role must be seeker or employer",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to register user",
			"error":   err.Error(),
		})
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Phone:    req.Phone,
		Role:     req.Role,
	}

	var createErr error
	for attempt := 0; attempt < uniqueNumberAttempts; attempt++ {
		user.UserNumber = utils.GenerateUserNumber()
		createErr = uc.repo.Create(c.Request.Context(), &user)
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			break
		}
		// Two unique columns can fire here. An existing account with this
		// email is the caller's problem; a user number collision just gets
		// a fresh draw.
		if _, err := uc.repo.FindByEmail(c.Request.Context(), req.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Email already registered",
				"error":   "An account with this email already exists",
			})
			return
		}
	}
	if createErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to register user",
			"error":   createErr.Error(),
		})
		return
	}

	uc.queueVerificationCode(c, user.Email)

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered. Please verify your email.",
		"data":    user,
	})
}

// queueVerificationCode stores a signup verification code and mails it in the
// background. Failures only log; the account already exists and the code can
// be resent through /verify/resend.
func (uc *UserController) queueVerificationCode(c *gin.Context, email string) {
	if uc.verificationRepo == nil {
		return
	}

	if err := uc.verificationRepo.DeleteByEmail(c.Request.Context(), email); err != nil {
		log.Printf("Failed to clear previous verification code for %s: %v", email, err)
	}

	code := utils.GenerateVerificationCode()
	verification := models.Verification{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := uc.verificationRepo.Create(c.Request.Context(), &verification); err != nil {
		log.Printf("Failed to store verification code for %s: %v", email, err)
		return
	}

	go func(email, code string) {
		if err := utils.SendEmail(uc.mailConfig, email, "Verification Code", "Your verification code is: "+code); err != nil {
			log.Printf("Failed to send email to %s: %v", email, err)
		}
	}(email, code)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser godoc
// @Summary Log a user in
// @Description Verifies credentials and returns a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /users/login [post]
func (uc *UserController) LoginUser(c *gin.Context) {
	var req loginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	user, err := uc.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid credentials",
			"error":   "Email or password is incorrect",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid credentials",
			"error":   "Email or password is incorrect",
		})
		return
	}

	tokenString, err := generateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"token": tokenString,
			"user":  user,
		},
	})
}

func generateToken(user *models.User) (string, error) {
	jwtSecret := []byte(os.Getenv("JWT_SECRET_KEY"))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// GetCurrentUser godoc
// @Summary Get the authenticated user
// @Description Resolves the bearer token to the full user record
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{} "User retrieved successfully"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/me [get]
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := uc.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists for this session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User retrieved successfully",
		"data":    user,
	})
}

type patchUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Role         *string `json:"role"`
	Bio          *string `json:"bio"`
	BusinessName *string `json:"business_name"`
}

// PatchUser godoc
// @Summary Update the authenticated user's profile
// @Description Partial profile update; email and role are immutable, bio is seeker-only and limited to 50 words, business name is employer-only
// @Tags users
// @Accept json
// @Produce json
// @Param user body patchUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "User updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /users/me [patch]
func (uc *UserController) PatchUser(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req patchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if req.Email != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email cannot be changed",
			"error":   "Email is fixed once the account is created",
		})
		return
	}
	if req.Role != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Role cannot be changed",
			"error":   "Role is fixed at signup",
		})
		return
	}

	user, err := uc.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists for this session",
		})
		return
	}

	data := map[string]interface{}{}
	if req.Name != nil {
		data["name"] = *req.Name
	}
	if req.Phone != nil {
		data["phone"] = *req.Phone
	}
	if req.Bio != nil {
		if user.Role != models.RoleSeeker {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Bio is only available to seekers",
				"error":   "Employer profiles carry a business name instead",
			})
			return
		}
		if len(strings.Fields(*req.Bio)) > maxBioWords {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Bio is too long",
				"error":   fmt.Sprintf("Bio must be at most %d words", maxBioWords),
			})
			return
		}
		data["bio"] = *req.Bio
	}
	if req.BusinessName != nil {
		if user.Role != models.RoleEmployer {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Business name is only available to employers",
				"error":   "Seeker profiles carry a bio instead",
			})
			return
		}
		data["business_name"] = *req.BusinessName
	}

	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Nothing to update",
			"error":   "Request contained no updatable fields",
		})
		return
	}

	if err := uc.repo.Patch(c.Request.Context(), userID, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update user",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User updated successfully",
		"data":    nil,
	})
}

// UploadProfilePic godoc
// @Summary Upload a profile picture
// @Description Stores the image in object storage and records its key on the user
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]interface{} "Profile picture updated"
// @Failure 400 {object} map[string]interface{} "Invalid file"
// @Failure 503 {object} map[string]interface{} "Storage unavailable"
// @Router /users/me/profile-pic [post]
func (uc *UserController) UploadProfilePic(c *gin.Context) {
	if uc.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Storage is not configured",
			"error":   "Profile pictures are unavailable",
		})
		return
	}

	userID := c.GetUint("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid file",
			"error":   err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to read file",
			"error":   err.Error(),
		})
		return
	}
	defer file.Close()

	key := fmt.Sprintf("%d/%s%s", userID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	if err := uc.store.Put(c.Request.Context(), key, file, fileHeader.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to store profile picture",
			"error":   err.Error(),
		})
		return
	}

	if err := uc.repo.Patch(c.Request.Context(), userID, map[string]interface{}{"profile_pic": key}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update user",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile picture updated",
		"data":    gin.H{"profile_pic": key},
	})
}

// GetSeekerDetails godoc
// @Summary Get a seeker's public card
// @Description Returns name, bio, and a time-limited picture URL for an applicant
// @Tags users
// @Produce json
// @Param user_number path string true "Seeker reference"
// @Success 200 {object} map[string]interface{} "Seeker retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Seeker not found"
// @Router /users/seekers/{user_number} [get]
func (uc *UserController) GetSeekerDetails(c *gin.Context) {
	userNumber := c.Param("user_number")

	user, err := uc.repo.FindByUserNumber(c.Request.Context(), userNumber)
	if err != nil || user.Role != models.RoleSeeker {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Seeker not found",
			"error":   "No seeker exists with the provided reference",
		})
		return
	}

	var picURL string
	if user.ProfilePic != "" && uc.store != nil {
		picURL, err = uc.store.SignedURL(c.Request.Context(), user.ProfilePic, time.Hour)
		if err != nil {
			log.Printf("Failed to sign profile picture URL for %s: %v", userNumber, err)
			picURL = ""
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Seeker retrieved successfully",
		"data": gin.H{
			"user_number": user.UserNumber,
			"name":        user.Name,
			"bio":         user.Bio,
			"profile_pic": picURL,
		},
	})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
// @Summary Request a password reset code
// @Description Emails a 6-digit reset code when the address is registered
// @Tags users
// @Accept json
// @Produce json
// @Param request body emailRequest true "Account email"
// @Success 200 {object} map[string]interface{} "Reset code sent if the account exists"
// @Router /users/forgot-password [post]
func (uc *UserController) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	// Answer the same way whether or not the account exists.
	response := gin.H{
		"status":  "success",
		"message": "If the email is registered, a reset code has been sent",
		"data":    nil,
	}

	if _, err := uc.repo.FindByEmail(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusOK, response)
		return
	}

	if err := uc.resetRepo.DeleteByEmail(c.Request.Context(), req.Email); err != nil {
		log.Printf("Failed to clear previous reset code for %s: %v", req.Email, err)
	}

	code := utils.GenerateVerificationCode()
	reset := models.ResetPassword{
		Email:     req.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	if err := uc.resetRepo.Create(c.Request.Context(), &reset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create reset code",
			"error":   err.Error(),
		})
		return
	}

	go func(email, code string) {
		message := fmt.Sprintf("Your KwikWork password reset code is %s. It expires in 15 minutes.", code)
		if err := utils.SendEmail(uc.mailConfig, email, "KwikWork password reset", message); err != nil {
			log.Printf("Failed to send reset email to %s: %v", email, err)
		}
	}(req.Email, code)

	c.JSON(http.StatusOK, response)
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword godoc
// @Summary Reset a password with an emailed code
// @Tags users
// @Accept json
// @Produce json
// @Param request body resetPasswordRequest true "Reset data"
// @Success 200 {object} map[string]interface{} "Password updated"
// @Failure 400 {object} map[string]interface{} "Invalid or expired code"
// @Router /users/reset-password [post]
func (uc *UserController) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if _, err := uc.resetRepo.FindByEmailAndCode(c.Request.Context(), req.Email, req.Code); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid or expired reset code",
			"error":   "Request a new code and try again",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to reset password",
			"error":   err.Error(),
		})
		return
	}

	if err := uc.repo.UpdatePassword(c.Request.Context(), req.Email, string(hash)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to reset password",
			"error":   err.Error(),
		})
		return
	}

	if err := uc.resetRepo.DeleteByEmail(c.Request.Context(), req.Email); err != nil {
		log.Printf("Failed to delete used reset code for %s: %v", req.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Password updated successfully",
		"data":    nil,
	})
}
