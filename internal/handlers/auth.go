package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook/internal/config"
	"medibook/internal/middleware"
	"medibook/internal/models"
	"medibook/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// SignupRequest represents the request body for user registration.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup handles user registration.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	email := normalizeEmail(req.Email)
	db := h.DB.WithContext(c.Request.Context())

	// Check if user already exists
	var existingUser models.User
	if err := db.Where("email = ?", email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "Email already in use")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Server error during registration", err)
		return
	}

	user := models.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Server error during registration", err)
		return
	}

	if err := db.Create(&user).Error; err != nil {
		// A concurrent signup with the same email loses on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "Email already in use")
			return
		}
		utils.InternalServerError(c, "Server error during registration", err)
		return
	}

	utils.Created(c, utils.MessageResponse{Message: "User registered successfully"})
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	err := h.DB.WithContext(c.Request.Context()).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Server error during login", err)
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	ttl := time.Duration(h.Cfg.JWTExpirationHours) * time.Hour
	token, err := utils.GenerateToken(&user, h.Cfg.JWTSecret, ttl)
	if err != nil {
		utils.InternalServerError(c, "Server error during login", err)
		return
	}

	utils.Success(c, LoginResponse{Token: token, User: user.Summary()})
}

// MeResponse wraps the authenticated user's profile.
type MeResponse struct {
	User models.UserSanitized `json:"user"`
}

// Me returns the profile of the token's owner.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Server error while fetching profile", err)
		}
		return
	}

	utils.Success(c, MeResponse{User: user.Sanitize()})
}
