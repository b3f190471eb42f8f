package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook/internal/middleware"
	"medibook/internal/models"
	"medibook/internal/utils"
)

// UserHandler handles the profile endpoints. Both routes sit behind an owner
// check, so the target user is always the caller.
type UserHandler struct {
	DB          *gorm.DB
	PhoneRegion string
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB, phoneRegion string) *UserHandler {
	return &UserHandler{DB: db, PhoneRegion: phoneRegion}
}

// GetProfile returns the caller's profile without the password hash.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := h.loadCaller(c)
	if !ok {
		return
	}
	utils.Success(c, user.Sanitize())
}

// UpdateProfileRequest carries the profile fields to change. Absent fields
// are left untouched.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// UpdateProfile applies the fields present in the body to the caller's profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		updates["phone"] = utils.NormalizePhone(*req.Phone, h.PhoneRegion)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "No profile fields to update")
		return
	}

	user, ok := h.loadCaller(c)
	if !ok {
		return
	}

	if err := h.DB.WithContext(c.Request.Context()).Model(&user).Updates(updates).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile", err)
		return
	}

	utils.Message(c, "Profile updated successfully")
}

func (h *UserHandler) loadCaller(c *gin.Context) (models.User, bool) {
	var user models.User
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return user, false
	}

	if err := h.DB.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Failed to fetch profile", err)
		}
		return user, false
	}
	return user, true
}
