package controllers

import (
	"strconv"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-gonic/gin"
)

// ListUsers returns accounts for the admin screen, newest first.
func ListUsers(c *gin.Context) {
	utils.LogInfo("ListUsers called")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPaginationLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > utils.MaxPaginationLimit {
		limit = utils.DefaultPaginationLimit
	}

	var total int64
	if err := config.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count users", nil)
		return
	}

	var users []models.User
	if err := config.DB.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", nil)
		return
	}

	items := make([]gin.H, len(users))
	for i, u := range users {
		items[i] = gin.H{
			"id":         u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"role":       u.Role,
			"is_blocked": u.IsBlocked,
			"created_at": u.CreatedAt,
		}
	}
	utils.SuccessWithPagination(c, "Users retrieved successfully", items, total, page, limit)
}

// loadTargetUser fetches the user addressed by the :id route parameter
// and guards admin accounts against modification by other admins.
func loadTargetUser(c *gin.Context, caller *models.User) (*models.User, *utils.AppError) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, utils.BadRequestError("Invalid user ID", err)
	}

	var user models.User
	if err := config.DB.First(&user, uint(userID)).Error; err != nil {
		return nil, utils.NotFoundError("User not found", err)
	}
	if user.IsAdmin() && user.ID != caller.ID {
		return nil, utils.ConflictError("Admin accounts cannot be modified by other admins", nil)
	}
	return &user, nil
}

// UpdateUserRole assigns a role to an account. Self-registration only
// ever produces the user role; agent and editor are granted here.
func UpdateUserRole(c *gin.Context) {
	utils.LogInfo("UpdateUserRole called")
	caller, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. role is required", err.Error())
		return
	}
	if !models.KnownRole(req.Role) {
		utils.ValidationFailed(c, "Unknown role", gin.H{"role": req.Role})
		return
	}

	user, appErr := loadTargetUser(c, &caller)
	if appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	if err := config.DB.Model(user).Update("role", req.Role).Error; err != nil {
		utils.LogError("Failed to update role for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update role", nil)
		return
	}

	utils.LogInfo("User ID: %d role changed to %s by admin ID: %d", user.ID, req.Role, caller.ID)
	utils.Success(c, "Role updated successfully", gin.H{
		"id":   user.ID,
		"role": req.Role,
	})
}

// SetUserBlocked blocks or unblocks an account. Blocked accounts fail
// authentication; their wallet and history are retained untouched.
func SetUserBlocked(c *gin.Context) {
	utils.LogInfo("SetUserBlocked called")
	caller, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. blocked is required", err.Error())
		return
	}

	user, appErr := loadTargetUser(c, &caller)
	if appErr != nil {
		utils.Error(c, appErr.Code, appErr.Message, nil)
		return
	}

	if err := config.DB.Model(user).Update("is_blocked", *req.Blocked).Error; err != nil {
		utils.LogError("Failed to update block state for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}

	utils.LogInfo("User ID: %d blocked=%t by admin ID: %d", user.ID, *req.Blocked, caller.ID)
	utils.Success(c, "User updated successfully", gin.H{
		"id":         user.ID,
		"is_blocked": *req.Blocked,
	})
}
