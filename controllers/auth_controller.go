package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-gonic/gin"
)

// Register creates a new account with the standard user role. Agent and
// editor roles are assigned by an admin afterwards; self-registration
// never grants them. A wallet is created alongside the account.
func Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req struct {
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	if !utils.IsValidUsername(req.Username) {
		utils.ValidationFailed(c, "Invalid username", nil)
		return
	}
	if !utils.IsValidEmail(req.Email) {
		utils.ValidationFailed(c, utils.ErrInvalidEmail, nil)
		return
	}
	if !utils.IsValidPassword(req.Password) {
		utils.ValidationFailed(c, utils.ErrInvalidPassword, nil)
		return
	}
	if req.Phone != "" && !utils.IsValidPhone(req.Phone) {
		utils.ValidationFailed(c, utils.ErrInvalidPhone, nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.RoleUser,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	if _, err := ledgerService.GetOrCreateWallet(user.ID); err != nil {
		utils.LogError("Failed to create wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create wallet", nil)
		return
	}

	utils.LogInfo("Registered user ID: %d", user.ID)
	utils.Created(c, "Account created successfully", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

// Login authenticates with email and password and returns a JWT.
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}
	if user.IsBlocked {
		utils.Forbidden(c, utils.ErrUserBlocked)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	config.DB.Model(&user).Update("last_login_at", time.Now())

	utils.LogInfo("User %d logged in", user.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// GoogleLogin redirects to the Google consent screen
func GoogleLogin(c *gin.Context) {
	url := config.GoogleOAuthConfig.AuthCodeURL("state")
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback handles the OAuth callback, creating the account and
// wallet on first login.
func GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.InternalServerError(c, "Failed to exchange token", err.Error())
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info", err.Error())
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerError(c, "Failed to read response", err.Error())
		return
	}

	var googleUser googleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", googleUser.Email).First(&user).Error; err != nil {
		user = models.User{
			Username:   googleUser.Email,
			Email:      googleUser.Email,
			FirstName:  googleUser.GivenName,
			LastName:   googleUser.FamilyName,
			Role:       models.RoleUser,
			IsVerified: true,
			GoogleID:   googleUser.ID,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Failed to create Google user: %v", err)
			utils.InternalServerError(c, "Failed to create account", nil)
			return
		}
		if _, err := ledgerService.GetOrCreateWallet(user.ID); err != nil {
			utils.LogError("Failed to create wallet for user ID: %d: %v", user.ID, err)
		}
	}

	if user.IsBlocked {
		utils.Forbidden(c, utils.ErrUserBlocked)
		return
	}

	jwtToken, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token": jwtToken,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
