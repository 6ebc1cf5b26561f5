package auth

import (
	"cafein/model"
	"cafein/utils"
	"errors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"net/http"
	"strings"
)

type Handler struct {
	DB     *gorm.DB
	Tokens *utils.Tokens
}

func NewHandler(db *gorm.DB, tokens *utils.Tokens) *Handler {
	return &Handler{DB: db, Tokens: tokens}
}

func (h *Handler) Register(c *gin.Context) {
	type Request struct {
		Login       string `form:"login" json:"login" binding:"required"`
		Password    string `form:"password" json:"password" binding:"required,min=6"`
		DisplayName string `form:"display_name" json:"display_name"`
		PhoneNumber string `form:"phone_number" json:"phone_number"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Login and a password of at least 6 characters are required"})
		return
	}

	var existing model.Owner
	err := h.DB.Where("login = ?", strings.TrimSpace(req.Login)).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Login already taken"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to check login: " + err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to hash password"})
		return
	}

	owner := model.Owner{
		Login:       strings.TrimSpace(req.Login),
		Password:    string(hash),
		DisplayName: req.DisplayName,
		PhoneNumber: req.PhoneNumber,
		Role:        model.RoleOwner,
	}
	if err := h.DB.Create(&owner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create owner: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":           owner.ID,
			"login":        owner.Login,
			"display_name": owner.DisplayName,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	type Request struct {
		Login    string `form:"login" json:"login" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Login and password are required"})
		return
	}

	var owner model.Owner
	if err := h.DB.Where("login = ?", strings.TrimSpace(req.Login)).First(&owner).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid login credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid login credentials"})
		return
	}

	access, refresh, err := h.Tokens.GenerateTokens(string(owner.Role), owner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *Handler) RefreshToken(c *gin.Context) {
	oldRefreshToken := c.PostForm("refresh_token")
	if oldRefreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Refresh token is required"})
		return
	}

	access, refresh, err := h.Tokens.RefreshTokens(oldRefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}
