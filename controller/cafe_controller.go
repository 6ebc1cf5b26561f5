package controller

import (
	"cafein/form"
	"cafein/model"
	"cafein/utils"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// CafeController is the receiving side of /cafes.
type CafeController struct {
	DB *gorm.DB
}

func NewCafeController(db *gorm.DB) *CafeController {
	return &CafeController{DB: db}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var cafeOrders = map[string]string{
	"createdAt": "created_at DESC, id DESC",
	"rating":    "rating DESC, id DESC",
}

// bindRecord decodes a CafeRecord body, answering 400 on failure.
func bindRecord(c *gin.Context) (model.CafeRecord, bool) {
	var req model.CafeRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid cafe payload: " + err.Error()})
		return req, false
	}
	if _, err := model.ParseRating(req.Rating); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid cafe payload: " + err.Error()})
		return req, false
	}
	return req, true
}

// pageParams reads page (from 1) and size, defaulting to the first page
// of defaultPageSize.
func pageParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "page must be a positive integer"})
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size < 1 || size > maxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("size must be between 1 and %d", maxPageSize)})
		return 0, 0, false
	}
	return page, size, true
}

func records(cafes []model.Cafe) []model.CafeRecord {
	out := make([]model.CafeRecord, 0, len(cafes))
	for i := range cafes {
		out = append(out, cafes[i].Record())
	}
	return out
}

func (ctl *CafeController) Create(c *gin.Context) {
	ownerID, ok := utils.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized access"})
		return
	}

	req, ok := bindRecord(c)
	if !ok {
		return
	}

	cafe := model.CafeFromRecord(req)
	cafe.OwnerID = ownerID
	if err := ctl.DB.Create(&cafe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create cafe: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Cafe created successfully",
		"data":    cafe.Record(),
	})
}

// List returns one page of cafés, optionally only those with every
// requested facility checked, ordered by createdAt (default) or rating.
func (ctl *CafeController) List(c *gin.Context) {
	order := c.DefaultQuery("order", "createdAt")
	orderBy, ok := cafeOrders[order]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unsupported order: " + order})
		return
	}

	page, size, ok := pageParams(c)
	if !ok {
		return
	}

	wanted := c.QueryArray("facility")
	for _, name := range wanted {
		if !form.IsFacilityKind(name) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown facility: " + name})
			return
		}
	}

	q := ctl.DB.Model(&model.Cafe{})
	for _, name := range wanted {
		q = q.Where("id IN (?)", ctl.DB.Model(&model.CafeFacility{}).
			Select("cafe_id").
			Where("name = ? AND checked = ?", name, true))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to count cafes"})
		return
	}

	var cafes []model.Cafe
	err := q.Preload("Facilities").
		Order(orderBy).
		Offset((page - 1) * size).
		Limit(size).
		Find(&cafes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch cafes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fetched cafes successfully",
		"data":    records(cafes),
		"page":    page,
		"size":    size,
		"total":   total,
	})
}

func (ctl *CafeController) find(c *gin.Context) (*model.Cafe, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid cafe ID format"})
		return nil, false
	}

	var cafe model.Cafe
	if err := ctl.DB.Preload("Facilities").First(&cafe, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cafe not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch cafe"})
		}
		return nil, false
	}
	return &cafe, true
}

func (ctl *CafeController) Get(c *gin.Context) {
	cafe, ok := ctl.find(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cafe.Record()})
}

// owned loads the café in the path and checks that the caller owns it.
func (ctl *CafeController) owned(c *gin.Context) (*model.Cafe, uint, bool) {
	ownerID, ok := utils.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized access"})
		return nil, 0, false
	}
	cafe, ok := ctl.find(c)
	if !ok {
		return nil, 0, false
	}
	if cafe.OwnerID != ownerID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You do not own this cafe"})
		return nil, 0, false
	}
	return cafe, ownerID, true
}

func (ctl *CafeController) Update(c *gin.Context) {
	cafe, _, ok := ctl.owned(c)
	if !ok {
		return
	}

	req, ok := bindRecord(c)
	if !ok {
		return
	}
	updated := model.CafeFromRecord(req)

	tx := ctl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Unexpected error occurred"})
		}
	}()

	if err := tx.Where("cafe_id = ?", cafe.ID).Delete(&model.CafeFacility{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear facilities: " + err.Error()})
		return
	}

	cafe.Name = updated.Name
	cafe.Address = updated.Address
	cafe.Contact = updated.Contact
	cafe.Notice = updated.Notice
	cafe.Image = updated.Image
	cafe.Rating = updated.Rating
	cafe.OpenTime = updated.OpenTime
	cafe.CloseTime = updated.CloseTime
	cafe.Facilities = nil
	if err := tx.Omit("Facilities").Save(cafe).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update cafe: " + err.Error()})
		return
	}

	for i := range updated.Facilities {
		updated.Facilities[i].CafeID = cafe.ID
	}
	if len(updated.Facilities) > 0 {
		if err := tx.Create(&updated.Facilities).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save facilities: " + err.Error()})
			return
		}
	}
	cafe.Facilities = updated.Facilities

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Transaction failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cafe updated successfully",
		"data":    cafe.Record(),
	})
}

// Delete removes an owned café once the owner's password is confirmed.
func (ctl *CafeController) Delete(c *gin.Context) {
	cafe, ownerID, ok := ctl.owned(c)
	if !ok {
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid delete payload: " + err.Error()})
		return
	}
	password := strings.TrimSpace(req.Password)
	if password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Password is required"})
		return
	}

	var owner model.Owner
	if err := ctl.DB.First(&owner, ownerID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Owner not found"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(password)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Password does not match"})
		return
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cafe_id = ?", cafe.ID).Delete(&model.CafeFacility{}).Error; err != nil {
			return err
		}
		return tx.Delete(cafe).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete cafe: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cafe deleted successfully"})
}
