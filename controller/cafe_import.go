package controller

import (
	"cafein/form"
	"cafein/model"
	"cafein/utils"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"log"
	"net/http"
	"strings"
)

const importSheet = "Sheet1"

// Columns after the header row: name, address, contact, openTime,
// closeTime, notice, then one Y/N column per facility in display order.
const importTextColumns = 6

func facilityFlag(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "y", "yes", "true", "1", "o":
		return true
	}
	return false
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// rowToCafe returns false when the row lacks a required value.
func rowToCafe(row []string) (model.Cafe, bool) {
	cafe := model.Cafe{
		Name:      cell(row, 0),
		Address:   cell(row, 1),
		Contact:   cell(row, 2),
		OpenTime:  cell(row, 3),
		CloseTime: cell(row, 4),
		Notice:    cell(row, 5),
	}
	if cafe.Name == "" || cafe.Address == "" || cafe.Contact == "" || cafe.OpenTime == "" || cafe.CloseTime == "" {
		return model.Cafe{}, false
	}
	for i, name := range form.FacilityNames() {
		cafe.Facilities = append(cafe.Facilities, model.CafeFacility{
			Name:    name,
			Checked: facilityFlag(cell(row, importTextColumns+i)),
		})
	}
	return cafe, true
}

func (ctl *CafeController) Import(c *gin.Context) {
	ownerID, ok := utils.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized access"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Unable to open Excel file"})
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to parse Excel file"})
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows(importSheet)
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel must have at least one row of data"})
		return
	}

	var cafes []model.Cafe
	for i, row := range rows[1:] {
		cafe, ok := rowToCafe(row)
		if !ok {
			log.Printf("cafe import: row %d incomplete, skipped", i+2)
			continue
		}
		cafe.OwnerID = ownerID
		cafes = append(cafes, cafe)
	}

	if len(cafes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No valid rows found"})
		return
	}

	if err := ctl.DB.Create(&cafes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to insert cafes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bulk cafe upload successful",
		"count":   len(cafes),
		"data":    records(cafes),
	})
}
