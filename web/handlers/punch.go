package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/core/models"
	"cardtime.app/cardtime/infrastructure/push"
	"cardtime.app/cardtime/utils"
	"cardtime.app/cardtime/web/common"
)

type punchInRequest struct {
	Timestamp common.LocalDateTime `json:"timestamp"`
}

// findOrCreateCard resolves a card number, registering unknown cards as
// unassigned so a freshly issued badge punches on first use.
func findOrCreateCard(db *gorm.DB, cardNo string) (*models.Card, error) {
	var card models.Card
	err := db.First(&card, "card_no = ?", cardNo).Error
	if err == nil {
		return &card, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	card = models.Card{ID: utils.NewID(), CardNo: cardNo}
	if err := db.Create(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// PunchInHandler records one swipe. The body is optional; devices without
// a clock omit it and get the server time.
func PunchInHandler(dm *core.DatabaseManager, hub *push.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardNo := c.Param("cardNo")
		if cardNo == "" {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("card number is required"))
			return
		}

		var req punchInRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
				return
			}
		}
		when := req.Timestamp.Time
		if when.IsZero() {
			when = time.Now()
		}

		var history models.CardHistory
		err := dm.DB.Transaction(func(tx *gorm.DB) error {
			card, err := findOrCreateCard(tx, cardNo)
			if err != nil {
				return err
			}
			history = models.CardHistory{
				ID:              utils.NewID(),
				CardID:          card.ID,
				PunchInDateTime: utils.FormatTimestamp(when),
			}
			return tx.Create(&history).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		// Fire and forget; a slow browser must not hold up the device.
		go hub.RefreshDatatable("timeSheetDatatable")

		c.JSON(http.StatusOK, common.NewSuccessResponse(history))
	}
}

type punchImportRow struct {
	cardNo string
	when   time.Time
}

// parsePunchRecords converts raw CSV records into import rows. The first
// record is forgiven whatever its shape, so files with or without a header
// both load.
func parsePunchRecords(records [][]string) ([]punchImportRow, error) {
	rows := make([]punchImportRow, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("row %d: expected cardNo,timestamp", i+1)
		}
		when, err := utils.ParseISOTime(record[1])
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("row %d: %v", i+1, err)
		}
		rows = append(rows, punchImportRow{cardNo: record[0], when: *when})
	}
	return rows, nil
}

// ImportPunchesHandler bulk-loads swipes from a two-column CSV of card
// number and timestamp, with an optional header row. Used to backfill from
// offline readers.
func ImportPunchesHandler(dm *core.DatabaseManager, hub *push.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("file is required"))
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}
		defer f.Close()

		records, err := utils.ParseCSV(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}

		rows, err := parsePunchRecords(records)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}

		err = dm.DB.Transaction(func(tx *gorm.DB) error {
			for _, row := range rows {
				card, err := findOrCreateCard(tx, row.cardNo)
				if err != nil {
					return err
				}
				history := models.CardHistory{
					ID:              utils.NewID(),
					CardID:          card.ID,
					PunchInDateTime: utils.FormatTimestamp(row.when),
				}
				if err := tx.Create(&history).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		imported := len(rows)

		zap.L().Info("imported punches", zap.Int("count", imported))
		go hub.RefreshDatatable("timeSheetDatatable")

		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"imported": imported}))
	}
}
