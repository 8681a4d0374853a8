package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/core/datatable"
	"cardtime.app/cardtime/core/models"
	"cardtime.app/cardtime/utils"
	"cardtime.app/cardtime/web/common"
	"cardtime.app/cardtime/web/i18n"
	"cardtime.app/cardtime/web/middlewares"
)

// cardListRow joins the owner's name and email onto the card for the list
// view. Both stay empty while the card is unassigned.
type cardListRow struct {
	ID        string  `json:"id"`
	CardNo    string  `json:"cardNo"`
	UserID    *string `json:"userId"`
	UserName  string  `json:"userName"`
	UserEmail string  `json:"userEmail"`
}

var cardColumns = []datatable.Column{
	{Name: "cardNo", DisplayKey: "CardNo"},
	{Name: "userName", DisplayKey: "CardOwner"},
	{Name: "userEmail", DisplayKey: "Email"},
}

var cardListConfig = datatable.GormConfig{
	Searchable: []string{"cards.card_no", "users.name", "users.email"},
	Sortable: map[string]string{
		"cardNo":    "cards.card_no",
		"userName":  "users.name",
		"userEmail": "users.email",
	},
	DefaultSort: "cards.card_no",
}

func CardColumnsHandler(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		localize := catalog.Localize(middlewares.Culture(c, i18n.DefaultCulture))
		c.JSON(http.StatusOK, common.NewSuccessResponse(datatable.Describe(cardColumns, localize)))
	}
}

func CardDataHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := common.BindDatatableRequest(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}

		tx := dm.DB.Table("cards").
			Select("cards.id, cards.card_no, cards.user_id, COALESCE(users.name, '') AS user_name, COALESCE(users.email, '') AS user_email").
			Joins("LEFT JOIN users ON users.id = cards.user_id")

		src := datatable.NewGormSource[cardListRow](tx, cardListConfig)
		resp, err := datatable.Paginate[cardListRow](src, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

type cardEditRequest struct {
	ID     string  `json:"id"`
	CardNo string  `json:"cardNo" binding:"required,max=50"`
	UserID *string `json:"userId"`
}

// CardEditHandler creates when no id is posted, updates otherwise. A nil
// userId leaves the card unassigned.
func CardEditHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cardEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		if req.UserID != nil {
			var count int64
			if err := dm.DB.Model(&models.User{}).Where("id = ?", *req.UserID).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
				return
			}
			if count == 0 {
				c.JSON(http.StatusBadRequest, common.NewErrorResponse("unknown user"))
				return
			}
		}

		if req.ID == "" {
			card := models.Card{
				ID:     utils.NewID(),
				CardNo: req.CardNo,
				UserID: req.UserID,
			}
			if err := dm.DB.Create(&card).Error; err != nil {
				c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusOK, common.NewSuccessResponse(card))
			return
		}

		var card models.Card
		err := dm.DB.First(&card, "id = ?", req.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("card not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		card.CardNo = req.CardNo
		card.UserID = req.UserID
		// Save skips nil fields under Updates, so write user_id explicitly.
		err = dm.DB.Model(&models.Card{}).Where("id = ?", card.ID).
			Updates(map[string]interface{}{"card_no": card.CardNo, "user_id": card.UserID}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(card))
	}
}

// CardDeleteHandler removes the card and its punch history. Unlike user
// deletion, swipes cannot outlive the card they belong to.
func CardDeleteHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		err := dm.DB.Transaction(func(tx *gorm.DB) error {
			result := tx.Delete(&models.Card{}, "id = ?", id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return tx.Delete(&models.CardHistory{}, "card_id = ?", id).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("card not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(nil))
	}
}
