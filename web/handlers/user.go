package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/core/datatable"
	"cardtime.app/cardtime/core/models"
	"cardtime.app/cardtime/security"
	"cardtime.app/cardtime/utils"
	"cardtime.app/cardtime/web/common"
	"cardtime.app/cardtime/web/i18n"
	"cardtime.app/cardtime/web/middlewares"
)

var userColumns = []datatable.Column{
	{Name: "account", DisplayKey: "Account"},
	{Name: "name", DisplayKey: "Name"},
	{Name: "email", DisplayKey: "Email"},
	{Name: "birthday", DisplayKey: "Birthday", Type: datatable.DisplayDate, Params: []string{"yyyy-MM-dd"}},
	{Name: "isEnabled", DisplayKey: "IsEnabled"},
}

var userListConfig = datatable.GormConfig{
	Searchable: []string{"account", "name", "email"},
	Sortable: map[string]string{
		"account":   "account",
		"name":      "name",
		"email":     "email",
		"birthday":  "birthday",
		"isEnabled": "is_enabled",
	},
	DefaultSort: "account",
}

func UserColumnsHandler(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		localize := catalog.Localize(middlewares.Culture(c, i18n.DefaultCulture))
		c.JSON(http.StatusOK, common.NewSuccessResponse(datatable.Describe(userColumns, localize)))
	}
}

func UserDataHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := common.BindDatatableRequest(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}

		src := datatable.NewGormSource[models.User](dm.DB.Model(&models.User{}), userListConfig)
		resp, err := datatable.Paginate[models.User](src, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func UserDetailsHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		err := dm.DB.First(&user, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("user not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(user))
	}
}

type userEditRequest struct {
	ID        string          `json:"id"`
	Account   string          `json:"account" binding:"required,max=100"`
	Password  string          `json:"password"` // empty keeps the current one
	Name      string          `json:"name" binding:"required,max=100"`
	Email     string          `json:"email" binding:"required,email"`
	Birthday  common.DateOnly `json:"birthday"`
	IsEnabled *int32          `json:"isEnabled"`
	AvatarID  *string         `json:"avatarId"` // file id from /streaming/upload
}

// apply copies the posted fields onto the user. The password only changes
// when one was posted; a nil avatarId clears the avatar.
func (r userEditRequest) apply(user *models.User, salt string) {
	user.Account = strings.TrimSpace(r.Account)
	user.Name = strings.TrimSpace(r.Name)
	user.Email = strings.ToUpper(strings.TrimSpace(r.Email))

	user.Birthday = ""
	if !r.Birthday.IsZero() {
		user.Birthday = r.Birthday.Format(utils.DateLayout)
	}
	user.IsEnabled = 1
	if r.IsEnabled != nil {
		user.IsEnabled = *r.IsEnabled
	}
	user.AvatarID = r.AvatarID
	if r.Password != "" {
		user.Password = security.HashPassword(salt, r.Password)
	}
}

// UserEditHandler creates when no id is posted, updates otherwise.
func UserEditHandler(dm *core.DatabaseManager, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req userEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		if req.ID == "" {
			if req.Password == "" {
				c.JSON(http.StatusBadRequest, common.NewErrorResponse("Field 'password' is required"))
				return
			}
			user := models.User{ID: utils.NewID()}
			req.apply(&user, salt)
			if err := dm.DB.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusOK, common.NewSuccessResponse(user))
			return
		}

		var user models.User
		err := dm.DB.First(&user, "id = ?", req.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("user not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		req.apply(&user, salt)

		if err := dm.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(user))
	}
}

// UserDeleteHandler removes the user, its pending reset tokens, and
// detaches its cards. Card history stays: swipes belong to the card.
func UserDeleteHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		err := dm.DB.Transaction(func(tx *gorm.DB) error {
			result := tx.Delete(&models.User{}, "id = ?", id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}

			if err := tx.Delete(&models.ForgotPassword{}, "user_id = ?", id).Error; err != nil {
				return err
			}
			return tx.Model(&models.Card{}).Where("user_id = ?", id).
				Update("user_id", nil).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("user not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(nil))
	}
}
