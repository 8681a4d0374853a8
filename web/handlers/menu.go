package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/core/hierarchy"
	"cardtime.app/cardtime/core/models"
	"cardtime.app/cardtime/web/common"
	"cardtime.app/cardtime/web/i18n"
	"cardtime.app/cardtime/web/middlewares"
)

// SidebarHandler returns the enabled menu tree localized to the session
// culture. Entries with no translation fall back to their code.
func SidebarHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		culture := middlewares.Culture(c, i18n.DefaultCulture)

		var menus []models.Menu
		err := dm.DB.Table("menus").
			Select("menus.*, COALESCE(menu_translations.name, menus.code) AS name, COALESCE(menu_translations.description, '') AS description").
			Joins("LEFT JOIN menu_translations ON menu_translations.menu_id = menus.id AND menu_translations.language_id = ?", culture).
			Where("menus.is_enabled = 1").
			Order("menus.seq").
			Scan(&menus).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		tree, err := hierarchy.Build(menus,
			func(m models.Menu) string { return m.ID },
			func(m models.Menu) string {
				if m.PID == nil {
					return ""
				}
				return *m.PID
			})
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(tree))
	}
}

// LanguagesHandler lists the enabled languages for the language switcher.
func LanguagesHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var languages []models.Language
		err := dm.DB.Where("is_enabled = 1").Order("seq").Find(&languages).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(languages))
	}
}
