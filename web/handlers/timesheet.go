package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/core/attendance"
	"cardtime.app/cardtime/core/datatable"
	"cardtime.app/cardtime/infrastructure/devops"
	"cardtime.app/cardtime/web/common"
	"cardtime.app/cardtime/web/i18n"
	"cardtime.app/cardtime/web/middlewares"
)

// The list view shows raw swipes; the aggregated first/last report is what
// the export endpoints produce.
type punchListRow struct {
	ID              string `json:"id"`
	CardNo          string `json:"cardNo"`
	UserName        string `json:"userName"`
	PunchInDateTime string `json:"punchInDateTime"`
}

var timeSheetColumns = []datatable.Column{
	{Name: "cardNo", DisplayKey: "CardNo"},
	{Name: "userName", DisplayKey: "UserName"},
	{Name: "punchInDateTime", DisplayKey: "PunchInTime", Type: datatable.DisplayDateTime, Params: []string{"yyyy-MM-dd HH:mm:ss"}},
}

var timeSheetListConfig = datatable.GormConfig{
	Searchable: []string{"cards.card_no", "users.name"},
	Sortable: map[string]string{
		"cardNo":          "cards.card_no",
		"userName":        "users.name",
		"punchInDateTime": "card_histories.punch_in_datetime",
	},
	DefaultSort: "cards.card_no",
}

func TimeSheetColumnsHandler(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		localize := catalog.Localize(middlewares.Culture(c, i18n.DefaultCulture))
		c.JSON(http.StatusOK, common.NewSuccessResponse(datatable.Describe(timeSheetColumns, localize)))
	}
}

func monthParam(c *gin.Context) string {
	if m := c.PostForm("month"); m != "" {
		return m
	}
	return c.Query("month")
}

func TimeSheetDataHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := common.BindDatatableRequest(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}

		tx := dm.DB.Table("card_histories").
			Select("card_histories.id, cards.card_no, COALESCE(users.name, '') AS user_name, card_histories.punch_in_datetime").
			Joins("JOIN cards ON cards.id = card_histories.card_id").
			Joins("LEFT JOIN users ON users.id = cards.user_id")
		if month := monthParam(c); month != "" {
			tx = tx.Where("card_histories.punch_in_datetime LIKE ?", month+"-%")
		}

		src := datatable.NewGormSource[punchListRow](tx, timeSheetListConfig)
		resp, err := datatable.Paginate[punchListRow](src, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func exportAttachment(c *gin.Context, month, ext, contentType string, body []byte) {
	filename := fmt.Sprintf("%s.%s", month, ext)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}

func ExportCSVHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := monthParam(c)
		rows, err := attendance.BuildMonthlyReport(dm.DB, month)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}

		var buf bytes.Buffer
		if err := attendance.WriteCSV(&buf, rows); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		exportAttachment(c, month, "csv", "text/csv; charset=big5", buf.Bytes())
	}
}

func ExportPDFHandler(dm *core.DatabaseManager, cfg *devops.Config, catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := monthParam(c)
		rows, err := attendance.BuildMonthlyReport(dm.DB, month)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}

		localize := catalog.Localize(middlewares.Culture(c, i18n.DefaultCulture))
		labels := attendance.DefaultPDFLabels()
		if s := localize("TimeSheetTitle"); s != "" {
			labels.Title = s
		}
		if s := localize("UserName"); s != "" {
			labels.Name = s
		}
		if s := localize("Date"); s != "" {
			labels.Date = s
		}
		if s := localize("PunchInTime"); s != "" {
			labels.PunchIn = s
		}
		if s := localize("PunchOutTime"); s != "" {
			labels.PunchOut = s
		}
		if s := localize("PrintedAt"); s != "" {
			labels.Footer = s
		}
		if s := localize("PageOf"); s != "" {
			labels.PageOf = s
		}

		body, err := attendance.WritePDF(rows, attendance.PDFOptions{
			FontPath:    cfg.Report.FontPath,
			StampPath:   cfg.Report.StampPath,
			Password:    cfg.PDFPassword,
			RowsPerPage: cfg.Report.RowsPerPage,
			Labels:      labels,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		exportAttachment(c, month, "pdf", "application/pdf", body)
	}
}

func ExportXLSXHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := monthParam(c)
		rows, err := attendance.BuildMonthlyReport(dm.DB, month)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}

		var buf bytes.Buffer
		if err := attendance.WriteXLSX(&buf, rows); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		exportAttachment(c, month, "xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
