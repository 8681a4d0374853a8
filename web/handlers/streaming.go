package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/core/models"
	"cardtime.app/cardtime/infrastructure/filesystem"
	"cardtime.app/cardtime/utils"
	"cardtime.app/cardtime/web/common"
)

// Only image uploads are accepted; avatars are the single upload surface.
var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadHandler stores one multipart file and records it in the files
// table. The response carries the file id the client attaches to its
// owning record.
func UploadHandler(dm *core.DatabaseManager, store filesystem.BlobStore, maxSizeMB int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("file is required"))
			return
		}

		if fileHeader.Size > maxSizeMB<<20 {
			c.JSON(http.StatusRequestEntityTooLarge,
				common.NewErrorResponse(fmt.Sprintf("file exceeds %d MB", maxSizeMB)))
			return
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedUploadExts[ext] {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("only .jpg and .png files are accepted"))
			return
		}

		src, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}
		defer src.Close()

		record := models.File{
			ID:   utils.NewID(),
			Type: strings.TrimPrefix(ext, "."),
			Name: filepath.Base(fileHeader.Filename),
			Size: fileHeader.Size,
			Key:  utils.NewID(),
		}

		if err := store.Write(c.Request.Context(), record.Key, src); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if err := dm.DB.Create(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(record))
	}
}

// DownloadHandler streams a stored file back under its original name.
func DownloadHandler(dm *core.DatabaseManager, store filesystem.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record models.File
		err := dm.DB.First(&record, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("file not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		var buf bytes.Buffer
		if err := store.Read(c.Request.Context(), record.Key, &buf); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		contentType := mime.TypeByExtension("." + record.Type)
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, record.Name))
		c.Data(http.StatusOK, contentType, buf.Bytes())
	}
}
