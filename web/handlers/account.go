package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/core/models"
	"cardtime.app/cardtime/infrastructure/communication"
	"cardtime.app/cardtime/security"
	"cardtime.app/cardtime/utils"
	"cardtime.app/cardtime/web/common"
	"cardtime.app/cardtime/web/i18n"
	"cardtime.app/cardtime/web/middlewares"
)

// Reset links expire after 30 minutes.
const resetTokenLifetime = 30 * time.Minute

type signInRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func SignInHandler(dm *core.DatabaseManager, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		// Account and email both sign in, case-insensitively.
		login := strings.ToUpper(strings.TrimSpace(req.Account))
		var user models.User
		err := dm.DB.Where("(UPPER(account) = ? OR UPPER(email) = ?) AND is_enabled = 1", login, login).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user.Password != security.HashPassword(salt, req.Password)) {
			// Same message for unknown account and wrong password.
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid account or password"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		session := sessions.Default(c)
		session.Set(middlewares.SessionUserKey, user.ID)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(user))
	}
}

func SignOutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Clear()
		session.Options(sessions.Options{MaxAge: -1, Path: "/"})
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(nil))
	}
}

type signUpRequest struct {
	Account  string          `json:"account" binding:"required,max=100"`
	Password string          `json:"password" binding:"required,min=6"`
	Name     string          `json:"name" binding:"required,max=100"`
	Email    string          `json:"email" binding:"required,email"`
	Birthday common.DateOnly `json:"birthday"`
}

func SignUpHandler(dm *core.DatabaseManager, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		account := strings.TrimSpace(req.Account)
		email := strings.ToUpper(strings.TrimSpace(req.Email))

		var count int64
		if err := dm.DB.Model(&models.User{}).
			Where("UPPER(account) = ? OR UPPER(email) = ?", strings.ToUpper(account), email).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, common.NewErrorResponse("account or email already registered"))
			return
		}

		user := models.User{
			ID:        utils.NewID(),
			Account:   account,
			Password:  security.HashPassword(salt, req.Password),
			Name:      strings.TrimSpace(req.Name),
			Email:     email,
			IsEnabled: 1,
		}
		if !req.Birthday.IsZero() {
			user.Birthday = req.Birthday.Format(utils.DateLayout)
		}

		if err := dm.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(user))
	}
}

// GetTokenHandler mints a bearer token for the session user, for punch
// devices and scripts that cannot hold a cookie.
func GetTokenHandler(settings security.TokenSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middlewares.ContextUserKey)

		token, err := security.CreateIdentityToken(userID, settings)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"token": token}))
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func ForgotPasswordHandler(dm *core.DatabaseManager, mailer communication.Mailer, sender, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req forgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		var user models.User
		err := dm.DB.Where("UPPER(email) = ? AND is_enabled = 1", strings.ToUpper(strings.TrimSpace(req.Email))).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the address exists.
			c.JSON(http.StatusOK, common.NewSuccessResponse(nil))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		record := models.ForgotPassword{
			ID:             utils.NewID(),
			UserID:         user.ID,
			ExpiryDateTime: utils.FormatTimestamp(time.Now().Add(resetTokenLifetime)),
		}
		if err := dm.DB.Create(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		link := fmt.Sprintf("%s/account/resetpassword/%s", baseURL, record.ID)
		email := &communication.Email{
			From:    sender,
			To:      []string{user.Email},
			Subject: "Reset your password",
			Text:    fmt.Sprintf("Reset your password within 30 minutes: %s", link),
			HTML:    fmt.Sprintf(`<p>Reset your password within 30 minutes: <a href="%s">%s</a></p>`, link, link),
		}
		if err := mailer.Send(c.Request.Context(), email); err != nil {
			zap.L().Error("failed to send reset email", zap.String("userId", user.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to send email"))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(nil))
	}
}

type resetPasswordRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func ResetPasswordHandler(dm *core.DatabaseManager, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		var record models.ForgotPassword
		err := dm.DB.First(&record, "id = ?", req.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("reset link is invalid"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if record.IsReseted != 0 {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("reset link has already been used"))
			return
		}
		if record.ExpiryDateTime < utils.NowTimestamp() {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("reset link has expired"))
			return
		}

		err = dm.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.User{}).Where("id = ?", record.UserID).
				Update("password", security.HashPassword(salt, req.Password)).Error; err != nil {
				return err
			}
			return tx.Model(&models.ForgotPassword{}).Where("id = ?", record.ID).
				Update("is_reseted", 1).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(nil))
	}
}

type setLanguageRequest struct {
	Culture string `json:"culture" binding:"required"`
}

func SetLanguageHandler(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setLanguageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}
		if !catalog.Has(req.Culture) {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("unknown culture"))
			return
		}

		session := sessions.Default(c)
		session.Set(middlewares.SessionCultureKey, req.Culture)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(nil))
	}
}

// MessagesHandler serves the full token table for the session culture so
// the client can localize its own labels.
func MessagesHandler(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		culture := middlewares.Culture(c, i18n.DefaultCulture)
		c.JSON(http.StatusOK, common.NewSuccessResponse(catalog.Table(culture)))
	}
}
