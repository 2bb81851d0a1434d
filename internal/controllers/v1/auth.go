package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterAuthRoutes registers the routes for signup and login with the
// RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/signup", httputil.OptionsPost)
	r.POST("/signup", Signup)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login)
}

// RegisterAccountRoutes registers the routes for the authenticated
// user's own account with the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetDelete)
	r.GET("", GetMe)
	r.DELETE("", DeleteMe)
}

// Credentials are the user supplied values for signup and login.
type Credentials struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"` // The email address of the user
	Password string `json:"password" binding:"required,min=6" example:"correct horse"` // The password, at least 6 characters
}

// User is the representation of a User in API v1. The password hash
// never leaves the server.
type User struct {
	models.DefaultModel
	Email string `json:"email" example:"jane@example.com"` // The email address of the user
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Email:        model.Email,
	}
}

// Session is a logged-in user together with their bearer token.
type Session struct {
	User  User   `json:"user"`                                      // The user the session belongs to
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsIn..."` // Bearer token for the Authorization header
}

type SessionResponse struct {
	Error *string  `json:"error" example:"invalid email or password"` // The error, if any occurred
	Data  *Session `json:"data"`                                      // The session data
}

type UserResponse struct {
	Error *string `json:"error" example:"the token is invalid or expired"` // The error, if any occurred
	Data  *User   `json:"data"`                                            // The user data
}

// @Summary		Sign up
// @Description	Registers a new user and returns a session token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		Credentials	true	"Credentials"
// @Router			/v1/auth/signup [post]
func Signup(c *gin.Context) {
	var credentials Credentials

	err := httputil.BindData(c, &credentials)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	hash, err := auth.HashPassword(credentials.Password)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{
			Error: &e,
		})
		return
	}

	user := models.User{
		Email:        credentials.Email,
		PasswordHash: hash,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	session, err := newSession(user)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Data: &session})
}

// @Summary		Log in
// @Description	Verifies the credentials and returns a session token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		401			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		Credentials	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var credentials Credentials

	err := httputil.BindData(c, &credentials)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	var user models.User
	err = models.DB.Where(&models.User{Email: credentials.Email}).First(&user).Error
	if err != nil {
		// An unknown email and a wrong password are indistinguishable
		// on purpose
		if errors.Is(err, models.ErrResourceNotFound) {
			err = auth.ErrInvalidCredentials
		}

		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, credentials.Password) {
		e := auth.ErrInvalidCredentials.Error()
		c.JSON(http.StatusUnauthorized, SessionResponse{
			Error: &e,
		})
		return
	}

	session, err := newSession(user)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Data: &session})
}

// newSession issues a token for the user.
func newSession(user models.User) (Session, error) {
	token, err := auth.NewToken(user.ID, user.Email)
	if err != nil {
		return Session{}, models.ErrGeneral
	}

	return Session{
		User:  newUser(user),
		Token: token,
	}, nil
}

// @Summary		Get own user
// @Description	Returns the authenticated user
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Router			/v1/me [get]
// @Security		BearerAuth
func GetMe(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", auth.UserID(c)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Delete own user
// @Description	Permanently deletes the authenticated user with all their transactions and categories
// @Tags			Auth
// @Success		204
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/me [delete]
// @Security		BearerAuth
func DeleteMe(c *gin.Context) {
	userID := auth.UserID(c)

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()

	// Unscoped, so that the email address can be registered again
	err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Transaction{}).Error
	if err == nil {
		err = tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Category{}).Error
	}
	if err == nil {
		err = tx.Unscoped().Where("id = ?", userID).Delete(&models.User{}).Error
	}

	if err != nil {
		tx.Rollback()
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	tx.Commit()
	c.JSON(http.StatusNoContent, nil)
}
