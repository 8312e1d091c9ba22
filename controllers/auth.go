package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/niteen-codes/go-eventhub/config"
	"github.com/niteen-codes/go-eventhub/models"
	"github.com/niteen-codes/go-eventhub/store"
	"github.com/niteen-codes/go-eventhub/utils"
)

// UserStore is the persistence surface the auth handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetResetOTP(ctx context.Context, userID, hashedOTP string, expiry time.Time) error
	UpdatePassword(ctx context.Context, userID, newHash string) error
}

// RegisterInput request body for registration. Email is optional and only
// enables the password-reset flow.
type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginInput request body for login.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordInput request body for requesting a reset OTP.
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput request body for completing a password reset.
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// AuthController implements registration, login and the password-reset flow.
type AuthController struct {
	users UserStore
	cfg   config.Config
}

func NewAuthController(users UserStore, cfg config.Config) *AuthController {
	return &AuthController{users: users, cfg: cfg}
}

// Register creates a new user account.
func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := &models.User{
		Username:  input.Username,
		Password:  hash,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := a.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login authenticates by username/password and returns a bearer token.
func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.users.FindUserByUsername(c.Request.Context(), input.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := utils.CheckPassword(user.Password, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(a.cfg.JWTSecret, user.ID.Hex(), a.cfg.TokenTTL)
	if err != nil {
		log.Printf("Login: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GuestLogin issues a short-lived token with the literal guest subject and
// no persisted identity.
func (a *AuthController) GuestLogin(c *gin.Context) {
	token, err := utils.GenerateToken(a.cfg.JWTSecret, utils.GuestSubject, a.cfg.TokenTTL)
	if err != nil {
		log.Printf("GuestLogin: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "message": "Logged in as guest"})
}

// ForgotPassword generates an OTP, stores it hashed with an expiry, and
// mails it. The response never reveals whether the email exists.
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	const generic = "if that email exists, an OTP has been sent"

	user, err := a.users.FindUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": generic})
		return
	}

	otp := utils.GenerateOTP(6)
	hashedOTP, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate otp"})
		return
	}

	expiry := time.Now().Add(a.cfg.OTPTTL)
	if err := a.users.SetResetOTP(c.Request.Context(), user.ID.Hex(), string(hashedOTP), expiry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store otp"})
		return
	}

	ttlMin := strconv.Itoa(int(a.cfg.OTPTTL.Minutes()))
	body := "Your OTP is: " + otp + "\nThis code expires in " + ttlMin + " minutes."
	if err := a.cfg.SMTP.Send(user.Email, "Your password reset OTP", body); err != nil {
		// dev fallback when smtp is not configured
		log.Println("Failed to send email, OTP (dev-only):", otp, "error:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": generic})
}

// ResetPassword verifies the OTP and sets a new password.
func (a *AuthController) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.users.FindUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid OTP or email"})
		return
	}

	if user.ResetOTP == "" || user.ResetOTPExp.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired OTP"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.ResetOTP), []byte(input.OTP)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid OTP"})
		return
	}

	newHash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	if err := a.users.UpdatePassword(c.Request.Context(), user.ID.Hex(), newHash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset successful"})
}
