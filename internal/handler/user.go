package handler

import (
	"net/http"
	"time"

	"github.com/Kaidothouse/expense-tracker/internal/middleware"
	"github.com/Kaidothouse/expense-tracker/internal/models"
	"github.com/Kaidothouse/expense-tracker/internal/store"
	"github.com/Kaidothouse/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler serves the profile endpoints.
type UserHandler struct {
	Store *store.Store
}

func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{Store: s}
}

type profileResp struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	MonthlyBudget float64   `json:"monthlyBudget"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toProfileResp(u *models.User) profileResp {
	return profileResp{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		MonthlyBudget: u.MonthlyBudget.InexactFloat64(),
		CreatedAt:     u.CreatedAt,
	}
}

// GetProfile returns the caller's own profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.Store.GetUser(middleware.CallerID(c))
	if err != nil {
		writeStoreError(c, err, "User not found")
		return
	}
	util.Data(c, http.StatusOK, toProfileResp(user))
}

type profileReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateProfile updates the caller's username and/or email.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "body", Message: "malformed JSON body"},
		})
		return
	}

	user, err := h.Store.UpdateProfile(middleware.CallerID(c), store.ProfileInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		writeStoreError(c, err, "User not found")
		return
	}
	util.Data(c, http.StatusOK, toProfileResp(user))
}

type passwordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the caller's current password and stores a
// new bcrypt hash.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req passwordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "body", Message: "malformed JSON body"},
		})
		return
	}
	if len(req.NewPassword) < 6 {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "newPassword", Message: "must be at least 6 characters"},
		})
		return
	}

	user, err := h.Store.GetUser(middleware.CallerID(c))
	if err != nil {
		writeStoreError(c, err, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "currentPassword", Message: "is incorrect"},
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeStoreError(c, err, "User not found")
		return
	}
	if err := h.Store.UpdatePasswordHash(user.ID, string(hash)); err != nil {
		writeStoreError(c, err, "User not found")
		return
	}
	util.Data(c, http.StatusOK, gin.H{"message": "Password updated"})
}
