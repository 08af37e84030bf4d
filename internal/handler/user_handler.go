package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"issueboard/internal/api"
	"issueboard/internal/apierror"
	"issueboard/internal/auth"
	"issueboard/internal/model"
	"issueboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	repo      repository.UserRepositoryInterface
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserHandler(repo repository.UserRepositoryInterface, jwtSecret string, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates an account and returns a token for it.
//
// @Summary Register
// @Tags    Users
// @Accept  json
// @Produce json
// @Param   request body api.RegisterRequest true "Account"
// @Success 201 {object} api.AuthResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router  /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid input"})
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "User with this email already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          req.Email,
		Name:           req.Name,
		HashedPassword: string(hash),
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Login exchanges credentials for a token.
//
// @Summary Login
// @Tags    Users
// @Accept  json
// @Produce json
// @Param   request body api.LoginRequest true "Credentials"
// @Success 200 {object} api.AuthResponse
// @Failure 401 {object} api.ErrorResponse
// @Router  /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid input"})
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Me returns the account behind the bearer token.
//
// @Summary  Current user
// @Tags     Users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} api.User
// @Failure  401 {object} api.ErrorResponse
// @Router   /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		// The token outlived its account.
		respondError(c, apierror.New(apierror.Unauthorized, "Unauthorized"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := auth.GenerateToken(h.jwtSecret, user.ID.String(), h.tokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(status, api.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func toUserResponse(user *model.User) api.User {
	return api.User{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	}
}
