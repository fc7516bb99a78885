package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pathlight/pathlight-backend/internal/middleware"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/repository"
	"github.com/pathlight/pathlight-backend/internal/response"
	"github.com/pathlight/pathlight-backend/internal/service"
	"github.com/pathlight/pathlight-backend/internal/validator"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authService *service.AuthService
	learnerRepo *repository.LearnerRepository
	log         zerolog.Logger
}

func NewAuthHandler(authService *service.AuthService, learnerRepo *repository.LearnerRepository, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		learnerRepo: learnerRepo,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	learner, err := h.learnerRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same response as a wrong password so emails cannot be probed.
			response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.authService.CheckPassword(learner.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	token, err := h.authService.GenerateLearnerToken(c.Request.Context(), learner.ID)
	if err != nil {
		h.log.Error().Err(err).Int("learner_id", learner.ID).Msg("Token generation error")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":   token,
		"learner": learner,
	})
}

// GetProfile godoc
// GET /api/v1/auth/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	learner, err := h.learnerRepo.GetByID(c.Request.Context(), claims.LearnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"learner": learner})
}
