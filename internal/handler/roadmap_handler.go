package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/middleware"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/progress"
	"github.com/pathlight/pathlight-backend/internal/repository"
	"github.com/pathlight/pathlight-backend/internal/response"
	"github.com/pathlight/pathlight-backend/internal/service"
	"github.com/pathlight/pathlight-backend/internal/validator"
)

type RoadmapHandler struct {
	roadmapService *service.RoadmapService
	contentService *service.ContentService
}

func NewRoadmapHandler(roadmapService *service.RoadmapService, contentService *service.ContentService) *RoadmapHandler {
	return &RoadmapHandler{roadmapService: roadmapService, contentService: contentService}
}

// failDomainError translates engine and repository errors into API responses.
func failDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, progress.ErrEmptyQuiz):
		response.Fail(c, http.StatusBadRequest, response.ErrEmptyQuiz)
	case errors.Is(err, progress.ErrNegativeScore), errors.Is(err, progress.ErrScoreAboveTotal):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidScore)
	case errors.Is(err, repository.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotRoadmapOwner)
	case errors.Is(err, repository.ErrMilestoneNotFound), errors.Is(err, progress.ErrMilestoneNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrMilestoneNotFound)
	case errors.Is(err, progress.ErrTaskNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrTaskNotFound)
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// GenerateDraft godoc
// POST /api/v1/learner/roadmaps/draft
// Drafts a new roadmap via the content producer without persisting it.
func (h *RoadmapHandler) GenerateDraft(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.GenerateRoadmapRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft, err := h.contentService.DraftRoadmap(c.Request.Context(), claims.LearnerID, &req)
	if err != nil {
		if errors.Is(err, service.ErrMalformedContent) {
			response.Fail(c, http.StatusBadGateway, response.ErrMalformedDraft)
			return
		}
		response.Fail(c, http.StatusBadGateway, response.ErrContentProducer)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"roadmap": draft})
}

// Create godoc
// POST /api/v1/learner/roadmaps
// Persists a previously drafted roadmap for the authenticated learner.
func (h *RoadmapHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var draft model.Roadmap
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	if err := draft.ValidateDraft(); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	if err := h.roadmapService.Create(c.Request.Context(), claims.LearnerID, &draft); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"roadmap": draft})
}

// List godoc
// GET /api/v1/learner/roadmaps
func (h *RoadmapHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	roadmaps, err := h.roadmapService.List(c.Request.Context(), claims.LearnerID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"roadmaps": roadmaps})
}

// Get godoc
// GET /api/v1/learner/roadmaps/:roadmap_id
func (h *RoadmapHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)

	roadmapID, err := uuid.Parse(c.Param("roadmap_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	rm, err := h.roadmapService.Get(c.Request.Context(), claims.LearnerID, roadmapID)
	if err != nil {
		failDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"roadmap": rm})
}

// Delete godoc
// DELETE /api/v1/learner/roadmaps/:roadmap_id
func (h *RoadmapHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	roadmapID, err := uuid.Parse(c.Param("roadmap_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.roadmapService.Delete(c.Request.Context(), claims.LearnerID, roadmapID); err != nil {
		failDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "roadmap deleted successfully"})
}

// ToggleTask godoc
// PATCH /api/v1/learner/roadmaps/:roadmap_id/milestones/:milestone_id/tasks/:task_id
// Applies the change optimistically and queues the snapshot for persistence.
func (h *RoadmapHandler) ToggleTask(c *gin.Context) {
	claims := middleware.GetClaims(c)

	roadmapID, milestoneID, taskID, ok := parseTaskPath(c)
	if !ok {
		return
	}

	var req model.ToggleTaskRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rm, syncStatus, err := h.roadmapService.ToggleTask(c.Request.Context(), claims.LearnerID, roadmapID, milestoneID, taskID, *req.Completed)
	if err != nil {
		failDomainError(c, err)
		return
	}

	response.SuccessWithSync(c, http.StatusOK, gin.H{"roadmap": rm}, syncStatus)
}

// GetUnlocks godoc
// GET /api/v1/learner/roadmaps/:roadmap_id/milestones/:milestone_id/unlocks
func (h *RoadmapHandler) GetUnlocks(c *gin.Context) {
	claims := middleware.GetClaims(c)

	roadmapID, milestoneID, ok := parseMilestonePath(c)
	if !ok {
		return
	}

	unlocks, err := h.roadmapService.UnlockStates(c.Request.Context(), claims.LearnerID, roadmapID, milestoneID)
	if err != nil {
		failDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unlocked": unlocks})
}

// GenerateQuiz godoc
// POST /api/v1/learner/roadmaps/:roadmap_id/milestones/:milestone_id/quiz
// Generates a quiz over the milestone's tasks via the content producer.
func (h *RoadmapHandler) GenerateQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)

	roadmapID, milestoneID, ok := parseMilestonePath(c)
	if !ok {
		return
	}

	// The body is optional: an absent payload means the default quiz length.
	var req model.GenerateQuizRequest
	if c.Request.ContentLength > 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}

	rm, err := h.roadmapService.Get(c.Request.Context(), claims.LearnerID, roadmapID)
	if err != nil {
		failDomainError(c, err)
		return
	}
	m := rm.MilestoneByID(milestoneID)
	if m == nil {
		response.Fail(c, http.StatusNotFound, response.ErrMilestoneNotFound)
		return
	}

	questions, err := h.contentService.QuizForMilestone(c.Request.Context(), m, req.QuestionCount)
	if err != nil {
		if errors.Is(err, service.ErrMalformedContent) {
			response.Fail(c, http.StatusBadGateway, response.ErrMalformedDraft)
			return
		}
		response.Fail(c, http.StatusBadGateway, response.ErrContentProducer)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// AnalyzeQuiz godoc
// POST /api/v1/learner/roadmaps/:roadmap_id/milestones/:milestone_id/quiz-analysis
// Returns the producer's qualitative verdict on a finished quiz. Degrades to
// an empty analysis when the producer is unreachable.
func (h *RoadmapHandler) AnalyzeQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)

	roadmapID, milestoneID, ok := parseMilestonePath(c)
	if !ok {
		return
	}

	var req model.AnalyzeQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rm, err := h.roadmapService.Get(c.Request.Context(), claims.LearnerID, roadmapID)
	if err != nil {
		failDomainError(c, err)
		return
	}
	m := rm.MilestoneByID(milestoneID)
	if m == nil {
		response.Fail(c, http.StatusNotFound, response.ErrMilestoneNotFound)
		return
	}

	analysis := h.contentService.AnalyzeAnswers(c.Request.Context(), m, req.Questions, req.Answers)
	response.Success(c, http.StatusOK, gin.H{"analysis": analysis})
}

// SubmitQuizReport godoc
// POST /api/v1/learner/roadmaps/:roadmap_id/milestones/:milestone_id/quiz-reports
// Records a quiz attempt and runs the authoritative completion gate.
func (h *RoadmapHandler) SubmitQuizReport(c *gin.Context) {
	claims := middleware.GetClaims(c)

	roadmapID, milestoneID, ok := parseMilestonePath(c)
	if !ok {
		return
	}

	var req model.SubmitQuizReportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.roadmapService.SubmitQuizReport(c.Request.Context(), claims.LearnerID, roadmapID, milestoneID, &req)
	if err != nil {
		failDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"result": result})
}

// parseMilestonePath extracts the roadmap and milestone ids from the route.
// Writes the error response itself when a segment is malformed.
func parseMilestonePath(c *gin.Context) (roadmapID, milestoneID uuid.UUID, ok bool) {
	roadmapID, err := uuid.Parse(c.Param("roadmap_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, false
	}
	milestoneID, err = uuid.Parse(c.Param("milestone_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, false
	}
	return roadmapID, milestoneID, true
}

func parseTaskPath(c *gin.Context) (roadmapID, milestoneID, taskID uuid.UUID, ok bool) {
	roadmapID, milestoneID, ok = parseMilestonePath(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return roadmapID, milestoneID, taskID, true
}
