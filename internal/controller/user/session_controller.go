package user

import (
	"errors"
	"net/http"

	"github.com/Loikaaa/neplia-sub001/internal/dto"
	"github.com/Loikaaa/neplia-sub001/internal/service"
	"github.com/Loikaaa/neplia-sub001/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessionService service.SessionService
}

func NewSessionController(sessionService service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// StartSession godoc
// @Summary (User) Start a mock-test session
// @Description Creates a live session over the test's sections, positioned at the first section. Optionally arms per-section countdowns.
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param start_data body dto.SessionStartDTO true "Optional user id and timing flag"
// @Success 201 {object} dto.SessionSnapshotDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/sessions [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	testID, ok := parseUintParam(ctx, "test_id")
	if !ok {
		return
	}

	// An empty body is fine: all fields are optional.
	var req dto.SessionStartDTO
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
			return
		}
	}

	snap, err := c.sessionService.Start(testID, req)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("StartSession: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, snap)
}

// GetSession godoc
// @Summary (User) Get the current session state
// @Description Live snapshot: current section, answered count, playback state, deadline if timing is enforced.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionSnapshotDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	snap, err := c.sessionService.Get(ctx.Param("session_id"))
	if err != nil {
		respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// NextSection godoc
// @Summary (User) Advance to the next section
// @Description Moves forward one section. At the last section this is a no-op; check is_last_section and submit instead.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionSnapshotDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already completed"
// @Router /sessions/{session_id}/next [post]
func (c *SessionController) NextSection(ctx *gin.Context) {
	snap, err := c.sessionService.Next(ctx.Param("session_id"))
	if err != nil {
		respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// PreviousSection godoc
// @Summary (User) Go back to the previous section
// @Description Moves back one section. At the first section this is a no-op.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionSnapshotDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already completed"
// @Router /sessions/{session_id}/previous [post]
func (c *SessionController) PreviousSection(ctx *gin.Context) {
	snap, err := c.sessionService.Previous(ctx.Param("session_id"))
	if err != nil {
		respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// SetAnswer godoc
// @Summary (User) Record an answer
// @Description Stores the answer for a question; later writes overwrite earlier ones. An empty value is stored as an explicit cleared answer.
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answer body dto.SessionAnswerDTO true "Question ID and answer value"
// @Success 200 {object} dto.SessionSnapshotDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already completed"
// @Router /sessions/{session_id}/answers [put]
func (c *SessionController) SetAnswer(ctx *gin.Context) {
	var req dto.SessionAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SetAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	snap, err := c.sessionService.SetAnswer(ctx.Param("session_id"), req)
	if err != nil {
		respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// GetPlayback godoc
// @Summary (User) Get playback state for the active section
// @Description Syncs the media clock and returns play status, progress percent and volume.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.PlaybackStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Section has no audio"
// @Router /sessions/{session_id}/playback [get]
func (c *SessionController) GetPlayback(ctx *gin.Context) {
	state, err := c.sessionService.PlaybackState(ctx.Param("session_id"))
	if err != nil {
		respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// TogglePlayback godoc
// @Summary (User) Toggle play/pause
// @Description Flips the transport. If the media cannot start, the error is reported and the state stays paused.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.PlaybackStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Section has no audio"
// @Failure 502 {object} dto.ErrorResponse "Media source failed to start"
// @Router /sessions/{session_id}/playback/toggle [post]
func (c *SessionController) TogglePlayback(ctx *gin.Context) {
	state, err := c.sessionService.TogglePlayback(ctx.Param("session_id"))
	if err != nil {
		respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// ReplayPlayback godoc
// @Summary (User) Replay from the start
// @Description Rewinds to zero and plays: paused audio starts, playing audio restarts.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.PlaybackStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Section has no audio"
// @Router /sessions/{session_id}/playback/replay [post]
func (c *SessionController) ReplayPlayback(ctx *gin.Context) {
	state, err := c.sessionService.ReplayPlayback(ctx.Param("session_id"))
	if err != nil {
		respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// SetVolume godoc
// @Summary (User) Set playback volume
// @Description Applies immediately, playing or not. Values outside 0-100 are clamped.
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param volume body dto.VolumeDTO true "Volume percent"
// @Success 200 {object} dto.PlaybackStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Section has no audio"
// @Router /sessions/{session_id}/playback/volume [put]
func (c *SessionController) SetVolume(ctx *gin.Context) {
	var req dto.VolumeDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	state, err := c.sessionService.SetVolume(ctx.Param("session_id"), req.Percent)
	if err != nil {
		respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// SubmitSession godoc
// @Summary (User) Submit the session
// @Description Fires the submission gate: the session freezes, answers are graded and the attempt persisted. Partial submissions are accepted; submitting twice returns the same attempt.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.TestAttemptDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Error persisting the attempt"
// @Router /sessions/{session_id}/submit [post]
func (c *SessionController) SubmitSession(ctx *gin.Context) {
	detail, err := c.sessionService.Submit(ctx.Param("session_id"))
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Session not found"})
			return
		}
		log.Error().Err(err).Str("sessionID", ctx.Param("session_id")).Msg("SubmitSession: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit session", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func respondSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Session not found"})
	case errors.Is(err, session.ErrSessionCompleted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Session is already completed"})
	case errors.Is(err, service.ErrNoAudioSection):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Current section has no audio"})
	default:
		log.Error().Err(err).Msg("Session operation failed")
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: err.Error()})
	}
}
