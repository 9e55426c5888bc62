package handler

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/errors"
	pipelineDTO "github.com/Samadhi-12/MinuteMe/internal/adapter/dto/pipeline"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/pipeline"
)

// RunStarter launches a background automation run
type RunStarter interface {
	Start(ctx context.Context, id entities.Identity, in pipeline.StartInput) (*pipeline.Run, error)
}

// Automation triggers the full transcription to action items pipeline
type Automation struct {
	runs   RunStarter
	logger *zap.Logger
}

// NewAutomation creates a new automation handler
func NewAutomation(runs RunStarter, logger *zap.Logger) *Automation {
	return &Automation{runs: runs, logger: logger}
}

// Process handles POST /process-automated and POST /process-meeting
// @Summary      Start an automation run
// @Description  Returns immediately. Progress and failures are reported only through notifications.
// @Tags         Automation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      pipeline.ProcessAutomatedRequest  true  "Media and target meeting"
// @Success      202      {object}  common.SuccessResponse{data=pipeline.Run}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      403      {object}  common.ErrorResponse  "Monthly automation quota reached"
// @Failure      404      {object}  common.ErrorResponse
// @Failure      503      {object}  common.ErrorResponse  "Server is shutting down"
// @Router       /process-automated [post]
func (h *Automation) Process(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req pipelineDTO.ProcessAutomatedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	run, err := h.runs.Start(c.Request().Context(), id, pipeline.StartInput{
		Source:    req.Source,
		MeetingID: req.MeetingID,
		Schedule:  pipelineDTO.ShouldSchedule(req.Schedule),
	})
	if stdErrors.Is(err, pipeline.ErrShuttingDown) {
		return HandleError(h.logger, c, errors.ErrUnavailable("server is shutting down"))
	}
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleStatus(h.logger, c, http.StatusAccepted, run)
}
