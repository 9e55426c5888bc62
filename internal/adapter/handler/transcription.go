package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/errors"
	pipelineDTO "github.com/Samadhi-12/MinuteMe/internal/adapter/dto/pipeline"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/transcription"
)

// DefaultMaxUploadBytes bounds multipart media uploads
const DefaultMaxUploadBytes int64 = 2 << 30

// Transcription handles transcription requests and stored transcripts
type Transcription struct {
	transcripts    *transcription.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewTranscription creates a new transcription handler
func NewTranscription(transcripts *transcription.Service, maxUploadBytes int64, logger *zap.Logger) *Transcription {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Transcription{transcripts: transcripts, maxUploadBytes: maxUploadBytes, logger: logger}
}

// Transcribe handles POST /transcribe
// @Summary      Transcribe media
// @Description  Transcribes a URL, storage key or uploaded file. Free users are capped by duration and monthly calls.
// @Tags         Transcription
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        request     body      pipeline.TranscribeRequest  false  "Source to transcribe"
// @Param        file        formData  file                        false  "Media upload"
// @Param        meeting_id  formData  string                      false  "Meeting to attach the transcript to"
// @Success      200         {object}  common.SuccessResponse{data=entities.Transcript}
// @Failure      400         {object}  common.ErrorResponse
// @Failure      403         {object}  common.ErrorResponse  "Quota exceeded or video too long"
// @Failure      422         {object}  common.ErrorResponse  "Media could not be decoded"
// @Failure      500         {object}  common.ErrorResponse
// @Router       /transcribe [post]
func (h *Transcription) Transcribe(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	ctx := c.Request().Context()

	var req pipelineDTO.TranscribeRequest
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		req.MeetingID = c.FormValue("meeting_id")
		req.Source = c.FormValue("source")

		if fh, ferr := c.FormFile("file"); ferr == nil {
			if fh.Size > h.maxUploadBytes {
				return HandleError(h.logger, c, errors.ErrInvalidArgument(
					fmt.Sprintf("file exceeds the %d byte upload limit", h.maxUploadBytes)))
			}
			f, err := fh.Open()
			if err != nil {
				return HandleError(h.logger, c, errors.ErrInvalidPayload())
			}
			defer f.Close()

			source, err := h.transcripts.Upload(ctx, id.UserID, fh.Filename, f, fh.Size, fh.Header.Get(echo.HeaderContentType))
			if err != nil {
				return HandleError(h.logger, c, err)
			}
			req.Source = source
		}
	} else if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.transcripts.Transcribe(ctx, id, transcription.Request{
		Source:    req.Source,
		MeetingID: req.MeetingID,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, t)
}

// List handles GET /transcripts
// @Summary      List transcripts
// @Tags         Transcription
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of transcripts"
// @Success      200    {object}  common.SuccessResponse{data=[]entities.Transcript}
// @Router       /transcripts [get]
func (h *Transcription) List(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	list, err := h.transcripts.List(c.Request().Context(), id.UserID, limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if list == nil {
		list = []*entities.Transcript{}
	}
	return HandleSuccess(h.logger, c, list)
}

// Get handles GET /transcripts/:id
// @Summary      Get a transcript
// @Tags         Transcription
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transcript ID"
// @Success      200  {object}  common.SuccessResponse{data=entities.Transcript}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /transcripts/{id} [get]
func (h *Transcription) Get(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	t, err := h.transcripts.Get(c.Request().Context(), id.UserID, c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, t)
}

// Delete handles DELETE /transcripts/:id
// @Summary      Delete a transcript
// @Tags         Transcription
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transcript ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /transcripts/{id} [delete]
func (h *Transcription) Delete(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.transcripts.Delete(c.Request().Context(), id.UserID, c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": c.Param("id")})
}
