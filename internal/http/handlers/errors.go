package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/audio"
	"github.com/yungbote/speechcoach-backend/internal/auth"
	"github.com/yungbote/speechcoach-backend/internal/content"
	"github.com/yungbote/speechcoach-backend/internal/domain"
	"github.com/yungbote/speechcoach-backend/internal/evaluation"
	"github.com/yungbote/speechcoach-backend/internal/http/response"
	"github.com/yungbote/speechcoach-backend/internal/platform/apierr"
	"github.com/yungbote/speechcoach-backend/internal/session"
)

// toAPIError maps a stage failure to its HTTP status and code. The second value is the raw
// model reply for evaluation failures.
func toAPIError(err error) (*apierr.Error, string) {
	var (
		ae  *apierr.Error
		aue *auth.AuthError
		ge  *content.GenerationError
		te  *evaluation.TranscriptionError
		ee  *evaluation.EvaluationError
		mbe *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ae):
		return ae, ""
	case errors.As(err, &aue):
		return apierr.New(http.StatusUnauthorized, apierr.CodeAuthFailed, err), ""
	case errors.As(err, &ge):
		return apierr.New(http.StatusBadGateway, apierr.CodeGenerationFailed, err), ""
	case errors.As(err, &te):
		return apierr.New(http.StatusBadGateway, apierr.CodeTranscriptionFailed, err), ""
	case errors.As(err, &ee):
		return apierr.New(http.StatusBadGateway, apierr.CodeEvaluationFailed, err), ee.Raw
	case errors.Is(err, session.ErrInvalidTransition):
		return apierr.New(http.StatusConflict, apierr.CodeInvalidTransition, err), ""
	case errors.Is(err, session.ErrNotFound):
		return apierr.New(http.StatusNotFound, apierr.CodeNotFound, err), ""
	case errors.As(err, &mbe), errors.Is(err, audio.ErrTooLarge):
		return apierr.New(http.StatusRequestEntityTooLarge, apierr.CodeInvalidRequest, audio.ErrTooLarge), ""
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, audio.ErrEmpty),
		errors.Is(err, audio.ErrUnsupported),
		errors.Is(err, audio.ErrBadDataURL):
		return apierr.New(http.StatusBadRequest, apierr.CodeInvalidRequest, err), ""
	default:
		return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, errors.New("internal error")), ""
	}
}

func respondErr(c *gin.Context, err error) {
	e, raw := toAPIError(err)
	_ = c.Error(err)
	response.RespondAPIError(c, e, raw)
}

func badRequest(c *gin.Context, err error) {
	response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
}
