package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/audio"
	"github.com/yungbote/speechcoach-backend/internal/chart"
	"github.com/yungbote/speechcoach-backend/internal/content"
	"github.com/yungbote/speechcoach-backend/internal/domain"
	"github.com/yungbote/speechcoach-backend/internal/http/response"
	"github.com/yungbote/speechcoach-backend/internal/platform/apierr"
	"github.com/yungbote/speechcoach-backend/internal/platform/ctxutil"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
	"github.com/yungbote/speechcoach-backend/internal/scoring"
	"github.com/yungbote/speechcoach-backend/internal/services"
	"github.com/yungbote/speechcoach-backend/internal/session"
)

type SessionHandler struct {
	log       *logger.Logger
	practice  services.PracticeService
	maxUpload int64
}

func NewSessionHandler(log *logger.Logger, practice services.PracticeService, maxUpload int64) *SessionHandler {
	if maxUpload <= 0 {
		maxUpload = audio.DefaultMaxBytes
	}
	return &SessionHandler{log: log.With("handler", "SessionHandler"), practice: practice, maxUpload: maxUpload}
}

func sessionID(c *gin.Context) string {
	return ctxutil.SessionID(c.Request.Context())
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	st, err := h.practice.Session(c.Request.Context(), sessionID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": st.View()})
}

type setupRequest struct {
	Topic           string `json:"topic"`
	DurationMinutes *int   `json:"duration_minutes"`
	Difficulty      string `json:"difficulty"`
	Kind            string `json:"content_kind"`
}

func (r setupRequest) view() (domain.SetupView, error) {
	difficulty, err := domain.ParseDifficulty(r.Difficulty)
	if err != nil {
		return domain.SetupView{}, err
	}
	kind, err := domain.ParseContentKind(r.Kind)
	if err != nil {
		return domain.SetupView{}, err
	}
	duration := domain.DefaultDurationMinutes
	if r.DurationMinutes != nil {
		duration = *r.DurationMinutes
	}
	return domain.SetupView{Topic: strings.TrimSpace(r.Topic), DurationMinutes: duration, Difficulty: difficulty, Kind: kind}, nil
}

// SubmitSetup generates study content for the chosen setup.
func (h *SessionHandler) SubmitSetup(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	setup, err := req.view()
	if err != nil {
		respondErr(c, err)
		return
	}
	st, err := h.practice.SubmitSetup(c.Request.Context(), sessionID(c), setup)
	if err != nil {
		respondErr(c, err)
		return
	}
	body := gin.H{
		"setup":   st.Setup,
		"content": st.Content,
		"session": st.View(),
	}
	if st.Content != nil && st.Content.Sections != nil {
		display := map[domain.Section]string{}
		for _, s := range domain.Sections {
			display[s] = st.Content.Sections.Display(s)
		}
		body["display"] = display
		body["missing_sections"] = content.MissingSections(*st.Content.Sections)
	}
	response.RespondOK(c, body)
}

func (h *SessionHandler) StartRecording(c *gin.Context) {
	st, err := h.practice.StartRecording(c.Request.Context(), sessionID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": st.View()})
}

// AttachAudio takes either a multipart "audio" file or a JSON {"data_url": ...} browser recording.
func (h *SessionHandler) AttachAudio(c *gin.Context) {
	payload, err := h.readAudio(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	st, err := h.practice.AttachAudio(c.Request.Context(), sessionID(c), payload)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": st.View()})
}

func (h *SessionHandler) readAudio(c *gin.Context) (domain.AudioPayload, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("audio")
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return domain.AudioPayload{}, audio.ErrTooLarge
			}
			return domain.AudioPayload{}, errors.Join(audio.ErrEmpty, err)
		}
		return audio.FromUpload(fh, h.maxUpload)
	}
	var req struct {
		DataURL  string `json:"data_url"`
		Filename string `json:"filename"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return domain.AudioPayload{}, audio.ErrTooLarge
		}
		return domain.AudioPayload{}, errors.Join(audio.ErrBadDataURL, err)
	}
	p, err := audio.FromDataURL(req.DataURL, h.maxUpload)
	if err != nil {
		return domain.AudioPayload{}, err
	}
	if name := strings.TrimSpace(req.Filename); name != "" {
		p.Filename = name
	}
	return p, nil
}

// Evaluate runs transcription then evaluation on the held audio.
func (h *SessionHandler) Evaluate(c *gin.Context) {
	st, err := h.practice.SubmitAudio(c.Request.Context(), sessionID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	rec := st.EvaluationResults
	overall := scoring.Overall(rec.Scores)
	response.RespondOK(c, gin.H{
		"evaluation": rec,
		"overall":    overall,
		"band":       scoring.Band(overall),
		"session":    st.View(),
	})
}

func (h *SessionHandler) evaluated(c *gin.Context) (*session.State, bool) {
	st, err := h.practice.Session(c.Request.Context(), sessionID(c))
	if err != nil {
		respondErr(c, err)
		return nil, false
	}
	if !st.Evaluated || st.EvaluationResults == nil {
		response.RespondError(c, http.StatusNotFound, apierr.CodeNotFound, errors.New("no evaluation yet"))
		return nil, false
	}
	return st, true
}

func (h *SessionHandler) GetEvaluation(c *gin.Context) {
	st, ok := h.evaluated(c)
	if !ok {
		return
	}
	rec := st.EvaluationResults
	overall := scoring.Overall(rec.Scores)
	response.RespondOK(c, gin.H{
		"evaluation": rec,
		"overall":    overall,
		"band":       scoring.Band(overall),
		"breakdown":  scoring.Breakdown(rec.Scores),
		"legend":     domain.ErrorStyles,
	})
}

func (h *SessionHandler) Chart(c *gin.Context) {
	st, ok := h.evaluated(c)
	if !ok {
		return
	}
	png, err := chart.Radar(st.EvaluationResults.Scores)
	if err != nil {
		h.log.Error("Radar chart failed", "session_id", st.ID, "error", err)
		respondErr(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *SessionHandler) StartOver(c *gin.Context) {
	st, err := h.practice.StartOver(c.Request.Context(), sessionID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": st.View()})
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.practice.Reset(c.Request.Context(), sessionID(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
