package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

// State is everything one practice session holds between requests.
type State struct {
	ID string `json:"id"`

	Recording         bool                     `json:"recording"`
	Audio             *domain.AudioPayload     `json:"audio_file,omitempty"`
	Evaluated         bool                     `json:"evaluated"`
	EvaluationResults *domain.EvaluationRecord `json:"evaluation_results,omitempty"`
	Content           *domain.StudyContent     `json:"content,omitempty"`
	Setup             *domain.SetupView        `json:"setup,omitempty"`

	APIKeyEntered bool   `json:"api_key_entered"`
	APIKey        string `json:"api_key,omitempty"`
	AuthMethod    string `json:"auth_method,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(now time.Time) *State {
	return &State{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// AudioRef describes the held audio without its bytes.
type AudioRef struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Size     int    `json:"size"`
}

// View is the client-facing projection of State. It never carries the API key or audio bytes.
type View struct {
	ID                string                   `json:"id"`
	Recording         bool                     `json:"recording"`
	AudioFile         *AudioRef                `json:"audio_file"`
	Evaluated         bool                     `json:"evaluated"`
	EvaluationResults *domain.EvaluationRecord `json:"evaluation_results"`
	Content           *domain.StudyContent     `json:"content"`
	Setup             *domain.SetupView        `json:"setup"`
	APIKeyEntered     bool                     `json:"api_key_entered"`
	AuthMethod        string                   `json:"auth_method,omitempty"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

func (s *State) View() View {
	v := View{
		ID:                s.ID,
		Recording:         s.Recording,
		Evaluated:         s.Evaluated,
		EvaluationResults: s.EvaluationResults,
		Content:           s.Content,
		Setup:             s.Setup,
		APIKeyEntered:     s.APIKeyEntered,
		AuthMethod:        s.AuthMethod,
		UpdatedAt:         s.UpdatedAt,
	}
	if s.Audio != nil {
		v.AudioFile = &AudioRef{Filename: s.Audio.Filename, MIMEType: s.Audio.MIMEType, Size: s.Audio.Size()}
	}
	return v
}
