package session

import (
	"errors"
	"fmt"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

var ErrInvalidTransition = errors.New("invalid session transition")

type Transition string

const (
	SubmitSetup    Transition = "submit_setup"
	StartRecording Transition = "start_recording"
	AttachAudio    Transition = "attach_audio"
	SubmitAudio    Transition = "submit_audio"
	StartOver      Transition = "start_over"
	Reset          Transition = "reset"
)

// Allows reports whether t may run from the current state, wrapping ErrInvalidTransition when not.
func (s *State) Allows(t Transition) error {
	deny := func(reason string) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidTransition, t, reason)
	}
	switch t {
	case Reset:
		return nil
	case SubmitSetup, StartOver:
		if !s.APIKeyEntered {
			return deny("not authenticated")
		}
	case StartRecording, AttachAudio:
		if !s.APIKeyEntered {
			return deny("not authenticated")
		}
		if s.Content == nil {
			return deny("no study content yet")
		}
	case SubmitAudio:
		if !s.APIKeyEntered {
			return deny("not authenticated")
		}
		if s.Content == nil {
			return deny("no study content yet")
		}
		if s.Audio == nil {
			return deny("no audio attached")
		}
		if s.Evaluated {
			return deny("this audio has already been evaluated")
		}
	default:
		return deny("unknown transition")
	}
	return nil
}

// Authenticate marks the session as holding a usable credential.
func (s *State) Authenticate(apiKey, method string) {
	s.APIKey = apiKey
	s.AuthMethod = method
	s.APIKeyEntered = true
}

// ApplyContent stores freshly generated content; any earlier audio and evaluation are dropped.
func (s *State) ApplyContent(req domain.GenerationRequest, c domain.StudyContent) {
	setup := req.View()
	s.Setup = &setup
	s.Content = &c
	s.Recording = false
	s.Audio = nil
	s.Evaluated = false
	s.EvaluationResults = nil
}

func (s *State) BeginRecording() {
	s.Recording = true
}

// ApplyAudio replaces the single held audio clip.
func (s *State) ApplyAudio(p domain.AudioPayload) {
	s.Recording = false
	s.Audio = &p
	s.Evaluated = false
	s.EvaluationResults = nil
}

func (s *State) ApplyEvaluation(rec domain.EvaluationRecord) {
	s.Evaluated = true
	s.EvaluationResults = &rec
}

// ApplyStartOver clears the practice flow but keeps the session authenticated.
func (s *State) ApplyStartOver() {
	s.Recording = false
	s.Audio = nil
	s.Evaluated = false
	s.EvaluationResults = nil
	s.Content = nil
	s.Setup = nil
}

// ApplyReset returns every field to its initial default, including authentication.
func (s *State) ApplyReset() {
	s.ApplyStartOver()
	s.APIKeyEntered = false
	s.APIKey = ""
	s.AuthMethod = ""
}
