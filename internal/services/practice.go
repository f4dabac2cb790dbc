package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/speechcoach-backend/internal/auth"
	"github.com/yungbote/speechcoach-backend/internal/content"
	"github.com/yungbote/speechcoach-backend/internal/domain"
	"github.com/yungbote/speechcoach-backend/internal/evaluation"
	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/observability"
	"github.com/yungbote/speechcoach-backend/internal/platform/ctxutil"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
	"github.com/yungbote/speechcoach-backend/internal/session"
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	State     *session.State
}

// PracticeService drives one learner session through setup, recording and evaluation.
type PracticeService interface {
	LoginWithAPIKey(ctx context.Context, apiKey string) (*LoginResult, error)
	LoginWithPassword(ctx context.Context, password string) (*LoginResult, error)
	// SessionFromToken resolves a session token to its id.
	SessionFromToken(token string) (string, error)
	Session(ctx context.Context, id string) (*session.State, error)
	SubmitSetup(ctx context.Context, id string, setup domain.SetupView) (*session.State, error)
	StartRecording(ctx context.Context, id string) (*session.State, error)
	AttachAudio(ctx context.Context, id string, payload domain.AudioPayload) (*session.State, error)
	SubmitAudio(ctx context.Context, id string) (*session.State, error)
	StartOver(ctx context.Context, id string) (*session.State, error)
	Reset(ctx context.Context, id string) error
	PasswordEnabled() bool
}

type PracticeDeps struct {
	Log       *logger.Logger
	Factory   generation.Factory
	Store     session.Store
	Auth      auth.Service
	Tokens    *auth.Tokens
	Generator *content.Generator
	Evaluator *evaluation.Evaluator
	// CallTimeout bounds each pipeline run; zero means no extra deadline.
	CallTimeout time.Duration
}

type practiceService struct {
	log       *logger.Logger
	factory   generation.Factory
	store     session.Store
	auth      auth.Service
	tokens    *auth.Tokens
	generator *content.Generator
	evaluator *evaluation.Evaluator
	timeout   time.Duration
	locks     *sessionLocks
	now       func() time.Time
}

func NewPracticeService(d PracticeDeps) (PracticeService, error) {
	if d.Factory == nil || d.Store == nil || d.Auth == nil || d.Tokens == nil {
		return nil, fmt.Errorf("practice service: factory, store, auth and tokens are required")
	}
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	gen := d.Generator
	if gen == nil {
		gen = content.NewGenerator(log)
	}
	ev := d.Evaluator
	if ev == nil {
		ev = evaluation.NewEvaluator(log)
	}
	return &practiceService{
		log:       log.With("service", "PracticeService"),
		factory:   d.Factory,
		store:     d.Store,
		auth:      d.Auth,
		tokens:    d.Tokens,
		generator: gen,
		evaluator: ev,
		timeout:   d.CallTimeout,
		locks:     newSessionLocks(),
		now:       time.Now,
	}, nil
}

func (s *practiceService) PasswordEnabled() bool { return s.auth.PasswordEnabled() }

func (s *practiceService) LoginWithAPIKey(ctx context.Context, apiKey string) (*LoginResult, error) {
	key, err := s.auth.LoginWithAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, key, auth.MethodAPIKey)
}

func (s *practiceService) LoginWithPassword(ctx context.Context, password string) (*LoginResult, error) {
	key, err := s.auth.LoginWithPassword(ctx, password)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, key, auth.MethodPassword)
}

func (s *practiceService) open(ctx context.Context, apiKey, method string) (*LoginResult, error) {
	st := session.New(s.now().UTC())
	st.Authenticate(apiKey, method)
	if err := s.store.Save(ctx, st); err != nil {
		return nil, err
	}
	token, exp, err := s.tokens.Issue(st.ID, method)
	if err != nil {
		_ = s.store.Delete(ctx, st.ID)
		return nil, err
	}
	s.log.Info("Session opened", "session_id", st.ID, "auth_method", method)
	return &LoginResult{Token: token, ExpiresAt: exp, State: st}, nil
}

func (s *practiceService) SessionFromToken(token string) (string, error) {
	return s.tokens.Parse(token)
}

func (s *practiceService) Session(ctx context.Context, id string) (*session.State, error) {
	return s.store.Get(ctx, id)
}

func (s *practiceService) SubmitSetup(ctx context.Context, id string, setup domain.SetupView) (*session.State, error) {
	return s.apply(ctx, id, session.SubmitSetup, func(ctx context.Context, st *session.State) error {
		req, err := setup.Request()
		if err != nil {
			return err
		}
		c, err := s.capability(ctx, st)
		if err != nil {
			return &content.GenerationError{Topic: req.Topic(), Err: err}
		}
		defer generation.Close(c)

		out, err := s.generator.Generate(ctx, c, req)
		if err != nil {
			return err
		}
		st.ApplyContent(req, out)
		return nil
	})
}

func (s *practiceService) StartRecording(ctx context.Context, id string) (*session.State, error) {
	return s.apply(ctx, id, session.StartRecording, func(ctx context.Context, st *session.State) error {
		st.BeginRecording()
		return nil
	})
}

func (s *practiceService) AttachAudio(ctx context.Context, id string, payload domain.AudioPayload) (*session.State, error) {
	if payload.Empty() {
		return nil, fmt.Errorf("%w: audio is empty", domain.ErrInvalidRequest)
	}
	return s.apply(ctx, id, session.AttachAudio, func(ctx context.Context, st *session.State) error {
		st.ApplyAudio(payload)
		return nil
	})
}

func (s *practiceService) SubmitAudio(ctx context.Context, id string) (*session.State, error) {
	return s.apply(ctx, id, session.SubmitAudio, func(ctx context.Context, st *session.State) error {
		in := evaluation.Input{Audio: *st.Audio}
		if st.Setup != nil {
			in.Topic = st.Setup.Topic
			in.DurationMinutes = st.Setup.DurationMinutes
			in.Difficulty = st.Setup.Difficulty
		}
		c, err := s.capability(ctx, st)
		if err != nil {
			return &evaluation.TranscriptionError{Err: err}
		}
		defer generation.Close(c)

		rec, err := s.evaluator.Evaluate(ctx, c, in)
		if err != nil {
			return err
		}
		st.ApplyEvaluation(rec)
		return nil
	})
}

func (s *practiceService) StartOver(ctx context.Context, id string) (*session.State, error) {
	return s.apply(ctx, id, session.StartOver, func(ctx context.Context, st *session.State) error {
		st.ApplyStartOver()
		return nil
	})
}

// Reset clears everything, authentication included, so the session itself is dropped.
func (s *practiceService) Reset(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()
	if err := s.store.Delete(ctx, id); err != nil {
		observability.Current().IncTransition(string(session.Reset), err)
		return err
	}
	observability.Current().IncTransition(string(session.Reset), nil)
	s.log.Info("Session reset", "session_id", id)
	return nil
}

// apply loads the session under its lock, checks the transition, runs fn and saves.
// When fn fails nothing is saved, so the stored state is left exactly as it was.
func (s *practiceService) apply(ctx context.Context, id string, t session.Transition, fn func(context.Context, *session.State) error) (*session.State, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	metrics := observability.Current()
	ctx = ctxutil.WithSessionID(ctx, id)
	st, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := st.Allows(t); err != nil {
		metrics.IncTransition(string(t), err)
		return nil, err
	}

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	started := s.now()
	if err := fn(runCtx, st); err != nil {
		metrics.IncTransition(string(t), err)
		s.log.Warn("Session transition failed",
			append([]interface{}{"session_id", id, "transition", t, "error", err}, ctxutil.LogFields(ctx)...)...)
		return nil, err
	}
	st.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, st); err != nil {
		metrics.IncTransition(string(t), err)
		return nil, err
	}
	metrics.IncTransition(string(t), nil)
	s.log.Debug("Session transition applied", "session_id", id, "transition", t, "took", s.now().Sub(started))
	return st, nil
}

func (s *practiceService) capability(ctx context.Context, st *session.State) (generation.Capability, error) {
	if st.APIKey == "" {
		return nil, errors.New("session has no api key")
	}
	return s.factory.New(ctx, st.APIKey)
}
