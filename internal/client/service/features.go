package service

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/router"
	"github.com/aussiebroadwan/snaptranslate/internal/client/session"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
	"github.com/patrickmn/go-cache"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	DefaultLanguagesTTL = 5 * time.Minute
	languagesKey        = "languages"
)

// Analysis modes.
const (
	ModeObject = "object"
	ModeScene  = "scene"
)

// popularLanguages are listed ahead of the alphabetical rest.
var popularLanguages = []string{"English", "Japanese", "Korean", "Chinese", "Russian"}

type FeatureConfig struct {
	Backend      Backend
	Session      *session.Manager
	Router       *router.Router
	Logger       *slog.Logger
	Now          func() time.Time
	LanguagesTTL time.Duration
}

// FeatureService runs the translate and image generation features and keeps
// their last results until the user clears them or logs out.
type FeatureService struct {
	backend Backend
	session *session.Manager
	router  *router.Router
	logger  *slog.Logger
	now     func() time.Time
	cache   *cache.Cache

	mu    sync.Mutex
	state FeatureState
	// epoch moves on every Reset.
	epoch uint64
}

// ticket pins a call to the feature state and the sign-in it started under.
type ticket struct {
	features uint64
	session  uint64
}

// ticketLocked must be called with s.mu held.
func (s *FeatureService) ticketLocked() ticket {
	return ticket{features: s.epoch, session: s.session.Snapshot().Epoch}
}

// currentLocked reports whether nothing was reset and the session was neither
// ended nor replaced since t was taken. Results of calls that fail the check
// are dropped with session.ErrStale.
func (s *FeatureService) currentLocked(t ticket) bool {
	return s.epoch == t.features && s.session.Snapshot().Epoch == t.session
}

// FeatureState is what the feature pages currently show.
type FeatureState struct {
	Mode        string                 `json:"mode"`
	Langs       []string               `json:"langs"`
	Translation *snapsdk.AnalyzeResult `json:"translation,omitempty"`
	Image       *ImageResult           `json:"image,omitempty"`
}

type Language struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Popular bool   `json:"popular,omitempty"`
}

type ImageResult struct {
	ImageURL   string        `json:"image_url"`
	Resolution string        `json:"resolution,omitempty"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Prompt     string        `json:"prompt"`
}

type TranslateInput struct {
	Image    []byte
	Filename string
	Mode     string
	Langs    []string
}

func NewFeatureService(cfg FeatureConfig) *FeatureService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.LanguagesTTL <= 0 {
		cfg.LanguagesTTL = DefaultLanguagesTTL
	}

	s := &FeatureService{
		backend: cfg.Backend,
		session: cfg.Session,
		router:  cfg.Router,
		logger:  cfg.Logger,
		now:     cfg.Now,
		cache:   cache.New(cfg.LanguagesTTL, 2*cfg.LanguagesTTL),
		state:   FeatureState{Mode: ModeObject},
	}
	return s
}

// requireSession opens the login prompt when there is no access token.
func (s *FeatureService) requireSession() error {
	if s.session.Snapshot().HasAccessToken {
		return nil
	}
	s.router.RequireLogin()
	return ErrLoginRequired
}

// Translate uploads an image and translates what the backend sees into the
// selected languages.
func (s *FeatureService) Translate(ctx context.Context, in TranslateInput) (*snapsdk.AnalyzeResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if len(in.Image) == 0 {
		return nil, invalid("image", "Please choose an image first")
	}
	if len(in.Langs) == 0 {
		return nil, invalid("langs", "Please choose at least one language")
	}
	mode := cmp.Or(in.Mode, ModeObject)

	s.mu.Lock()
	s.state.Mode = mode
	s.state.Langs = slices.Clone(in.Langs)
	s.state.Translation = nil
	t := s.ticketLocked()
	s.mu.Unlock()

	var res *snapsdk.AnalyzeResult
	err := s.session.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		res, err = s.backend.Analyze(ctx, token, snapsdk.AnalyzeRequest{
			Image:    bytes.NewReader(in.Image),
			Filename: in.Filename,
			Mode:     mode,
			Langs:    in.Langs,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, session.ErrNoAccessToken) {
			s.router.RequireLogin()
			return nil, ErrLoginRequired
		}
		s.logger.Warn("translate failed", "error", err)
		return nil, backendErr("translate", err, "Translation failed or no object found in the image", false)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(t) {
		s.logger.Info("translation discarded, session changed")
		return nil, session.ErrStale
	}
	s.state.Translation = res
	return res, nil
}

// CreateImage generates an image from prompt and reports how long it took.
func (s *FeatureService) CreateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, invalid("prompt", "Please enter a description")
	}

	s.mu.Lock()
	t := s.ticketLocked()
	s.mu.Unlock()

	start := s.now()
	var img *snapsdk.GeneratedImage
	err := s.session.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		img, err = s.backend.GenerateImage(ctx, token, prompt)
		return err
	})
	if err != nil {
		if errors.Is(err, session.ErrNoAccessToken) {
			s.router.RequireLogin()
			return nil, ErrLoginRequired
		}
		s.logger.Warn("image generation failed", "error", err)
		return nil, backendErr("create_image", err, "Image generation failed, please try again", false)
	}
	if img.ImageURL == "" {
		return nil, &BackendError{Op: "create_image", Message: "Image generation failed, please try again"}
	}

	out := &ImageResult{
		ImageURL:   img.ImageURL,
		Resolution: img.Resolution,
		Elapsed:    s.now().Sub(start),
		Prompt:     prompt,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(t) {
		s.logger.Info("generated image discarded, session changed")
		return nil, session.ErrStale
	}
	s.state.Image = out
	return out, nil
}

// Languages returns the selectable languages, popular ones first and the
// rest by name. The catalogue is cached.
func (s *FeatureService) Languages(ctx context.Context) ([]Language, error) {
	if v, ok := s.cache.Get(languagesKey); ok {
		return slices.Clone(v.([]Language)), nil
	}

	m, err := s.backend.Languages(ctx)
	if err != nil {
		return nil, backendErr("languages", err, "Could not load languages", true)
	}

	coll := collate.New(language.English, collate.IgnoreCase, collate.Loose)
	out := make([]Language, 0, len(m))
	for name, code := range m {
		out = append(out, Language{Name: name, Code: code, Popular: slices.Contains(popularLanguages, name)})
	}
	slices.SortFunc(out, func(a, b Language) int {
		if a.Popular != b.Popular {
			if a.Popular {
				return -1
			}
			return 1
		}
		return coll.CompareString(a.Name, b.Name)
	})

	s.cache.SetDefault(languagesKey, out)
	return slices.Clone(out), nil
}

// SubmitFeedback records a thumbs up or down on a translation.
func (s *FeatureService) SubmitFeedback(ctx context.Context, fb snapsdk.Feedback) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}
	if fb.Feedback != "up" && fb.Feedback != "down" {
		return "", invalid("feedback", `feedback must be "up" or "down"`)
	}
	if fb.TranslationID == "" {
		return "", invalid("translation_id", "translation_id is required")
	}

	var msg *snapsdk.Message
	err := s.session.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		msg, err = s.backend.SubmitFeedback(ctx, token, fb)
		return err
	})
	if err != nil {
		return "", backendErr("feedback", err, "Could not send feedback", true)
	}
	return cmp.Or(msg.Text(), "Thanks for your feedback"), nil
}

// State returns a copy of the feature pages' state.
func (s *FeatureService) State() FeatureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Langs = slices.Clone(s.state.Langs)
	return st
}

// Reset clears inputs and results.
func (s *FeatureService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = FeatureState{Mode: ModeObject}
	s.epoch++
}
