package mockapi

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

const maxUpload = 10 << 20

// Languages is the selectable catalogue, display name to language code.
var Languages = map[string]string{
	"English":    "en",
	"Japanese":   "ja",
	"Chinese":    "zh-CN",
	"Korean":     "ko",
	"French":     "fr",
	"German":     "de",
	"Spanish":    "es",
	"Vietnamese": "vi",
}

var livingKeywords = []string{"animal", "human", "bird", "fish", "insect", "cat", "dog"}

type usageStat struct {
	email      string
	language   string
	imageClass string
	at         time.Time
}

type snapFeedback struct {
	email         string
	feedback      string
	translationID string
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, maps.Clone(Languages))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "No image received")
		return
	}
	defer file.Close()

	img, err := io.ReadAll(file)
	if err != nil || len(img) == 0 {
		writeDetail(w, http.StatusBadRequest, "No image received")
		return
	}

	var langs []string
	if err := json.Unmarshal([]byte(r.FormValue("langs")), &langs); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid language list: "+err.Error())
		return
	}

	mode := r.FormValue("mode")
	label := describe(img, mode)

	result := snapsdk.AnalyzeResult{
		Original:     label,
		TH:           fakeTranslate(label, "th"),
		AudioURL:     fakeAudio(label, "th"),
		Translations: []snapsdk.Translation{},
	}
	for _, name := range langs {
		code, ok := Languages[name]
		if !ok {
			continue
		}
		result.Translations = append(result.Translations, snapsdk.Translation{
			Language:   name,
			Translated: fakeTranslate(label, code),
			AudioURL:   fakeAudio(label, code),
		})
	}

	language := "th"
	if len(result.Translations) > 0 {
		language = result.Translations[0].Language
	}

	s.mu.Lock()
	s.usage = append(s.usage, usageStat{
		email:      p.Subject,
		language:   language,
		imageClass: imageClass(label),
		at:         s.cfg.Now(),
	})
	s.mu.Unlock()

	httpx.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		writeDetail(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, snapsdk.GeneratedImage{
		ImageURL:   fmt.Sprintf("https://images.snaptranslate.invalid/%08x.png", hash32(req.Prompt)),
		Resolution: "1024x1024",
	})
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())

	var req snapsdk.Feedback
	if err := httpx.DecodeJSON(r, &req); err != nil || (req.Feedback != "up" && req.Feedback != "down") || req.TranslationID == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "feedback must be up or down with a translation_id")
		return
	}

	s.mu.Lock()
	s.feedback = append(s.feedback, snapFeedback{email: p.Subject, feedback: req.Feedback, translationID: req.TranslationID})
	s.mu.Unlock()

	httpx.WriteJSON(w, http.StatusOK, snapsdk.Message{Message: "saved feedback"})
}

func (s *Server) handleFeedbackStats(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("translation_id")

	s.mu.Lock()
	var stats snapsdk.FeedbackStats
	for _, f := range s.feedback {
		if id != "" && f.translationID != id {
			continue
		}
		switch f.feedback {
		case "up":
			stats.Up++
		case "down":
			stats.Down++
		}
	}
	s.mu.Unlock()
	stats.Total = stats.Up + stats.Down

	httpx.WriteJSON(w, http.StatusOK, map[string]snapsdk.FeedbackStats{"feedback_stats": stats})
}

// describe fakes recognition: "object" mode names a single object, any
// other mode captions the scene.
func describe(img []byte, mode string) string {
	subjects := []string{"cat", "dog", "bicycle", "teapot", "bird", "umbrella"}
	subject := subjects[hash32(string(img))%uint32(len(subjects))]
	if strings.Contains(strings.ToLower(mode), "object") {
		return subject
	}
	return "a photo of a " + subject + " on a table"
}

func imageClass(label string) string {
	l := strings.ToLower(label)
	for _, k := range livingKeywords {
		if strings.Contains(l, k) {
			return "living"
		}
	}
	return "non-living"
}

func fakeTranslate(text, code string) string {
	return "[" + code + "] " + text
}

func fakeAudio(text, code string) string {
	return fmt.Sprintf("/static/audio/%s-%08x.mp3", code, hash32(text))
}

func hash32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
