package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/snaptranslate/internal/client/notify"
	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
	"github.com/aussiebroadwan/snaptranslate/pkg/httpx"
	"github.com/aussiebroadwan/snaptranslate/pkg/snapsdk"
)

// MaxUploadBytes bounds an uploaded image.
const MaxUploadBytes = 10 << 20

type ImageRequest struct {
	Prompt string `json:"prompt" example:"a red fox in the snow"`
}

type LanguagesResponse struct {
	Languages []service.Language `json:"languages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type FeatureHandler struct {
	FeatureService *service.FeatureService
	Notices        *notify.Center
}

// HandleLanguages lists the translation targets.
//
//	@Summary		List languages
//	@Description	Popular languages first, the rest alphabetical.
//	@Tags			Features
//	@Produce		json
//	@Success		200	{object}	LanguagesResponse
//	@Failure		502	{object}	httpx.ErrorBody
//	@Router			/v1/languages [get].
func (h *FeatureHandler) HandleLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.FeatureService.Languages(r.Context())
	if err != nil {
		writeServiceError(w, r, h.Notices, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, LanguagesResponse{Languages: langs})
}

// HandleTranslate uploads an image and translates what the backend sees.
//
//	@Summary		Translate an image
//	@Description	Without a session the login prompt opens and 401 login_required is returned.
//	@Tags			Features
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file		true	"Image to analyze"
//	@Param			mode	formData	string		false	"object or scene"
//	@Param			langs	formData	[]string	false	"Target language codes"
//	@Success		200		{object}	snapsdk.AnalyzeResult
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody	"login_required"
//	@Failure		502		{object}	httpx.ErrorBody
//	@Router			/v1/translate [post].
func (h *FeatureHandler) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeBadRequest(w, h.Notices, "The image is too large")
			return
		}
		writeBadRequest(w, h.Notices, "Please choose an image first")
		return
	}

	in := service.TranslateInput{
		Mode:  r.FormValue("mode"),
		Langs: splitLangs(r.MultipartForm.Value["langs"]),
	}
	if f, hdr, err := r.FormFile("image"); err == nil {
		defer f.Close()
		if in.Image, err = io.ReadAll(f); err != nil {
			writeBadRequest(w, h.Notices, "Could not read the image")
			return
		}
		in.Filename = hdr.Filename
	}

	res, err := h.FeatureService.Translate(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, h.Notices, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// splitLangs accepts repeated fields as well as comma separated lists.
func splitLangs(values []string) []string {
	var out []string
	for _, v := range values {
		for code := range strings.SplitSeq(v, ",") {
			if code = strings.TrimSpace(code); code != "" {
				out = append(out, code)
			}
		}
	}
	return out
}

// HandleCreateImage generates an image from a prompt.
//
//	@Summary	Create an image
//	@Tags		Features
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ImageRequest	true	"Prompt"
//	@Success	200		{object}	service.ImageResult
//	@Failure	400		{object}	httpx.ErrorBody
//	@Failure	401		{object}	httpx.ErrorBody	"login_required"
//	@Failure	502		{object}	httpx.ErrorBody
//	@Router		/v1/images [post].
func (h *FeatureHandler) HandleCreateImage(w http.ResponseWriter, r *http.Request) {
	var req ImageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, h.Notices, "Invalid request body")
		return
	}
	res, err := h.FeatureService.CreateImage(r.Context(), req.Prompt)
	if err != nil {
		writeServiceError(w, r, h.Notices, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleFeedback records a thumbs up or down on a translation.
//
//	@Summary	Translation feedback
//	@Tags		Features
//	@Accept		json
//	@Produce	json
//	@Param		request	body		snapsdk.Feedback	true	"Feedback"
//	@Success	200		{object}	MessageResponse
//	@Failure	400		{object}	httpx.ErrorBody
//	@Router		/v1/feedback [post].
func (h *FeatureHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	var req snapsdk.Feedback
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, h.Notices, "Invalid request body")
		return
	}
	msg, err := h.FeatureService.SubmitFeedback(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, h.Notices, err)
		return
	}
	h.Notices.Success(msg)
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// HandleReset clears feature inputs and results.
//
//	@Summary	Reset feature state
//	@Tags		Features
//	@Success	204
//	@Router		/v1/features/reset [post].
func (h *FeatureHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.FeatureService.Reset()
	w.WriteHeader(http.StatusNoContent)
}
