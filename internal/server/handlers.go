package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/abdulachik/fanpost/internal/db"
	"github.com/abdulachik/fanpost/internal/fanvue"
	"github.com/abdulachik/fanpost/internal/generator"
	"github.com/abdulachik/fanpost/internal/pipeline"
)

// maxUploadBytes caps the parsed multipart form size.
const maxUploadBytes = 512 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var apiErr *fanvue.APIError
	var valErr *fanvue.ValidationError
	switch {
	case errors.Is(err, fanvue.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.As(err, &valErr):
		status = http.StatusBadRequest
	case errors.As(err, &apiErr):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"authenticated": s.app.Session.IsAuthenticated(),
	})
}

type authRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	label, err := s.app.Session.Authenticate(r.Context(), s.app.Client, req.AccessToken, req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"account": label})
}

// handleCreatePost accepts a multipart form: an optional "media" file plus
// "caption", "audience" and "scheduled_at" fields, and runs the full
// upload-and-publish pipeline.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to parse form: file may be too large"})
		return
	}

	var filePath string
	file, header, err := r.FormFile("media")
	if err == nil {
		defer file.Close()

		// The uploader works on local paths, so spool the part to a temp
		// file that keeps the original extension for media-type detection.
		tmp, err := os.CreateTemp("", "fanpost_*"+filepath.Ext(header.Filename))
		if err != nil {
			writeError(w, err)
			return
		}
		defer os.Remove(tmp.Name())

		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			writeError(w, err)
			return
		}
		tmp.Close()
		filePath = tmp.Name()
	} else if !errors.Is(err, http.ErrMissingFile) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid media file"})
		return
	}

	result, err := s.app.Pipeline.Run(r.Context(), pipeline.Request{
		FilePath:    filePath,
		Caption:     r.FormValue("caption"),
		Audience:    r.FormValue("audience"),
		ScheduledAt: r.FormValue("scheduled_at"),
	}, nil)
	if err != nil {
		writeError(w, err)
		return
	}

	s.recordPost(r, result)

	writeJSON(w, http.StatusCreated, map[string]string{
		"post_id":    result.PostID,
		"media_uuid": result.MediaUUID,
	})
}

func (s *Server) recordPost(r *http.Request, result *pipeline.Result) {
	_, err := s.app.Store.CreatePublishedPost(r.Context(), db.CreatePublishedPostParams{
		PostUUID:    result.PostID,
		MediaUUID:   nullString(result.MediaUUID),
		Caption:     r.FormValue("caption"),
		Audience:    fanvue.MapAudience(r.FormValue("audience")),
		ScheduledAt: nullString(r.FormValue("scheduled_at")),
	})
	if err != nil {
		slog.Warn("failed to record post", "error", err)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	posts, err := s.app.Publisher.ListPosts(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(posts)
}

// handleCaption accepts a multipart form with an optional "media" image and
// "style"/"prompt" fields, and returns a generated caption. Video files get
// a text-only caption.
func (s *Server) handleCaption(w http.ResponseWriter, r *http.Request) {
	if s.app.Generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "OPENAI_API_KEY is not configured"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to parse form"})
		return
	}

	style := r.FormValue("style")
	customPrompt := r.FormValue("prompt")

	file, header, err := r.FormFile("media")
	if errors.Is(err, http.ErrMissingFile) {
		caption, err := s.app.Generator.VideoCaption(r.Context(), style, customPrompt)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"caption": caption})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid media file"})
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "fanpost_caption_*"+filepath.Ext(header.Filename))
	if err != nil {
		writeError(w, err)
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, err)
		return
	}
	tmp.Close()

	var caption string
	if fanvue.MediaTypeFor(header.Filename) == "video" {
		caption, err = s.app.Generator.VideoCaption(r.Context(), style, customPrompt)
	} else {
		caption, err = s.app.Generator.ImageCaption(r.Context(), tmp.Name(), style, customPrompt)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"caption": caption})
}

type planRequest struct {
	Niche           string `json:"niche"`
	Days            int    `json:"days"`
	IncludeSeasonal bool   `json:"include_seasonal"`
	IncludePPV      bool   `json:"include_ppv"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	if s.app.Generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "OPENAI_API_KEY is not configured"})
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	ideas, err := s.app.Generator.GeneratePlan(r.Context(), generator.PlanRequest{
		Niche:           req.Niche,
		Days:            req.Days,
		IncludeSeasonal: req.IncludeSeasonal,
		IncludePPV:      req.IncludePPV,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	ideasJSON, err := json.Marshal(ideas)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.app.Store.CreateContentPlan(r.Context(), db.CreateContentPlanParams{
		Niche:     req.Niche,
		Days:      len(ideas),
		IdeasJSON: string(ideasJSON),
	})
	if err != nil {
		slog.Warn("failed to store content plan", "error", err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":    id,
		"ideas": ideas,
	})
}

func (s *Server) handleLatestPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.app.Store.GetLatestContentPlan(r.Context())
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no content plan stored"})
		return
	}

	var ideas []generator.Idea
	if err := json.Unmarshal([]byte(plan.IdeasJSON), &ideas); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         plan.ID,
		"niche":      plan.Niche,
		"days":       plan.Days,
		"created_at": plan.CreatedAt,
		"ideas":      ideas,
	})
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
