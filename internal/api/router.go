package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/middleware"
	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/services"
)

// Router exposes the survey engine over HTTP. It owns no engine semantics:
// handlers decode, delegate to a service, and encode the result.
type Router struct {
	authoring *services.AuthoringService
	taking    *services.TakingService
	listing   *services.ListingService
	auth      *services.AuthService
	export    *services.ExportService
	validate  *validator.Validate
}

func NewRouter(store Store) *Router {
	return &Router{
		authoring: services.NewAuthoringService(store),
		taking:    services.NewTakingService(store),
		listing:   services.NewListingService(store),
		auth:      services.NewAuthService(store, middleware.SignToken),
		export:    services.NewExportService(store),
		validate:  validator.New(),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister) // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)       // POST
	mux.HandleFunc("/api/surveys", rt.handleSurveys)        // POST
	mux.HandleFunc("/api/surveys/", rt.handleSurveyScoped)  // {id}, {id}/questions, {id}/responses, {id}/export
	mux.HandleFunc("/api/me/surveys", rt.handleMySurveys)   // GET
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createSurveyRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type addQuestionRequest struct {
	Text         string `json:"text" validate:"required"`
	Type         string `json:"type" validate:"required"`
	Required     bool   `json:"required"`
	Section      string `json:"section"`
	Options      string `json:"options"`
	AnalyticsKey string `json:"analytics_key"`
}

type submitRequest struct {
	Answers map[string]services.AnswerValue `json:"answers"`
}

func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req registerRequest
	if err := rt.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user_id": res.UserID})
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := rt.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user_id": res.UserID})
}

// POST /api/surveys — create a survey owned by the authenticated member.
func (rt *Router) handleSurveys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	var req createSurveyRequest
	if err := rt.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sv, err := rt.authoring.CreateSurvey(req.Name, req.Description, uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

func (rt *Router) handleSurveyScoped(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/surveys/"), "/")
	parts := strings.Split(path, "/")
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		uid, _ := middleware.UserIDFromContext(r.Context())
		form, err := rt.taking.Load(id, uid)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, form)
	case len(parts) == 2 && parts[1] == "questions" && r.Method == http.MethodGet:
		questions, err := rt.authoring.ListQuestions(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, questions)
	case len(parts) == 2 && parts[1] == "questions" && r.Method == http.MethodPost:
		if _, ok := rt.requireUser(w, r); !ok {
			return
		}
		var req addQuestionRequest
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		qt, err := services.ParseQuestionType(req.Type)
		if err != nil {
			writeError(w, err)
			return
		}
		q, err := rt.authoring.AddQuestion(id, services.QuestionDraft{
			Text:         req.Text,
			Type:         qt,
			Required:     req.Required,
			Section:      req.Section,
			OptionsRaw:   req.Options,
			AnalyticsKey: req.AnalyticsKey,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	case len(parts) == 2 && parts[1] == "responses" && (r.Method == http.MethodPost || r.Method == http.MethodPut):
		uid, ok := rt.requireUser(w, r)
		if !ok {
			return
		}
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, services.NewInvalidError("invalid json: "+err.Error()))
			return
		}
		res, err := rt.taking.Submit(id, uid, req.Answers)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	case len(parts) == 2 && parts[1] == "export" && r.Method == http.MethodGet:
		if _, ok := rt.requireUser(w, r); !ok {
			return
		}
		res, err := rt.export.ResponsesCSV(id)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", res.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
		_, _ = w.Write(res.Data)
	default:
		http.NotFound(w, r)
	}
}

// GET /api/me/surveys — active surveys with the caller's completion status.
func (rt *Router) handleMySurveys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := rt.requireUser(w, r)
	if !ok {
		return
	}
	statuses, err := rt.listing.Overview(uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (rt *Router) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return "", false
	}
	return uid, true
}

func (rt *Router) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return services.NewInvalidError("invalid json: " + err.Error())
	}
	if err := rt.validate.Struct(dst); err != nil {
		return services.NewInvalidError(err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var mre *services.MissingRequiredError
	if errors.As(err, &mre) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": mre.Error(), "question": mre.QuestionText})
		return
	}
	if se, ok := services.AsServiceError(err); ok {
		writeJSON(w, statusFor(se.Code), map[string]any{"error": se.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
}

func statusFor(code services.ErrorCode) int {
	switch code {
	case services.ErrorInvalid:
		return http.StatusBadRequest
	case services.ErrorNotFound:
		return http.StatusNotFound
	case services.ErrorConflict:
		return http.StatusConflict
	case services.ErrorUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
