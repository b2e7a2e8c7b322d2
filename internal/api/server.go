// Package api exposes the story board and diagram generation over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"uml-generator/internal/diagram"
	"uml-generator/internal/models"
	"uml-generator/internal/workflow"
)

// Generator produces and publishes diagrams
type Generator interface {
	Generate(ctx context.Context, kind models.DiagramKind, stories []string) ([]models.Diagram, error)
	Publish(ctx context.Context, d models.Diagram, render bool) (*models.Artifact, error)
}

var (
	errStoryNotFound  = errors.New("story not found")
	errSprintNotFound = errors.New("sprint not found")
)

// Server holds the dependencies of the HTTP handlers
type Server struct {
	sessions   *workflow.Manager
	classifier workflow.Classifier
	diagrams   Generator
	log        logrus.FieldLogger
}

// NewHandler creates the HTTP handler
func NewHandler(sessions *workflow.Manager, classifier workflow.Classifier, diagrams Generator, log logrus.FieldLogger) http.Handler {
	s := &Server{
		sessions:   sessions,
		classifier: classifier,
		diagrams:   diagrams,
		log:        log.WithField("component", "api"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/diagrams/agile", s.agile)

	r.Post("/sessions", s.createSession)
	r.Route("/sessions/{sid}", func(r chi.Router) {
		r.Delete("/", s.dropSession)

		r.Get("/stories", s.listStories)
		r.Post("/stories", s.addStory)
		r.Put("/stories/{id}", s.editStory)
		r.Delete("/stories/{id}", s.deleteStory)
		r.Post("/stories/{id}/move", s.moveStory)

		r.Post("/classify", s.classify)
		r.Get("/board", s.board)

		r.Get("/sprints", s.listSprints)
		r.Post("/sprints", s.createSprint)
		r.Put("/sprints/{name}", s.assignSprint)
		r.Get("/sprints/{name}/stories", s.sprintStories)

		r.Post("/diagrams/{kind}", s.generate)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request handled")
	})
}

func (s *Server) agile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Diagram{Kind: models.KindAgile, Markup: diagram.AgileProcess()})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id := s.sessions.Create()
	s.log.WithField("session", id).Info("session created")
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) dropSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Drop(chi.URLParam(r, "sid")) {
		s.writeError(w, workflow.ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// withState runs fn on the session named in the URL and writes any error
func (s *Server) withState(w http.ResponseWriter, r *http.Request, fn func(*workflow.State) error) bool {
	if err := s.sessions.With(chi.URLParam(r, "sid"), fn); err != nil {
		s.writeError(w, err)
		return false
	}
	return true
}

func (s *Server) listStories(w http.ResponseWriter, r *http.Request) {
	buckets, err := bucketsFromQuery(r)
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}

	out := make(map[models.Bucket][]models.UserStory, len(buckets))
	if s.withState(w, r, func(st *workflow.State) error {
		for _, b := range buckets {
			out[b] = st.Stories(b)
		}
		return nil
	}) {
		writeJSON(w, http.StatusOK, out)
	}
}

type addStoryRequest struct {
	Bucket string `json:"bucket"`
	Text   string `json:"text"`
}

func (s *Server) addStory(w http.ResponseWriter, r *http.Request) {
	var req addStoryRequest
	if !s.decode(w, r, &req) {
		return
	}
	bucket, err := models.ParseBucket(req.Bucket)
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}

	var (
		story models.UserStory
		added bool
	)
	if !s.withState(w, r, func(st *workflow.State) error {
		story, added = st.Add(bucket, req.Text)
		return nil
	}) {
		return
	}

	if !added {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, story)
}

type editStoryRequest struct {
	Text string `json:"text"`
}

func (s *Server) editStory(w http.ResponseWriter, r *http.Request) {
	var req editStoryRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")

	var story models.UserStory
	if s.withState(w, r, func(st *workflow.State) error {
		st.Edit(id, req.Text)
		var ok bool
		if story, ok = st.Story(id); !ok {
			return errStoryNotFound
		}
		return nil
	}) {
		writeJSON(w, http.StatusOK, story)
	}
}

func (s *Server) deleteStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.withState(w, r, func(st *workflow.State) error {
		if !st.Delete(id) {
			return errStoryNotFound
		}
		return nil
	}) {
		w.WriteHeader(http.StatusNoContent)
	}
}

type moveStoryRequest struct {
	Direction string `json:"direction"`
}

func (s *Server) moveStory(w http.ResponseWriter, r *http.Request) {
	var req moveStoryRequest
	if !s.decode(w, r, &req) {
		return
	}
	dir, err := models.ParseDirection(req.Direction)
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}
	id := chi.URLParam(r, "id")

	var story models.UserStory
	if s.withState(w, r, func(st *workflow.State) error {
		if _, ok := st.MoveStatus(id, dir); !ok {
			return errStoryNotFound
		}
		story, _ = st.Story(id)
		return nil
	}) {
		writeJSON(w, http.StatusOK, story)
	}
}

type classifyRequest struct {
	Stories []string `json:"stories"`
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !s.decode(w, r, &req) {
		return
	}

	var buckets map[models.Bucket][]models.UserStory
	if s.withState(w, r, func(st *workflow.State) error {
		var err error
		buckets, err = st.Classify(r.Context(), s.classifier, req.Stories)
		return err
	}) {
		writeJSON(w, http.StatusOK, buckets)
	}
}

func (s *Server) board(w http.ResponseWriter, r *http.Request) {
	bucket, err := models.ParseBucket(r.URL.Query().Get("bucket"))
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}

	var board models.Board
	if s.withState(w, r, func(st *workflow.State) error {
		board = st.Board(bucket)
		return nil
	}) {
		writeJSON(w, http.StatusOK, board)
	}
}

func (s *Server) listSprints(w http.ResponseWriter, r *http.Request) {
	bucket, err := models.ParseBucket(r.URL.Query().Get("bucket"))
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}

	var sprints []models.Sprint
	if s.withState(w, r, func(st *workflow.State) error {
		sprints = st.Sprints(bucket)
		return nil
	}) {
		writeJSON(w, http.StatusOK, sprints)
	}
}

type createSprintRequest struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

func (s *Server) createSprint(w http.ResponseWriter, r *http.Request) {
	var req createSprintRequest
	if !s.decode(w, r, &req) {
		return
	}
	bucket, err := models.ParseBucket(req.Bucket)
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}

	var created bool
	if !s.withState(w, r, func(st *workflow.State) error {
		created = st.CreateSprint(bucket, req.Name)
		return nil
	}) {
		return
	}

	if !created {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type assignSprintRequest struct {
	Bucket   string   `json:"bucket"`
	StoryIDs []string `json:"story_ids"`
}

func (s *Server) assignSprint(w http.ResponseWriter, r *http.Request) {
	var req assignSprintRequest
	if !s.decode(w, r, &req) {
		return
	}
	bucket, err := models.ParseBucket(req.Bucket)
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}
	name := chi.URLParam(r, "name")

	if s.withState(w, r, func(st *workflow.State) error {
		if !st.AssignToSprint(bucket, name, req.StoryIDs) {
			return errSprintNotFound
		}
		return nil
	}) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) sprintStories(w http.ResponseWriter, r *http.Request) {
	bucket, err := models.ParseBucket(r.URL.Query().Get("bucket"))
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}
	name := chi.URLParam(r, "name")

	var stories []models.UserStory
	if s.withState(w, r, func(st *workflow.State) error {
		var ok bool
		if stories, ok = st.SprintStories(bucket, name); !ok {
			return errSprintNotFound
		}
		return nil
	}) {
		writeJSON(w, http.StatusOK, stories)
	}
}

type generateRequest struct {
	StoryIDs []string `json:"story_ids"`
	Render   bool     `json:"render"`
}

type artifactResponse struct {
	*models.Artifact
	MarkupBase64 string `json:"markup_base64"`
	ImageBase64  string `json:"image_base64,omitempty"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseDiagramKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}
	var req generateRequest
	if !s.decode(w, r, &req) {
		return
	}

	var texts []string
	if !s.withState(w, r, func(st *workflow.State) error {
		texts = st.Texts(req.StoryIDs)
		return nil
	}) {
		return
	}

	diagrams, err := s.diagrams.Generate(r.Context(), kind, texts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]artifactResponse, 0, len(diagrams))
	for _, d := range diagrams {
		artifact, err := s.diagrams.Publish(r.Context(), d, req.Render)
		if err != nil {
			s.writeError(w, err)
			return
		}
		out = append(out, artifactResponse{
			Artifact:     artifact,
			MarkupBase64: artifact.MarkupBase64(),
			ImageBase64:  artifact.ImageBase64(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func bucketsFromQuery(r *http.Request) ([]models.Bucket, error) {
	raw := r.URL.Query().Get("bucket")
	if raw == "" {
		return models.Buckets, nil
	}
	b, err := models.ParseBucket(raw)
	if err != nil {
		return nil, err
	}
	return []models.Bucket{b}, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, badRequest(err))
		return false
	}
	return true
}
