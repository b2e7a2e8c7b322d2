// Package workflow holds the per-session story board: classification buckets,
// kanban status and sprints.
package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"uml-generator/internal/models"
)

// Classifier sorts story texts into buckets
type Classifier interface {
	Classify(ctx context.Context, stories []string) (*models.ClassificationResult, error)
}

// State is the story board of one session. It is not safe for concurrent use;
// Manager serializes access per session.
type State struct {
	stories map[models.Bucket][]*models.UserStory
	sprints map[models.Bucket][]*models.Sprint
	newID   func() string
}

// Option configures a State
type Option func(*State)

// WithIDGenerator replaces the UUID generator used for new stories
func WithIDGenerator(gen func() string) Option {
	return func(s *State) {
		s.newID = gen
	}
}

// NewState creates an empty board
func NewState(opts ...Option) *State {
	s := &State{
		stories: make(map[models.Bucket][]*models.UserStory),
		sprints: make(map[models.Bucket][]*models.Sprint),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new ToDo story to bucket. Blank text adds nothing.
func (s *State) Add(bucket models.Bucket, text string) (models.UserStory, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.UserStory{}, false
	}
	story := s.newStory(text)
	s.stories[bucket] = append(s.stories[bucket], story)
	return *story, true
}

// Edit replaces the text of the story with id. Blank text leaves the story as is.
func (s *State) Edit(id, text string) bool {
	story, _, _ := s.find(id)
	text = strings.TrimSpace(text)
	if story == nil || text == "" {
		return false
	}
	story.Text = text
	return true
}

// Delete removes the story with id. Sprint membership is left untouched.
func (s *State) Delete(id string) bool {
	story, bucket, idx := s.find(id)
	if story == nil {
		return false
	}
	list := s.stories[bucket]
	s.stories[bucket] = append(list[:idx:idx], list[idx+1:]...)
	return true
}

// MoveStatus moves the story one kanban column in dir and returns its new status
func (s *State) MoveStatus(id string, dir models.Direction) (models.Status, bool) {
	story, _, _ := s.find(id)
	if story == nil {
		return "", false
	}
	story.Status = story.Status.Move(dir)
	return story.Status, true
}

// Story returns a copy of the story with id
func (s *State) Story(id string) (models.UserStory, bool) {
	story, _, _ := s.find(id)
	if story == nil {
		return models.UserStory{}, false
	}
	return *story, true
}

// Stories returns copies of the stories in bucket, in order
func (s *State) Stories(bucket models.Bucket) []models.UserStory {
	out := make([]models.UserStory, 0, len(s.stories[bucket]))
	for _, story := range s.stories[bucket] {
		out = append(out, *story)
	}
	return out
}

// Board groups the stories of bucket by kanban status
func (s *State) Board(bucket models.Bucket) models.Board {
	board := models.Board{
		ToDo:       []models.UserStory{},
		InProgress: []models.UserStory{},
		Done:       []models.UserStory{},
	}
	for _, story := range s.stories[bucket] {
		switch story.Status {
		case models.StatusInProgress:
			board.InProgress = append(board.InProgress, *story)
		case models.StatusDone:
			board.Done = append(board.Done, *story)
		default:
			board.ToDo = append(board.ToDo, *story)
		}
	}
	return board
}

// Texts returns the texts of the given stories in the order requested.
// Unknown ids are skipped.
func (s *State) Texts(ids []string) []string {
	var texts []string
	for _, id := range ids {
		if story, _, _ := s.find(id); story != nil {
			texts = append(texts, story.Text)
		}
	}
	return texts
}

// CreateSprint adds an empty sprint to bucket. Blank and duplicate names are ignored.
func (s *State) CreateSprint(bucket models.Bucket, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || s.sprint(bucket, name) != nil {
		return false
	}
	s.sprints[bucket] = append(s.sprints[bucket], &models.Sprint{Name: name, StoryIDs: []string{}})
	return true
}

// AssignToSprint replaces the membership of a sprint with ids
func (s *State) AssignToSprint(bucket models.Bucket, name string, ids []string) bool {
	sprint := s.sprint(bucket, name)
	if sprint == nil {
		return false
	}
	seen := make(map[string]bool, len(ids))
	members := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}
	sprint.StoryIDs = members
	return true
}

// Sprints returns copies of the sprints of bucket. Member ids may be dangling.
func (s *State) Sprints(bucket models.Bucket) []models.Sprint {
	out := make([]models.Sprint, 0, len(s.sprints[bucket]))
	for _, sp := range s.sprints[bucket] {
		out = append(out, models.Sprint{Name: sp.Name, StoryIDs: append([]string{}, sp.StoryIDs...)})
	}
	return out
}

// SprintStories resolves the members of a sprint, dropping ids whose story is gone
func (s *State) SprintStories(bucket models.Bucket, name string) ([]models.UserStory, bool) {
	sprint := s.sprint(bucket, name)
	if sprint == nil {
		return nil, false
	}
	out := []models.UserStory{}
	for _, id := range sprint.StoryIDs {
		if story, _, _ := s.find(id); story != nil {
			out = append(out, *story)
		}
	}
	return out, true
}

// Classify sends texts to c and replaces both buckets with the result. Every
// returned text becomes a new story with a fresh id, even when it matches a
// story already on the board.
func (s *State) Classify(ctx context.Context, c Classifier, texts []string) (map[models.Bucket][]models.UserStory, error) {
	result, err := c.Classify(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to classify stories: %w", err)
	}

	classified := map[models.Bucket][]string{
		models.Functional:    result.Functional,
		models.NonFunctional: result.NonFunctional,
	}

	out := make(map[models.Bucket][]models.UserStory, len(classified))
	for _, bucket := range models.Buckets {
		bucketTexts := classified[bucket]
		stories := make([]*models.UserStory, 0, len(bucketTexts))
		copies := make([]models.UserStory, 0, len(bucketTexts))
		for _, text := range bucketTexts {
			story := s.newStory(text)
			stories = append(stories, story)
			copies = append(copies, *story)
		}
		s.stories[bucket] = stories
		out[bucket] = copies
	}
	return out, nil
}

func (s *State) newStory(text string) *models.UserStory {
	return &models.UserStory{ID: s.newID(), Text: text, Status: models.StatusToDo}
}

func (s *State) find(id string) (*models.UserStory, models.Bucket, int) {
	for _, bucket := range models.Buckets {
		for i, story := range s.stories[bucket] {
			if story.ID == id {
				return story, bucket, i
			}
		}
	}
	return nil, "", -1
}

func (s *State) sprint(bucket models.Bucket, name string) *models.Sprint {
	for _, sp := range s.sprints[bucket] {
		if sp.Name == name {
			return sp
		}
	}
	return nil
}
