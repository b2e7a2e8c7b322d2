package models

import (
	"fmt"
	"strings"
)

// Status is the kanban column a story sits in
type Status string

const (
	StatusToDo       Status = "ToDo"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Statuses lists the kanban columns from left to right
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

// Direction is a kanban move direction
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// ParseDirection parses a move direction, case-insensitively
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Left:
		return Left, nil
	case Right:
		return Right, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Move returns the status reached by moving one column in dir.
// Moving past either end of the board leaves the status unchanged.
func (s Status) Move(dir Direction) Status {
	idx := s.index()
	if idx < 0 {
		return StatusToDo
	}
	switch dir {
	case Left:
		if idx > 0 {
			idx--
		}
	case Right:
		if idx < len(Statuses)-1 {
			idx++
		}
	}
	return Statuses[idx]
}

func (s Status) index() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Bucket is a classification partition of user stories
type Bucket string

const (
	Functional    Bucket = "Functional"
	NonFunctional Bucket = "NonFunctional"
)

// Buckets lists every classification bucket
var Buckets = []Bucket{Functional, NonFunctional}

// ParseBucket parses a bucket name. "Non-Functional" is accepted as an alias.
func ParseBucket(s string) (Bucket, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
	case "functional":
		return Functional, nil
	case "nonfunctional":
		return NonFunctional, nil
	}
	return "", fmt.Errorf("unknown bucket %q", s)
}

// UserStory represents a single user story tracked on the board
type UserStory struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Status Status `json:"status"`
}

// Sprint represents a named group of stories inside one bucket.
// StoryIDs may reference stories that no longer exist.
type Sprint struct {
	Name     string   `json:"name"`
	StoryIDs []string `json:"story_ids"`
}

// Board represents the kanban columns of one bucket
type Board struct {
	ToDo       []UserStory `json:"todo"`
	InProgress []UserStory `json:"in_progress"`
	Done       []UserStory `json:"done"`
}

// ClassificationResult is the classifier's answer: story texts per bucket
type ClassificationResult struct {
	Functional    []string `json:"Functional"`
	NonFunctional []string `json:"NonFunctional"`
}
