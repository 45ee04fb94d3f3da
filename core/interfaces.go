// Package core defines the shared types and stage interfaces for coursebuild.
// Each tool is a stateless transform: parse inputs, transform, render, write.
package core

import (
	"context"
	"errors"
)

// ErrMissingInput is returned when a required document is empty or absent.
var ErrMissingInput = errors.New("missing input document")

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	FinalURL   string // after redirects
	StatusCode int
	HTML       string
}

// DocumentMeta describes a produced document for renderers that need it.
type DocumentMeta struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	GeneratedAt string `json:"generated_at"` // ISO8601
}

// SectionID names one of the six content blocks of a course week.
type SectionID string

const (
	SectionOverview      SectionID = "overview"
	SectionLearningGoals SectionID = "learning_goals"
	SectionKeyTopics     SectionID = "key_topics"
	SectionResources     SectionID = "resources"
	SectionSignificance  SectionID = "significance"
	SectionWhatsNext     SectionID = "whats_next"
)

// SectionOrder is the order in which sections appear within a week.
var SectionOrder = []SectionID{
	SectionOverview,
	SectionLearningGoals,
	SectionKeyTopics,
	SectionResources,
	SectionSignificance,
	SectionWhatsNext,
}

// Week is the extracted content of one week of a course build plan.
// Each section holds a serialized HTML fragment.
type Week struct {
	Label         string `json:"week"`
	Overview      string `json:"overview"`
	LearningGoals string `json:"learning_goals"`
	KeyTopics     string `json:"key_topics"`
	Resources     string `json:"resources"`
	Significance  string `json:"significance"`
	WhatsNext     string `json:"whats_next"`
}

// Section returns the fragment stored for id, or "" for unknown ids.
func (w *Week) Section(id SectionID) string {
	if p := w.field(id); p != nil {
		return *p
	}
	return ""
}

// SetSection stores a fragment for id. Unknown ids are ignored.
func (w *Week) SetSection(id SectionID, fragment string) {
	if p := w.field(id); p != nil {
		*p = fragment
	}
}

func (w *Week) field(id SectionID) *string {
	switch id {
	case SectionOverview:
		return &w.Overview
	case SectionLearningGoals:
		return &w.LearningGoals
	case SectionKeyTopics:
		return &w.KeyTopics
	case SectionResources:
		return &w.Resources
	case SectionSignificance:
		return &w.Significance
	case SectionWhatsNext:
		return &w.WhatsNext
	}
	return nil
}

// ActivityKind distinguishes the Moodle activity modules we know how to read.
type ActivityKind string

const (
	ActivityForum      ActivityKind = "forum"
	ActivityAssignment ActivityKind = "assignment"
	ActivityOther      ActivityKind = "other"
)

// Activity is a link to a Moodle activity page.
type Activity struct {
	Title string       `json:"title"`
	URL   string       `json:"url"`
	Kind  ActivityKind `json:"kind"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Renderer converts a finished HTML document into a final output format.
type Renderer interface {
	Render(html string, meta DocumentMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
}

// SlotFiller substitutes extracted week content into a Moodle template.
type SlotFiller interface {
	Fill(template string, weeks []Week) (string, error)
}
