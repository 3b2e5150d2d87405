// Package session holds the extraction state shared by every request of one run.
package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO-8601 form used for Metadata.Date (UTC, millisecond precision).
const DateLayout = "2006-01-02T15:04:05.000Z"

// UnknownAuthor is recorded when the host has no current user.
const UnknownAuthor = "Unknown"

// Session is the extraction store. A Session is created when the UI opens and
// discarded on cancel; it is not safe for concurrent use.
type Session struct {
	ID         string               `json:"-"`
	Screens    []Screen             `json:"screens"`
	Components []ComponentStructure `json:"components"` // reserved, always empty
	Styles     Styles               `json:"styles"`
	Metadata   Metadata             `json:"metadata"`
	DevMode    *DevModeSupport      `json:"devModeData,omitempty"`
}

// Screen is one exported frame, component or instance.
type Screen struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Type               string              `json:"type"`
	Width              float64             `json:"width"`
	Height             float64             `json:"height"`
	Image              string              `json:"image"` // base64 PNG
	Description        string              `json:"description"`
	CSSCode            string              `json:"cssCode,omitempty"`
	ReactCode          string              `json:"reactCode,omitempty"`
	TailwindCode       string              `json:"tailwindCode,omitempty"`
	ComponentStructure *ComponentStructure `json:"componentStructure,omitempty"`
}

// ComponentStructure is a shallow snapshot of a node and its immediate children.
// Children is nil for leaves and non-nil, possibly empty, for containers.
type ComponentStructure struct {
	Name     string               `json:"name"`
	Type     string               `json:"type"`
	ID       string               `json:"id"`
	Children []ComponentStructure `json:"children"`
}

// MarshalJSON emits "children" only for containers, so an empty container
// still renders as "children": [].
func (c ComponentStructure) MarshalJSON() ([]byte, error) {
	type leaf struct {
		Name string `json:"name"`
		Type string `json:"type"`
		ID   string `json:"id"`
	}
	if c.Children == nil {
		return json.Marshal(leaf{Name: c.Name, Type: c.Type, ID: c.ID})
	}
	type container ComponentStructure
	return json.Marshal(container(c))
}

// Styles groups the extracted design system.
type Styles struct {
	Colors     []ColorStyle      `json:"colors"`
	Typography []TypographyStyle `json:"typography"`
	Spacing    []int             `json:"spacing"`
}

// RGBA holds 0-255 channels and a 0-1 alpha.
type RGBA struct {
	R int     `json:"r"`
	G int     `json:"g"`
	B int     `json:"b"`
	A float64 `json:"a"`
}

// ColorStyle is a normalized solid paint style.
type ColorStyle struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	RGB         RGBA   `json:"rgb"`
	Hex         string `json:"hex"`
	Description string `json:"description"`
}

// TypographyStyle is a normalized text style. LineHeight is nil for automatic line
// height; LetterSpacing is nil when the host reports a percentage.
type TypographyStyle struct {
	Name          string   `json:"name"`
	ID            string   `json:"id"`
	FontFamily    string   `json:"fontFamily"`
	FontStyle     string   `json:"fontStyle"`
	FontSize      float64  `json:"fontSize"`
	LineHeight    *float64 `json:"lineHeight"`
	LetterSpacing *float64 `json:"letterSpacing"`
	Description   string   `json:"description"`
}

// Metadata is fixed when the session starts.
type Metadata struct {
	ProjectName string `json:"projectName" yaml:"projectName"`
	Date        string `json:"date" yaml:"date"`
	Author      string `json:"author" yaml:"author"`
}

// DevModeSupport records the result of the code-generation capability probe.
type DevModeSupport struct {
	Available bool `json:"available"`
}

// New starts a session for the given document.
func New(projectName, author string, startedAt time.Time) *Session {
	if author == "" {
		author = UnknownAuthor
	}
	return &Session{
		ID:         uuid.NewString(),
		Screens:    []Screen{},
		Components: []ComponentStructure{},
		Styles:     EmptyStyles(),
		Metadata: Metadata{
			ProjectName: projectName,
			Date:        startedAt.UTC().Format(DateLayout),
			Author:      author,
		},
	}
}

// EmptyStyles returns styles with non-nil, empty collections.
func EmptyStyles() Styles {
	return Styles{
		Colors:     []ColorStyle{},
		Typography: []TypographyStyle{},
		Spacing:    []int{},
	}
}

// DevModeAvailable reports whether the last probe found a code-generation surface.
func (s *Session) DevModeAvailable() bool {
	return s.DevMode != nil && s.DevMode.Available
}

// HasStructures reports whether any screen carries a component structure.
func (s *Session) HasStructures() bool {
	for _, sc := range s.Screens {
		if sc.ComponentStructure != nil {
			return true
		}
	}
	return false
}
