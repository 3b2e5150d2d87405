// Package protocol defines the messages exchanged with the UI panel.
package protocol

import "encoding/json"

// Kind identifies an inbound request.
type Kind int

const (
	ExtractSelected Kind = iota + 1
	ExtractStyles
	GenerateDocumentation
	ExportClaude
	Cancel
)

var kindTags = map[Kind]string{
	ExtractSelected:       "extract-selected",
	ExtractStyles:         "extract-styles",
	GenerateDocumentation: "generate-documentation",
	ExportClaude:          "export-claude",
	Cancel:                "cancel",
}

// String returns the wire tag of k.
func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return "unknown"
}

// KindFromTag resolves a wire tag. Unknown tags report false.
func KindFromTag(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return k, true
		}
	}
	return 0, false
}

// Request is an inbound message from the UI.
type Request struct {
	Kind Kind
}

// ParseRequest decodes a raw UI message such as {"type":"extract-styles"}.
// ok is false for malformed messages and unrecognized tags; callers ignore those.
func ParseRequest(raw []byte) (req Request, ok bool) {
	var msg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Request{}, false
	}
	kind, ok := KindFromTag(msg.Type)
	if !ok {
		return Request{}, false
	}
	return Request{Kind: kind}, true
}

// Reply types sent back to the UI.
const (
	TypeError                     = "error"
	TypeExtractionStarted         = "extraction-started"
	TypeExtractionCompleted       = "extraction-completed"
	TypeStylesExtractionStarted   = "styles-extraction-started"
	TypeStylesExtractionCompleted = "styles-extraction-completed"
	TypeDocumentationGenerated    = "documentation-generated"
	TypeClaudeExportReady         = "claude-export-ready"
)

// Reply is an outbound message. Only the fields relevant to Type are set.
type Reply struct {
	Type     string `json:"type"`
	Data     any    `json:"data,omitempty"`
	Markdown string `json:"markdown,omitempty"`
	Message  string `json:"message,omitempty"`
	Context  string `json:"context,omitempty"`
}

// Poster delivers replies to the UI.
type Poster interface {
	Post(Reply)
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(Reply)

// Post calls f(r).
func (f PosterFunc) Post(r Reply) { f(r) }

// Recorder is a Poster that keeps every reply. Handy for one-shot callers and tests.
type Recorder struct {
	Replies []Reply
}

// Post appends reply.
func (r *Recorder) Post(reply Reply) {
	r.Replies = append(r.Replies, reply)
}

// Last returns the most recent reply of the given type.
func (r *Recorder) Last(typ string) (Reply, bool) {
	for i := len(r.Replies) - 1; i >= 0; i-- {
		if r.Replies[i].Type == typ {
			return r.Replies[i], true
		}
	}
	return Reply{}, false
}

// Types lists the reply types in the order they were posted.
func (r *Recorder) Types() []string {
	types := make([]string, len(r.Replies))
	for i, reply := range r.Replies {
		types[i] = reply.Type
	}
	return types
}

// ErrorReply builds the user-facing error message.
func ErrorReply(context, message string) Reply {
	return Reply{Type: TypeError, Message: message, Context: context}
}
