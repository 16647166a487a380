package assistant

import (
	"fmt"
	"strings"
)

// Mode selects how a question is answered. The set is closed: only the types
// in this package implement it.
type Mode interface {
	// Name is the short label used by flags, metrics and the HTTP API.
	Name() string
	mode()
}

// Fast answers from the schedule data with a small model.
type Fast struct{}

// LocationGrounded lets the model consult Google Maps, optionally biased to
// the operator's position.
type LocationGrounded struct{}

// DeepReasoning spends a large thinking budget on multi-step questions.
type DeepReasoning struct{}

// ImageAnalysis extracts timetable data from a photo of a schedule board.
type ImageAnalysis struct {
	Image    []byte
	MIMEType string
	// Prompt overrides the default extraction instruction.
	Prompt string
	// Filename is only used to label the user message.
	Filename string
}

// AudioTranscription turns a recorded question into text.
type AudioTranscription struct {
	Audio    []byte
	MIMEType string
}

func (Fast) Name() string               { return "fast" }
func (LocationGrounded) Name() string   { return "maps" }
func (DeepReasoning) Name() string      { return "thinking" }
func (ImageAnalysis) Name() string      { return "image" }
func (AudioTranscription) Name() string { return "audio" }

func (Fast) mode()               {}
func (LocationGrounded) mode()   {}
func (DeepReasoning) mode()      {}
func (ImageAnalysis) mode()      {}
func (AudioTranscription) mode() {}

// TextModes are the modes a typed question can use.
func TextModes() []string {
	return []string{Fast{}.Name(), LocationGrounded{}.Name(), DeepReasoning{}.Name()}
}

// ParseMode resolves a text mode name. An empty name is Fast.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fast", "rapido", "rápido":
		return Fast{}, nil
	case "maps", "mapas", "location":
		return LocationGrounded{}, nil
	case "thinking", "pensar", "deep":
		return DeepReasoning{}, nil
	default:
		return nil, fmt.Errorf("unknown assistant mode %q (expected %s)", name, strings.Join(TextModes(), ", "))
	}
}

// usesContext reports whether the mode sends the application data along with
// the prompt. Media modes only send their attachment.
func usesContext(m Mode) bool {
	switch m.(type) {
	case Fast, LocationGrounded, DeepReasoning:
		return true
	case ImageAnalysis, AudioTranscription:
		return false
	default:
		panic(fmt.Sprintf("assistant: unhandled mode %T", m))
	}
}
