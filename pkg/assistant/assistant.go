// Package assistant answers questions about the boat network with a hosted
// language model. The model sees a plain text rendering of the current boats,
// schedules and recent arrivals.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/riverline/pkg/metrics"
	"tableflip.dev/riverline/pkg/state"
)

var (
	// ErrBusy is returned while another turn is in flight.
	ErrBusy = errors.New("assistant: a request is already in progress")
	// ErrEmptyPrompt is returned for blank text questions.
	ErrEmptyPrompt = errors.New("assistant: empty prompt")
)

// Welcome is the first model message of every conversation.
const Welcome = `Olá! Sou seu assistente inteligente do NavegaAmazonas. Tenho acesso aos horários e registros das lanchas. Pergunte algo como "Qual lancha está subindo hoje?" ou "Quando a Glória de Deus chega em Coari?"`

const (
	msgInvalidKey = "Erro: Chave de API inválida ou não configurada. Por favor, configure sua chave de acesso clicando no ícone de chave."
	msgFailed     = "Erro ao processar consulta: %s"
)

// Role is who wrote a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one chat entry.
type Message struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Text    string    `json:"text"`
	Sources []Source  `json:"groundingUrls,omitempty"`
	At      time.Time `json:"at"`
}

// DataSource provides the application data rendered into the model context.
type DataSource interface {
	Snapshot(ctx context.Context) (state.Snapshot, error)
}

// Assistant holds one conversation. Only one turn runs at a time.
type Assistant struct {
	Provider Provider
	Data     DataSource
	Locator  Locator
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	// LocationTimeout defaults to DefaultLocationTimeout.
	LocationTimeout time.Duration
	// TimeZone is used for timestamps in the context. Nil means local time.
	TimeZone *time.Location

	busy atomic.Bool

	mu      sync.Mutex
	history []Message
}

// New starts a conversation with the welcome message.
func New(p Provider, data DataSource) *Assistant {
	a := &Assistant{Provider: p, Data: data}
	a.record(RoleModel, Welcome, nil)
	return a
}

func (a *Assistant) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

// Busy reports whether a turn is in flight.
func (a *Assistant) Busy() bool {
	return a.busy.Load()
}

// Send runs one turn: it records the user message, makes exactly one provider
// call and records the reply. Provider failures become a model message, so
// the only errors are ErrBusy and ErrEmptyPrompt.
func (a *Assistant) Send(ctx context.Context, mode Mode, prompt string) (Message, error) {
	if mode == nil {
		mode = Fast{}
	}
	if usesContext(mode) && strings.TrimSpace(prompt) == "" {
		return Message{}, ErrEmptyPrompt
	}
	if !a.busy.CompareAndSwap(false, true) {
		return Message{}, ErrBusy
	}
	defer a.busy.Store(false)

	a.record(RoleUser, userText(mode, prompt), nil)

	req := Request{Mode: mode, Prompt: prompt}
	if usesContext(mode) {
		req.Context = a.appContext(ctx)
	}
	if _, ok := mode.(LocationGrounded); ok {
		req.Location = a.locate(ctx)
	}

	start := time.Now()
	resp, err := a.generate(ctx, req)
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
		a.logger().Error("assistant request failed", "mode", mode.Name(), "err", err)
		resp = Response{Text: ErrorMessage(err)}
	} else if _, ok := mode.(AudioTranscription); ok {
		resp.Text = `Transcrição: "` + resp.Text + `"`
	}
	a.Metrics.Assistant(mode.Name(), result, time.Since(start))

	return a.record(RoleModel, resp.Text, resp.Sources), nil
}

func (a *Assistant) generate(ctx context.Context, req Request) (Response, error) {
	if a.Provider == nil {
		return Response{}, ErrMissingAPIKey
	}
	return a.Provider.Generate(ctx, req)
}

func (a *Assistant) appContext(ctx context.Context) string {
	if a.Data == nil {
		return ""
	}
	snap, err := a.Data.Snapshot(ctx)
	if err != nil {
		a.logger().Warn("assistant context unavailable", "err", err)
		return ""
	}
	return BuildContext(snap, a.TimeZone)
}

func userText(mode Mode, prompt string) string {
	switch m := mode.(type) {
	case ImageAnalysis:
		return fmt.Sprintf("[Enviou uma imagem: %s]", firstNonEmpty(m.Filename, "imagem"))
	case AudioTranscription:
		return "[Áudio gravado]"
	default:
		return prompt
	}
}

// ErrorMessage turns a provider failure into the text shown to the user.
// Authentication failures get a dedicated message.
func ErrorMessage(err error) string {
	msg := err.Error()
	if errors.Is(err, ErrMissingAPIKey) {
		return msgInvalidKey
	}
	for _, marker := range []string{"400", "API key", "API_KEY_INVALID", "403"} {
		if strings.Contains(msg, marker) {
			return msgInvalidKey
		}
	}
	return fmt.Sprintf(msgFailed, msg)
}

func (a *Assistant) record(role Role, text string, sources []Source) Message {
	m := Message{
		ID:      uuid.NewString(),
		Role:    role,
		Text:    text,
		Sources: sources,
		At:      time.Now(),
	}
	a.mu.Lock()
	a.history = append(a.history, m)
	a.mu.Unlock()
	return m
}

// History returns a copy of the conversation, oldest first.
func (a *Assistant) History() []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Message, len(a.history))
	copy(out, a.history)
	return out
}

// Search returns the messages containing term, ignoring case. An empty term
// returns the whole history.
func (a *Assistant) Search(term string) []Message {
	all := a.History()
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all
	}
	out := make([]Message, 0)
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Text), term) {
			out = append(out, m)
		}
	}
	return out
}
