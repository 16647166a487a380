package app

import (
	"context"
	"errors"

	"tableflip.dev/riverline/pkg/metrics"
)

// Confirmation prompts shown before destructive actions.
const (
	PromptDeleteBoat     = "Tem certeza? Isso apagará todos os horários desta lancha."
	PromptDeleteSchedule = "Remover este horário?"
	PromptDeleteLog      = "Tem certeza que deseja apagar este registro?"
	PromptClearLogs      = "ATENÇÃO: Tem certeza que deseja apagar TODO o histórico? Esta ação não pode ser desfeita."
)

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves everything, as --yes does.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// NeverConfirm declines everything.
var NeverConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return false, nil
})

type confirmedKey struct{}

// WithConfirmed records an up-front decision on ctx, for callers such as HTTP
// handlers that cannot prompt.
func WithConfirmed(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, confirmedKey{}, ok)
}

// ContextConfirmer approves only when WithConfirmed(ctx, true) was applied.
var ContextConfirmer Confirmer = ConfirmFunc(func(ctx context.Context, _ string) (bool, error) {
	ok, _ := ctx.Value(confirmedKey{}).(bool)
	return ok, nil
})

// gate asks for confirmation of op and counts a refusal.
func (s *Service) gate(ctx context.Context, op, prompt string) error {
	err := s.confirm(ctx, prompt)
	if errors.Is(err, ErrDeclined) {
		s.Metrics.Mutation(op, metrics.ResultDeclined)
		s.logger().Info("action declined", "op", op)
	}
	return err
}

func (s *Service) confirm(ctx context.Context, prompt string) error {
	c := s.Confirm
	if c == nil {
		c = ContextConfirmer
	}
	ok, err := c.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}
	return nil
}
