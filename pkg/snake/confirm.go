// Package snake holds the interactive terminal prompts.
package snake

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm asks yes/no questions on a terminal. It satisfies app.Confirmer.
type Confirm struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// Confirm shows prompt and waits for an answer. An empty answer or an
// interrupt is a no.
func (c *Confirm) Confirm(_ context.Context, prompt string) (bool, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} ",
		Valid:   "{{ . | yellow }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | bold }} ",
	}

	p := promptui.Prompt{
		Label:     prompt + " [s/N]",
		Templates: templates,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return nil
			}
			_, err := ParseBool(input)
			return err
		},
		Stdin:  c.Stdin,
		Stdout: c.Stdout,
	}

	result, err := p.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(result) == "" {
		return false, nil
	}
	return ParseBool(result)
}

// ParseBool is strconv.ParseBool with the addition of yes/no parsing, in
// English and Portuguese.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "1", "t", "true", "y", "yes", "s", "sim":
		return true, nil
	case "0", "f", "false", "n", "no", "nao", "não":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
