package snake

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// Choice is one selectable item.
type Choice struct {
	ID    string
	Label string
	Hint  string
}

// Select asks the operator to pick one of choices and returns its ID. Typing
// filters the list.
func Select(label string, choices []Choice, stdin io.ReadCloser, stdout io.WriteCloser) (string, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Label | bold }} {{ .Hint | green }}",
		Inactive: "   {{ .Label }} {{ .Hint | cyan }}",
		Selected: "{{ .Label | bold }}",
	}

	searcher := func(input string, index int) bool {
		name := strings.Replace(strings.ToLower(choices[index].Label), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     choices,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     stdin,
		Stdout:    stdout,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return choices[i].ID, nil
}

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
