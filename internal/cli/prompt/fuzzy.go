package prompt

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/supermemoryai/install-mcp/internal/errors"
)

// FuzzySelect opens a full-screen fuzzy finder over options and returns
// the chosen index. Aborting with Esc or Ctrl+C yields ErrCancelled.
// It needs a terminal; use Prompter.Select otherwise.
func FuzzySelect(title string, options []Option) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}

	idx, err := fuzzyfinder.Find(
		options,
		func(i int) string {
			return options[i].Label
		},
		fuzzyfinder.WithPromptString(title+"> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return fmt.Sprintf("%s\n\n%s", options[i].Label, options[i].Detail)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, ErrCancelled
		}
		return 0, errors.Wrap(err, "fuzzy selection failed")
	}
	return idx, nil
}
