// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/supermemoryai/install-mcp/internal/errors"
)

// Sentinel errors for prompts.
var (
	ErrNoOptions        = errors.New("no options to select from")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrCancelled        = errors.New("prompt cancelled")
)

// maxAttempts bounds how often an unrecognized answer is asked again.
const maxAttempts = 3

// Option is one choice in a selection prompt.
type Option struct {
	// Label is the line shown for the option.
	Label string
	// Detail is shown next to the label or in the preview window.
	Detail string
}

// Prompter asks questions on a writer and reads answers line by line.
// A Prompter must be reused for successive questions on the same input so
// buffered answers are not lost.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewPrompterWithIO creates a Prompter reading answers from r and writing
// questions to w.
func NewPrompterWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Confirm asks a yes/no question. An empty answer selects the default.
// Unrecognized answers are asked again a few times before failing with
// ErrInvalidSelection. EOF yields ErrCancelled.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	for range maxAttempts {
		fmt.Fprintf(p.writer, "%s %s: ", question, hint)

		answer, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.writer, "Please answer yes or no.")
	}
	return false, errors.Wrap(ErrInvalidSelection, "expected yes or no")
}

// Select shows a numbered menu and returns the chosen index.
//
// Returns:
//   - ErrNoOptions if the list is empty
//   - 0 without prompting if only one option exists
//   - the first option on an empty answer
//   - ErrInvalidSelection if the answer is not a number in range
//   - ErrCancelled on EOF
func (p *Prompter) Select(title string, options []Option) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}
	if len(options) == 1 {
		return 0, nil
	}

	fmt.Fprintf(p.writer, "%s:\n", title)
	for i, o := range options {
		if o.Detail != "" {
			fmt.Fprintf(p.writer, "  [%d] %s (%s)\n", i+1, o.Label, o.Detail)
		} else {
			fmt.Fprintf(p.writer, "  [%d] %s\n", i+1, o.Label)
		}
	}
	fmt.Fprintf(p.writer, "Select [1]: ")

	input, err := p.readLine()
	if err != nil {
		return 0, err
	}
	if input == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(options) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(options))
	}
	return n - 1, nil
}

// readLine returns the next trimmed line. A final line without a newline
// is still returned; EOF with no input is ErrCancelled.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", errors.Wrap(err, "reading answer")
	}
	return strings.TrimSpace(line), nil
}
