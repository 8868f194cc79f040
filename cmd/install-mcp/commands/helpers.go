package commands

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/supermemoryai/install-mcp/internal/backup"
	"github.com/supermemoryai/install-mcp/internal/cli/prompt"
	"github.com/supermemoryai/install-mcp/internal/client"
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/logging"
	"github.com/supermemoryai/install-mcp/internal/paths"
	"github.com/supermemoryai/install-mcp/internal/transport"
)

// detector probes URL targets. Tests replace it with a mock.
var detector transport.Detector = transport.NewProber()

// Collaborators swapped out by tests.
var (
	currentDirs = paths.CurrentDirs
	newBackups  = func() *backup.Manager { return backup.NewManager() }

	// isInteractive reports whether the command input is a terminal.
	isInteractive = func(r io.Reader) bool { return logging.IsInteractive(r) }
	fuzzySelect   = prompt.FuzzySelect
)

// Output styles. fatih/color disables itself when stdout is not a terminal.
var (
	bold    = color.New(color.Bold).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	gray    = color.New(color.FgHiBlack).SprintFunc()
	kindTag = map[transport.Kind]func(...any) string{
		transport.KindHTTP:    green,
		transport.KindSSE:     cyan,
		transport.KindUnknown: yellow,
	}
)

func styleKind(k transport.Kind) string {
	if f, ok := kindTag[k]; ok {
		return f(string(k))
	}
	return string(k)
}

// parseKeyValueSlice parses KEY=VALUE pairs.
func parseKeyValueSlice(pairs []string, flagName string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.NewUserError(
				errors.Newf("invalid %s value %q", flagName, pair),
				"Use the format KEY=VALUE")
		}
		result[key] = value
	}
	return result, nil
}

// parseHeaders parses "Name: Value" pairs. "Name=Value" is accepted too
// when the value contains no colon-separated name.
func parseHeaders(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, ":")
		if !ok || strings.ContainsAny(name, "= ") {
			name, value, ok = strings.Cut(pair, "=")
		}
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			return nil, errors.NewUserError(
				errors.Newf("invalid --header value %q", pair),
				`Use the format "Name: Value"`)
		}
		result[name] = strings.TrimSpace(value)
	}
	return result, nil
}

// resolveClient picks the target client from the flag, the configured
// default, or an interactive selection.
func resolveClient(cmd *cobra.Command, flagValue string, p *prompt.Prompter, allowPrompt bool) (client.Client, error) {
	name := flagValue
	if name == "" {
		name = appConfig.DefaultClient
	}

	if name == "" {
		if !allowPrompt {
			return client.Client{}, errors.NewUserError(
				errors.New("no client specified"),
				"Pass --client with one of: "+strings.Join(client.Names(), ", "))
		}
		return selectClient(cmd, p)
	}

	c, err := client.Lookup(name)
	if err != nil {
		return client.Client{}, errors.NewUserError(err,
			"Supported clients: "+strings.Join(client.Names(), ", "))
	}
	return c, nil
}

func selectClient(cmd *cobra.Command, p *prompt.Prompter) (client.Client, error) {
	all := client.All()
	dirs, _ := currentDirs()

	options := make([]prompt.Option, len(all))
	for i, c := range all {
		options[i] = prompt.Option{Label: c.DisplayName, Detail: c.Path(dirs)}
	}

	var (
		idx int
		err error
	)
	if isInteractive(cmd.InOrStdin()) {
		idx, err = fuzzySelect("Client", options)
	} else {
		idx, err = p.Select("Select a client", options)
	}
	if err != nil {
		return client.Client{}, errors.NewUserError(err, "Pass --client to skip the selection")
	}
	return all[idx], nil
}

// clientConfigPath returns the file to edit for c: the --config-path flag,
// then the config override, then the built-in location.
func clientConfigPath(c client.Client, override string) (string, error) {
	if override != "" {
		p, err := paths.ExpandHome(override)
		if err != nil {
			return "", err
		}
		if err := paths.ValidatePath(p); err != nil {
			return "", errors.NewUserError(errors.Wrapf(err, "--config-path %q", override), "")
		}
		return p, nil
	}

	dirs, err := currentDirs()
	if err != nil {
		return "", errors.NewSystemError(err, "Set HOME or pass --config-path")
	}
	p, err := appConfig.ClientConfigPath(c.Name, dirs)
	if err != nil {
		return "", errors.NewSystemError(err, "Pass --config-path")
	}
	return p, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
