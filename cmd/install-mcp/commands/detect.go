package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/gateway"
	"github.com/supermemoryai/install-mcp/internal/redact"
	"github.com/supermemoryai/install-mcp/internal/transport"
)

// maxParallelProbes bounds concurrent detections for multi-URL runs.
const maxParallelProbes = 8

var (
	detectHeaders []string
	detectTimeout time.Duration
	detectOutput  string
)

func init() {
	detectCmd.Flags().StringArrayVarP(&detectHeaders, "header", "H", nil,
		`HTTP header sent with every probe as "Name: Value" (repeatable)`)
	detectCmd.Flags().DurationVar(&detectTimeout, "timeout", 0,
		"time limit for each detection request (default: config probe_timeout)")
	detectCmd.Flags().StringVarP(&detectOutput, "output", "o", "text",
		"output format: text, json, yaml")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect <url> [url...]",
	Short: "Detect the transport of remote MCP servers",
	Long: `Detect whether remote MCP servers speak streamable HTTP or the legacy
HTTP+SSE transport.

Each URL is probed with an initialize request and, if needed, an event stream
request. Nothing is written. A server that cannot be classified is reported
as unknown; that is not an error.`,
	Example: `  install-mcp detect https://api.supermemory.ai/mcp
  install-mcp detect https://a.example.com/mcp https://b.example.com/sse -o json
  install-mcp detect https://api.example.com/mcp -H "Authorization: Bearer $TOKEN"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

// detectResult is one row of detect output.
type detectResult struct {
	URL       string `json:"url" yaml:"url"`
	Transport string `json:"transport" yaml:"transport"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	switch detectOutput {
	case "text", "json", "yaml":
	default:
		return errors.NewUserError(
			errors.Newf("unsupported output format %q", detectOutput),
			"Use --output text, json or yaml")
	}

	headers, err := parseHeaders(detectHeaders)
	if err != nil {
		return err
	}

	timeout := detectTimeout
	if timeout <= 0 {
		timeout = appConfig.ProbeTimeout
	}

	results := make([]detectResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxParallelProbes)
	for i, u := range args {
		results[i].URL = redact.URL(u)
		if !gateway.IsURL(u) {
			results[i].Transport = string(transport.KindUnknown)
			results[i].Error = "not an http or https URL"
			continue
		}
		g.Go(func() error {
			kind := detector.Detect(ctx, transport.Request{
				URL:     u,
				Timeout: timeout,
				Headers: headers,
			})
			results[i].Transport = string(kind)
			return nil
		})
	}
	// Probes never fail; Wait only joins them.
	_ = g.Wait()

	return writeDetectResults(cmd.OutOrStdout(), results)
}

func writeDetectResults(w io.Writer, results []detectResult) error {
	switch detectOutput {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range results {
		kind := transport.Kind(r.Transport)
		line := styleKind(kind)
		if r.Error != "" {
			line += "  " + gray(r.Error)
		} else {
			line += "  " + gray(kind.Describe())
		}
		fmt.Fprintf(tw, "%s\t%s\n", r.URL, line)
	}
	return tw.Flush()
}
