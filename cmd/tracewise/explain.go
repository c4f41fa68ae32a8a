package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tracewise/internal/capture"
	"tracewise/internal/catalog"
	"tracewise/internal/engine"
)

var (
	explainFormat string
	explainJobs   int
)

func init() {
	explainCmd.Flags().StringVar(&explainFormat, "format", "text", "output format (text|json)")
	explainCmd.Flags().IntVar(&explainJobs, "jobs", 0, "capture files explained in parallel (0 = number of CPUs)")
}

var explainCmd = &cobra.Command{
	Use:   "explain <capture-file>...",
	Short: "Explain captured runtime errors",
	Long:  `Explain reads capture files (msgpack, or *.json fixtures) and prints a localized report for each`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExplain,
}

var fileHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

type explainResult struct {
	path    string
	text    string
	payload *explainPayload
	err     error
}

type explainPayload struct {
	File         string            `json:"file"`
	Locale       string            `json:"locale"`
	UsedFallback bool              `json:"used_fallback,omitempty"`
	CauseID      string            `json:"cause_id"`
	Params       map[string]string `json:"params,omitempty"`
	Suggestions  []string          `json:"suggestions,omitempty"`
	Report       string            `json:"report"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(explainFormat)
	switch format {
	case "text", "json":
		// supported
	default:
		return fmt.Errorf("unsupported format %q (must be text or json)", explainFormat)
	}

	cfg, locale, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	jobs := explainJobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты по индексу файла: порядок вывода детерминирован,
	// мьютекс не нужен
	results := make([]explainResult, len(args))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(args)))
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// движку нужен свой кеш источников на файл
			eng := engine.NewWithCatalog(cfg, cat)
			results[i] = explainOne(eng, path, locale)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, format, len(args) > 1)
}

func explainOne(eng *engine.Engine, path, locale string) explainResult {
	inst, err := capture.ReadFile(path)
	if err != nil {
		return explainResult{path: path, err: err}
	}
	res, err := eng.Explain(inst, locale)
	if err != nil {
		return explainResult{path: path, err: err}
	}

	payload := &explainPayload{
		File:         path,
		Locale:       res.Report.Locale,
		UsedFallback: res.Report.UsedFallback,
		CauseID:      res.Explanation.CauseID,
		Suggestions:  res.Explanation.Suggestions.Names(),
		Report:       res.Text(),
	}
	if len(res.Explanation.Params) > 0 {
		payload.Params = make(map[string]string, len(res.Explanation.Params))
		for _, p := range res.Explanation.Params {
			payload.Params[p.Name] = p.Value
		}
	}
	return explainResult{path: path, text: res.Text(), payload: payload}
}

func printResults(out, errOut io.Writer, results []explainResult, format string, withHeaders bool) error {
	failed := 0
	var payloads []*explainPayload
	for _, res := range results {
		if res.err != nil {
			failed++
			color.New(color.FgRed).Fprintf(errOut, "%s: %v\n", res.path, res.err)
			continue
		}
		if format == "json" {
			payloads = append(payloads, res.payload)
			continue
		}
		if withHeaders {
			fmt.Fprintln(out, styled(fileHeaderStyle, "== "+res.path+" =="))
		}
		fmt.Fprint(out, res.text)
		fmt.Fprintln(out)
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payloads); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d capture files could not be explained", failed, len(results))
	}
	return nil
}

// loadSetup resolves the engine config and the request locale from the
// persistent flags.
func loadSetup(cmd *cobra.Command) (engine.Config, string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		return cfg, "", err
	}
	locale, _ := cmd.Flags().GetString("lang")
	return cfg, locale, nil
}

func styled(style lipgloss.Style, s string) string {
	if color.NoColor {
		return s
	}
	return style.Render(s)
}
