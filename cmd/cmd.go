package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/xhad/copyscan/internal/models"
	"github.com/xhad/copyscan/pkg/detector"
	"github.com/xhad/copyscan/pkg/export"
	"github.com/xhad/copyscan/pkg/match"
)

var checkCmd = &cobra.Command{
	Use:   "check [--text TEXT | --file PATH]",
	Short: "Check content for copies on the web",
	Long: `check searches for pages containing the submitted content and lists those
whose similarity exceeds the threshold. Files may be .txt, .pdf, .jpg, .jpeg
or .png; images are read with OCR.

Thresholds: "lenient" (0.5, tolerates paraphrase), "strict" (0.8, near-verbatim
copies only) or a number in [0, 1).`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("text", "", "text to check")
	checkCmd.Flags().String("file", "", "file to check (.txt, .pdf, .jpg, .jpeg, .png)")
	checkCmd.Flags().String("threshold", "", "lenient, strict or a number in [0, 1) (default from config)")
	checkCmd.Flags().String("order", "", "result order: retrieval or score (default from config)")
	checkCmd.Flags().String("format", "table", "output format: table, json, csv or xlsx")
	checkCmd.Flags().StringP("output", "o", "", "write output to this file instead of stdout")
	checkCmd.Flags().Bool("no-progress", false, "hide progress output")
	checkCmd.MarkFlagsMutuallyExclusive("text", "file")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if s, _ := cmd.Flags().GetString("threshold"); s != "" {
		threshold, err := match.ParseThreshold(s)
		if err != nil {
			return err
		}
		cfg.Match.Threshold = threshold
	}
	if s, _ := cmd.Flags().GetString("order"); s != "" {
		order, err := match.ParseOrder(s)
		if err != nil {
			return err
		}
		cfg.Match.Order = string(order)
	}
	if err := validate(cfg); err != nil {
		return err
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	table := formatFlag == "table"
	var format export.Format
	if !table {
		if format, err = export.ParseFormat(formatFlag); err != nil {
			return err
		}
	}

	sub, err := submission(cmd)
	if err != nil {
		return err
	}

	opts := []detector.Option{detector.WithLogger(newLogger(cmd))}
	if quiet, _ := cmd.Flags().GetBool("no-progress"); !quiet {
		opts = append(opts, detector.WithMonitor(newProgressMonitor(os.Stderr)))
	}

	det, err := detector.New(cfg, opts...)
	if err != nil {
		return err
	}

	report, err := det.Check(cmd.Context(), sub)
	if err != nil {
		if errors.Is(err, detector.ErrNoContent) {
			color.Yellow("Nothing to check: the submission contains no text.")
		}
		return err
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if table {
		printReport(out, report)
		return nil
	}
	return export.Write(out, format, report)
}

func submission(cmd *cobra.Command) (detector.Submission, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return detector.Submission{Data: []byte(text), Modality: models.ModalityPlainText}, nil
	}

	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return detector.Submission{}, errors.New("one of --text or --file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return detector.Submission{}, fmt.Errorf("error reading input file: %w", err)
	}
	return detector.Submission{Data: data, Hint: path}, nil
}

// printReport renders the language line, the match summary and a table of
// matches with similarity as a percentage.
func printReport(w io.Writer, report *models.Report) {
	fmt.Fprintf(w, "Detected language: %s\n", report.Language)

	if len(report.Results) == 0 {
		fmt.Fprintln(w, color.YellowString("No matches above %.2f.", report.Threshold))
		return
	}
	fmt.Fprintln(w, color.GreenString("Found %d potential matches.", len(report.Results)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "URL\tSIMILARITY\tSUMMARY")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%s\t%.2f%%\t%s\n", r.URL, r.Percent(), truncate(r.Summary, 80))
	}
	tw.Flush()
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// progressMonitor draws a spinner while searching and a bar while candidate
// pages are fetched and scored.
type progressMonitor struct {
	w       io.Writer
	spinner *progressbar.ProgressBar
	bar     *progressbar.ProgressBar
}

func newProgressMonitor(w io.Writer) *progressMonitor {
	return &progressMonitor{w: w}
}

func (m *progressMonitor) Start(_ string, input models.NormalizedInput) {
	fmt.Fprintln(m.w, color.BlueString("Checking %s submission (language: %s)", input.Modality, input.Language))
}

func (m *progressMonitor) AfterQuery(query models.Query) {
	if query.Truncated {
		fmt.Fprintln(m.w, color.YellowString("Query truncated to %d characters", len([]rune(query.Text))))
	}
	m.spinner = getSpinner(m.w, " Searching the web...")
}

func (m *progressMonitor) AfterRetrieval(candidates []models.Candidate) {
	if m.spinner != nil {
		m.spinner.Finish()
		fmt.Fprintln(m.w)
	}
	fmt.Fprintln(m.w, color.GreenString("✓ Retrieved %d candidate pages", len(candidates)))
	if len(candidates) > 0 {
		m.bar = getProgressBar(m.w, len(candidates), " Comparing pages")
	}
}

func (m *progressMonitor) CandidateScored(models.SimilarityResult) {
	if m.bar != nil {
		m.bar.Add(1)
	}
}

func (m *progressMonitor) Diagnostic(d models.Diagnostic) {
	switch d.Stage {
	case "fetch", "score":
		// Dropped candidates still count toward the bar.
		if m.bar != nil {
			m.bar.Add(1)
		}
	}
	if d.Level == models.LevelInfo {
		return
	}
	if m.bar != nil {
		m.bar.Clear()
	}
	fmt.Fprintln(m.w, color.RedString("Error processing URL %s: %s", d.URL, d.Message))
}

func (m *progressMonitor) Finish(report *models.Report) {
	if m.bar != nil {
		m.bar.Finish()
		fmt.Fprintln(m.w)
	}
	fmt.Fprintln(m.w, color.GreenString("✓ %s in %s", report.Summary(), report.Elapsed.Round(time.Millisecond)))
}
