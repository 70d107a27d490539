// Package cli implements the interactive form runner behind `sift fill`:
// one prompt per schema field, then a validation verdict over the collected
// record.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/sift"
	"github.com/aretw0/sift/internal/presentation/tui"
	"github.com/aretw0/sift/pkg/schema"
)

// FillOptions contains all the configuration for the fill command.
type FillOptions struct {
	Schema  string
	Session string // records the attempt in the history store when set
	JSON    bool   // suppress prompts, emit one JSON outcome object
	Banner  bool   // print the gradient banner (stdout is a terminal)
	Input   io.Reader
	Output  io.Writer
}

// RunFill executes the interactive form for one schema.
// Ctrl+C and closed input both end the form cleanly.
func RunFill(engine *sift.Engine, opts FillOptions) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if opts.Banner && !opts.JSON {
		tui.PrintBanner()
	}

	reader := NewInterruptibleReader(opts.Input, sigCtx.Done())
	err := runForm(sigCtx, engine, reader, opts)

	if isInterrupted(err) && sigCtx.Signal() != nil {
		fmt.Fprintln(opts.Output)
		printSystemMessage(opts.Output, "Interrupted.")
	}
	return handleExecutionError(err)
}

func runForm(ctx context.Context, engine *sift.Engine, input io.Reader, opts FillOptions) error {
	desc, err := engine.Describe(opts.Schema)
	if err != nil {
		return err
	}

	// In JSON mode prompts are suppressed so stdout stays a single object.
	promptW := opts.Output
	if opts.JSON {
		promptW = io.Discard
	} else {
		printSystemMessage(opts.Output, "Filling '%s' (%d fields). Press Enter to skip a field.", desc.Name, len(desc.Fields))
	}

	raw, err := promptFields(bufio.NewReader(input), promptW, desc.Fields, "")
	if err != nil {
		return err
	}

	res, verr := engine.Validate(ctx, opts.Session, opts.Schema, raw)
	issues := schema.AsIssues(verr)
	if verr != nil && issues == nil {
		// Not a validation verdict (catalog or store failure)
		return verr
	}

	if opts.JSON {
		return printOutcomeJSON(opts.Output, res, issues)
	}
	printOutcome(opts.Output, res, issues)
	return nil
}

// promptFields walks the description, prompting once per scalar field and
// recursing into nested objects. The collected record is keyed by wire
// names, which is what Validate expects. Running out of input leaves the
// remaining fields absent.
func promptFields(br *bufio.Reader, w io.Writer, fields []schema.FieldDescription, prefix string) (map[string]any, error) {
	raw := map[string]any{}
	for _, f := range fields {
		if f.Kind == schema.KindObject && f.Object != nil {
			sub, err := promptFields(br, w, f.Object.Fields, joinLabel(prefix, f.Name))
			if len(sub) > 0 {
				raw[f.Wire] = sub
			}
			if err != nil {
				return raw, err
			}
			continue
		}

		fmt.Fprintf(w, "%s: ", promptLabel(prefix, f))
		line, err := br.ReadString('\n')
		if text := strings.TrimSpace(line); text != "" {
			raw[f.Wire] = answerValue(f, text)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return raw, nil
			}
			return raw, fmt.Errorf("input error: %w", err)
		}
	}
	return raw, nil
}

func promptLabel(prefix string, f schema.FieldDescription) string {
	label := joinLabel(prefix, f.Name)

	kind := string(f.Kind)
	if f.Kind == schema.KindEnum {
		kind = "one of " + strings.Join(f.Enum, "|")
	}

	switch {
	case f.Required:
		return fmt.Sprintf("%s (%s, required)", label, kind)
	case f.HasDefault && f.Default == nil:
		return fmt.Sprintf("%s (%s, default null)", label, kind)
	case f.HasDefault:
		return fmt.Sprintf("%s (%s, default %v)", label, kind, f.Default)
	default:
		return fmt.Sprintf("%s (%s, optional)", label, kind)
	}
}

func joinLabel(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// answerValue turns one line of input into the raw value handed to the
// engine. Lists split on commas with blanks dropped. Strict fields parse to
// their native type here, since typed text would otherwise never pass a
// no-coercion check.
func answerValue(f schema.FieldDescription, text string) any {
	if f.Kind == schema.KindStringList {
		parts := strings.Split(text, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		return items
	}

	if !f.Strict {
		return text
	}

	switch f.Kind {
	case schema.KindInt, schema.KindFloat:
		if _, err := strconv.ParseFloat(text, 64); err == nil {
			return json.Number(text)
		}
	case schema.KindBool:
		if b, err := strconv.ParseBool(text); err == nil {
			return b
		}
	case schema.KindDate:
		if d, err := schema.ParseDate(text); err == nil {
			return d
		}
	}
	return text
}

func printOutcome(w io.Writer, res *schema.Result, issues schema.Issues) {
	if len(issues) > 0 {
		printSystemMessage(w, "Rejected with %d issue(s).", len(issues))
		for _, issue := range issues {
			fmt.Fprintf(w, "  - %s: %s\n", issue.Path, issue.Message)
		}
		return
	}

	printSystemMessage(w, "Valid.")
	fmt.Fprintln(w, "Normalized:")
	writeIndented(w, res.Dump())
	fmt.Fprintln(w, "Wire:")
	writeIndented(w, res.DumpWire())
}

type fillOutcome struct {
	OK       bool           `json:"ok"`
	Record   map[string]any `json:"record,omitempty"`
	Wire     map[string]any `json:"wire,omitempty"`
	Computed map[string]any `json:"computed,omitempty"`
	Errors   schema.Issues  `json:"errors,omitempty"`
}

func printOutcomeJSON(w io.Writer, res *schema.Result, issues schema.Issues) error {
	out := fillOutcome{OK: len(issues) == 0, Errors: issues}
	if res != nil {
		out.Record = res.Values
		out.Wire = res.DumpWire()
		out.Computed = res.Computed
	}
	return json.NewEncoder(w).Encode(out)
}

func writeIndented(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "  (failed to render: %v)\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}
