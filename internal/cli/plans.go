// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// plans.go - Plan commands: list, show, export, delete.
//
// Commands: list (ls), show (view), export, delete (rm)
//
// Examples:
//   planrun list                     List plans as a table
//   planrun list --json              List plans as JSON
//   planrun show 7                   Render plan 7 as Markdown
//   planrun export 7 --format json   Export plan 7 to JSON
//   planrun delete 7 --confirm       Delete plan 7

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/planrun-tui/internal/backend"
	"github.com/jeranaias/planrun-tui/internal/config"
	"github.com/jeranaias/planrun-tui/internal/export"
	"github.com/jeranaias/planrun-tui/internal/model"
	"github.com/jeranaias/planrun-tui/internal/util"
)

// commandTimeout bounds one-shot CLI requests against the backend.
const commandTimeout = 15 * time.Second

// newBackendClient builds a plan API client from config plus CLI overrides.
func newBackendClient(args Args) *backend.Client {
	cfg := config.Global()

	url := cfg.Backend.URL
	if args.Backend != "" {
		url = args.Backend
	}

	return backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:        url,
		Timeout:        time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		SuggestTimeout: time.Duration(cfg.Backend.SuggestTimeoutSecs) * time.Second,
	})
}

// commandContext returns the context for a one-shot backend request.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// describeBackendError turns client sentinels into actionable messages.
func describeBackendError(err error) error {
	switch {
	case errors.Is(err, backend.ErrUnreachable):
		return fmt.Errorf("plan server is unreachable (start it with 'planrun serve')")
	case errors.Is(err, backend.ErrNotFound):
		return fmt.Errorf("plan not found")
	default:
		return err
	}
}

// =============================================================================
// LIST
// =============================================================================

// HandleList lists saved plans.
func HandleList(args Args) error {
	parser := NewArgParser(args.Raw)
	client := newBackendClient(args)

	ctx, cancel := commandContext()
	defer cancel()

	plans, err := client.ListPlans(ctx)
	if err != nil {
		return describeBackendError(err)
	}

	if args.JSON || parser.BoolFlag("json") {
		out, err := json.MarshalIndent(plans, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(plans) == 0 {
		fmt.Println(DimStyle.Render("No plans yet. Create one in the TUI or with 'planrun suggest --save'."))
		return nil
	}

	// Leave room for the id and step count columns.
	titleWidth := GetTerminalWidth() - 20
	if titleWidth > 60 {
		titleWidth = 60
	}

	fmt.Printf("%s  %s  %s\n",
		SectionStyle.Width(5).Render("ID"),
		SectionStyle.Width(titleWidth).Render("TITLE"),
		SectionStyle.Render("STEPS"))

	for _, p := range plans {
		fmt.Printf("%s  %s  %s\n",
			DimStyle.Width(5).Render(fmt.Sprintf("%d", p.ID)),
			ValueStyle.Width(titleWidth).Render(util.TruncateWidth(p.Title, titleWidth)),
			ValueStyle.Render(fmt.Sprintf("%d", len(p.Steps))))
	}

	fmt.Printf("\n%s\n", DimStyle.Render(fmt.Sprintf("%d plan(s)", len(plans))))
	return nil
}

// =============================================================================
// SHOW
// =============================================================================

// HandleShow renders one plan as Markdown.
func HandleShow(args Args) error {
	parser := NewArgParser(args.Raw)

	id, err := ParsePlanID(parser.Positional(0))
	if err != nil {
		return err
	}

	client := newBackendClient(args)
	ctx, cancel := commandContext()
	defer cancel()

	plan, err := client.GetPlan(ctx, id)
	if err != nil {
		return describeBackendError(err)
	}

	if args.JSON || parser.BoolFlag("json") {
		out, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	content, err := export.NewMarkdownExporter(&export.Options{IncludeMetadata: false}).Export(plan)
	if err != nil {
		return err
	}

	if parser.BoolFlag("raw") || !IsStdoutTTY() {
		fmt.Print(string(content))
		return nil
	}

	fmt.Print(renderMarkdown(string(content)))
	return nil
}

// =============================================================================
// EXPORT
// =============================================================================

// HandleExport exports a plan to a file.
func HandleExport(args Args) error {
	parser := NewArgParser(args.Raw)

	id, err := ParsePlanID(parser.Positional(0))
	if err != nil {
		return err
	}

	client := newBackendClient(args)
	ctx, cancel := commandContext()
	defer cancel()

	plan, err := client.GetPlan(ctx, id)
	if err != nil {
		return describeBackendError(err)
	}

	opts := &export.Options{
		OutputDir:       parser.FlagOrDefault("output", "."),
		OpenAfterExport: parser.BoolFlag("open"),
		IncludeMetadata: true,
	}

	var path string
	format := strings.ToLower(parser.FlagOrDefault("format", "md"))
	switch format {
	case "md", "markdown":
		path, err = export.ExportMarkdown(plan, opts)
	case "json":
		path, err = export.ExportJSON(plan, opts)
	default:
		return fmt.Errorf("unknown export format %q (want md or json)", format)
	}
	if err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Printf("%s exported plan %d to %s\n", RenderStatus("ok"), id, ValueStyle.Render(path))
	}
	return nil
}

// =============================================================================
// DELETE
// =============================================================================

// HandleDelete deletes a plan. Requires --confirm so a fat-fingered id
// doesn't silently destroy work.
func HandleDelete(args Args) error {
	parser := NewArgParser(args.Raw)

	id, err := ParsePlanID(parser.Positional(0))
	if err != nil {
		return err
	}

	if !parser.BoolFlag("confirm") && !parser.BoolFlag("y") {
		return fmt.Errorf("refusing to delete plan %d without --confirm", id)
	}

	client := newBackendClient(args)
	ctx, cancel := commandContext()
	defer cancel()

	if err := client.DeletePlan(ctx, id); err != nil {
		return describeBackendError(err)
	}

	if !args.Quiet {
		fmt.Printf("%s deleted plan %d\n", RenderStatus("ok"), id)
	}
	return nil
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// printPlanSummary prints a one-line plan summary. Shared by suggest
// and the plan commands.
func printPlanSummary(plan model.Plan) {
	fmt.Printf("%s %s\n", RenderLabel("Title"), ValueStyle.Render(plan.Title))
	if desc := strings.TrimSpace(plan.Description); desc != "" {
		fmt.Printf("%s %s\n", RenderLabel("Description"), ValueStyle.Render(util.TruncateWidth(desc, GetTerminalWidth()-20)))
	}
	fmt.Printf("%s %d\n", RenderLabel("Steps"), len(plan.Steps))
}
