// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/planrun-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports test plans to JSON format.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// jsonDocument is the on-disk shape: the plan plus an export envelope.
type jsonDocument struct {
	Plan       model.Plan `json:"plan"`
	ExportedAt time.Time  `json:"exported_at"`
	Generator  string     `json:"generator"`
}

// Export converts a plan to pretty-printed JSON.
func (e *JSONExporter) Export(plan model.Plan) ([]byte, error) {
	if !plan.HasTitle() {
		return nil, fmt.Errorf("plan has no title")
	}

	doc := jsonDocument{
		Plan:       plan,
		ExportedAt: time.Now(),
		Generator:  "planrun-tui",
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return append(data, '\n'), nil
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
