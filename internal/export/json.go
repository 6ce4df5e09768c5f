// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/geminipad/internal/model"
)

// JSONExporter writes the stored record of a conversation, wrapped with
// export metadata.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonDocument struct {
	ExportedAt   time.Time          `json:"exportedAt"`
	Generator    string             `json:"generator"`
	Conversation model.Conversation `json:"conversation"`
}

// Export converts conv to indented JSON. Empty conversations are allowed.
func (e *JSONExporter) Export(conv model.Conversation) ([]byte, error) {
	doc := jsonDocument{
		ExportedAt:   e.options.now(),
		Generator:    generator,
		Conversation: conv,
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
