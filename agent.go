// Copyright 2026 Wuyi Zhangxiang
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

// Package docagent implements the structured editing and bidirectional
// conversion engine of an editorial document pipeline: chapter splitting and
// merging of markup files, targeted batch edits, and the two converters
// between the DOCX binary document format and a small markdown subset.
//
// Each tool is a stateless file-to-file transform addressed by name;
// composing them into a pipeline is the caller's responsibility.
package docagent

import (
	"fmt"
	"log/slog"
)

type registeredTool struct {
	name string
	tool Tool
}

// Toolkit is the tool registry and dispatch point.
type Toolkit struct {
	tools      []registeredTool
	logger     *slog.Logger
	editLogger EditLogger
}

// New creates a Toolkit with the built-in tools registered.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{
		logger:     slog.Default(),
		editLogger: nopEditLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.enableBuiltins()
	return t
}

// RegisterTool adds a tool under the given name. A later registration with
// the same name shadows the earlier one.
func (t *Toolkit) RegisterTool(name string, tool Tool) {
	t.tools = append([]registeredTool{{name: name, tool: tool}}, t.tools...)
}

// Tools returns the registered tool names in lookup order.
func (t *Toolkit) Tools() []string {
	names := make([]string, 0, len(t.tools))
	for _, rt := range t.tools {
		names = append(names, rt.name)
	}
	return names
}

// Call dispatches a request to the named tool. An unknown tool name yields
// a failed response, never an error.
func (t *Toolkit) Call(name, params string) string {
	for _, rt := range t.tools {
		if rt.name == name {
			t.logger.Debug("dispatching tool call", "tool", name)
			return rt.tool.Call(params)
		}
	}
	return failure(&InvalidArgumentError{Reason: fmt.Sprintf("unknown tool: %s", name)})
}

// enableBuiltins registers the five pipeline tools.
func (t *Toolkit) enableBuiltins() {
	t.RegisterTool("markdown_splitter", NewSplitter())
	t.RegisterTool("markdown_editor", NewEditor(t.editLogger))
	t.RegisterTool("word_to_markdown", NewWordToMarkdown(t.logger))
	t.RegisterTool("markdown_to_word", NewMarkdownToWord(t.logger))
	t.RegisterTool("markdown_merger", NewMerger())
}
