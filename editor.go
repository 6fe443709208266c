package docagent

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// reInlineMarker matches the inline format markers the rewrite guard
// recognizes: bold spans, underscore-italic spans, and inline code.
var reInlineMarker = regexp.MustCompile("(\\*\\*.*?\\*\\*|_.*?_|`.*?`)")

// EditOperation is one targeted edit in an operation batch. Content is a
// pointer so an absent field can be told apart from an explicit empty
// string; an empty string is a legitimate deletion replacement, a missing
// field fails the batch.
type EditOperation struct {
	Type     string      `json:"type"`     // replace, insert, or rewrite
	Target   string      `json:"target"`   // literal substring or pattern
	Content  *string     `json:"content"`  // replacement / inserted text
	Position string      `json:"position"` // insert only: before or after (default after)
	Options  EditOptions `json:"options"`
}

// EditOptions carries the per-operation flags.
type EditOptions struct {
	IsRegex        bool  `json:"is_regex"`
	PreserveFormat *bool `json:"preserve_format"` // rewrite only, default true
}

func (o EditOptions) preserveFormat() bool {
	return o.PreserveFormat == nil || *o.PreserveFormat
}

// EditResult records the outcome of a single operation.
type EditResult struct {
	Type          string `json:"type"`
	Target        string `json:"target"`
	Content       string `json:"content"`
	Position      string `json:"position,omitempty"`
	OldContent    string `json:"old_content,omitempty"`
	ModifiedCount *int   `json:"modified_count,omitempty"` // replace only
	LineNumber    int    `json:"line_number,omitempty"`    // best-effort, diagnostic only
}

// EditOutcome is the batch-level result of applying an operation list.
type EditOutcome struct {
	Modified          bool
	ModifiedPositions int
	Details           []EditResult
}

// Editor applies ordered batches of replace/insert/rewrite operations to
// markup files.
type Editor struct {
	history EditLogger
}

// NewEditor creates an Editor reporting changed operations to history.
func NewEditor(history EditLogger) *Editor {
	if history == nil {
		history = nopEditLogger{}
	}
	return &Editor{history: history}
}

func (e *Editor) Name() string { return "markdown_editor" }

type editRequest struct {
	FilePath   string           `json:"file_path"`
	Operations []*EditOperation `json:"operations"`
}

type editResponse struct {
	EditedPath        string       `json:"edited_path"`
	Status            string       `json:"status"`
	Modified          bool         `json:"modified"`
	ModifiedPositions int          `json:"modified_positions"`
	Details           []EditResult `json:"details"`
	Message           string       `json:"message"`
}

func (e *Editor) Call(params string) string {
	var req editRequest
	if err := decodeParams(params, &req); err != nil {
		return failure(err)
	}
	if req.FilePath == "" {
		return failure(&InvalidArgumentError{Reason: "missing required field: file_path"})
	}
	if req.Operations == nil {
		return failure(&InvalidArgumentError{Reason: "missing required field: operations"})
	}

	ops := make([]EditOperation, 0, len(req.Operations))
	for i, op := range req.Operations {
		if op == nil {
			return failure(&InvalidArgumentError{Reason: fmt.Sprintf("operation %d is not an object", i)})
		}
		ops = append(ops, *op)
	}

	outcome, err := e.Apply(req.FilePath, ops)
	if err != nil {
		return failure(err)
	}

	message := "no changes"
	if outcome.Modified {
		message = fmt.Sprintf("modified %d locations", outcome.ModifiedPositions)
	}
	return encodeResponse(editResponse{
		EditedPath:        req.FilePath,
		Status:            StatusSuccess,
		Modified:          outcome.Modified,
		ModifiedPositions: outcome.ModifiedPositions,
		Details:           outcome.Details,
		Message:           message,
	})
}

// Apply runs the operation batch against the file at path. Operations are
// applied sequentially to an in-memory line buffer; the file is persisted
// exactly once, and only if some operation changed the buffer. An unknown
// operation type aborts the batch without writing; operations already
// applied to the buffer are discarded with it.
func (e *Editor) Apply(path string, ops []EditOperation) (*EditOutcome, error) {
	content, err := readMarkupFile(path)
	if err != nil {
		return nil, err
	}
	lines, trailing := splitLines(content)

	outcome := &EditOutcome{}

	for _, op := range ops {
		if op.Type == "" || op.Target == "" || op.Content == nil {
			return nil, &InvalidArgumentError{Reason: "operation requires type, target, and content"}
		}
		content := *op.Content

		detail := EditResult{
			Type:    op.Type,
			Target:  op.Target,
			Content: content,
		}

		var changed bool
		switch op.Type {
		case "replace":
			var count int
			var old string
			lines, count, old, err = applyReplace(lines, op.Target, content, op.Options.IsRegex)
			if err != nil {
				return nil, err
			}
			detail.ModifiedCount = &count
			changed = count > 0
			if changed {
				detail.OldContent = old
				outcome.ModifiedPositions += count
			}

		case "insert":
			position := op.Position
			if position == "" {
				position = "after"
			}
			detail.Position = position
			lines, changed, err = applyInsert(lines, op.Target, content, position, op.Options.IsRegex)
			if err != nil {
				return nil, err
			}

		case "rewrite":
			var old string
			lines, changed, old = applyRewrite(lines, op.Target, content, op.Options.preserveFormat())
			if changed {
				detail.OldContent = old
			}

		default:
			return nil, &InvalidArgumentError{Reason: fmt.Sprintf("unknown operation type: %s", op.Type)}
		}

		if changed {
			detail.LineNumber = locateLine(lines, op.Type, op.Target, content)
			e.history.LogEdit(path, op.Type, op.Target, content, detail.LineNumber)
		}

		outcome.Details = append(outcome.Details, detail)
		outcome.Modified = outcome.Modified || changed
	}

	if outcome.Modified {
		if err := os.WriteFile(path, []byte(joinLines(lines, trailing)), 0o644); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

// applyReplace substitutes target with content on every line, counting all
// occurrences across the buffer. old reports the last affected original
// line.
func applyReplace(lines []string, target, content string, isRegex bool) (out []string, count int, old string, err error) {
	var re *regexp.Regexp
	if isRegex {
		re, err = regexp.Compile(target)
		if err != nil {
			return nil, 0, "", &InvalidArgumentError{Reason: fmt.Sprintf("invalid pattern %q: %v", target, err)}
		}
	}

	out = make([]string, 0, len(lines))
	for _, line := range lines {
		if isRegex {
			if matches := re.FindAllStringIndex(line, -1); len(matches) > 0 {
				count += len(matches)
				old = line
				line = re.ReplaceAllString(line, content)
			}
		} else if strings.Contains(line, target) {
			count += strings.Count(line, target)
			old = line
			line = strings.ReplaceAll(line, target, content)
		}
		out = append(out, line)
	}
	return out, count, old, nil
}

// applyInsert adds a line containing content immediately before or after
// every line matching target. Matching runs over the original buffer only;
// inserted lines are never re-scanned.
func applyInsert(lines []string, target, content, position string, isRegex bool) (out []string, changed bool, err error) {
	var re *regexp.Regexp
	if isRegex {
		re, err = regexp.Compile(target)
		if err != nil {
			return nil, false, &InvalidArgumentError{Reason: fmt.Sprintf("invalid pattern %q: %v", target, err)}
		}
	}

	out = make([]string, 0, len(lines))
	for _, line := range lines {
		match := false
		if isRegex {
			match = re.MatchString(line)
		} else {
			match = strings.Contains(line, target)
		}

		if match && position == "before" {
			out = append(out, content)
		}
		out = append(out, line)
		if match && position != "before" {
			out = append(out, content)
		}
		changed = changed || match
	}
	return out, changed, nil
}

// applyRewrite rewrites every line containing target as a literal
// substring. With preserve set, only the target substring is swapped for
// content, so surrounding formatting survives; lines where the swap would
// strip a format marker are skipped. Without preserve, the whole line
// becomes content.
func applyRewrite(lines []string, target, content string, preserve bool) (out []string, changed bool, old string) {
	out = make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.Contains(line, target) && preserve:
			if dropsMarker(target, content) {
				// Rewriting would lose a format marker; leave the line alone.
				break
			}
			old = line
			line = strings.ReplaceAll(line, target, content)
			changed = true
		case strings.Contains(line, target):
			old = line
			line = content
			changed = true
		}
		out = append(out, line)
	}
	return out, changed, old
}

// dropsMarker reports whether target carries an inline format marker that
// content does not. Such a rewrite would silently strip formatting.
func dropsMarker(target, content string) bool {
	for _, marker := range reInlineMarker.FindAllString(target, -1) {
		if !strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

// locateLine re-scans the buffer for a line containing the operation's
// probe text. It may land on an unrelated line when the text repeats; the
// result is diagnostic only. The last match wins.
func locateLine(lines []string, opType, target, content string) int {
	probe := ""
	switch opType {
	case "replace":
		probe = target
	case "insert":
		probe = content
	default:
		return 0
	}

	lineNumber := 0
	for i, line := range lines {
		if strings.Contains(line, probe) {
			lineNumber = i + 1
		}
	}
	return lineNumber
}
