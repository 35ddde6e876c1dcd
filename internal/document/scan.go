// Package document is the host-side view of checklist files: scanning
// markdown content into raw checklist lines and watching files for
// settled changes. Nothing here interprets markers; they are carried
// verbatim to the consumer.
package document

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"tada-cli/internal/model"
)

// taskLineRe matches a markdown checklist item: optional indentation, a
// list bullet or an ordered marker, then a single-rune bracket box.
var taskLineRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+\[(.)\]\s?(.*)$`)

// Documents can opt out of celebration scanning wholesale by carrying
// the pragma near the top of the file.
const (
	optOutPragma    = "<!-- tada: off -->"
	pragmaScanLines = 20
)

// Scan extracts the checklist lines from document content. Line numbers
// are zero-based. A document carrying the opt-out pragma within its
// first lines yields no lines at all.
func Scan(content string) []model.TaskLine {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i >= pragmaScanLines {
			break
		}
		if strings.Contains(line, optOutPragma) {
			return nil
		}
	}

	var tasks []model.TaskLine
	for i, line := range lines {
		m := taskLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tasks = append(tasks, model.TaskLine{
			Line:   i,
			Marker: m[1],
			Text:   strings.TrimSpace(m[2]),
		})
	}
	return tasks
}

// RewriteMarker replaces the checkbox token of a task line, leaving
// everything else byte for byte intact. Returns false when the line is
// not a checklist item.
func RewriteMarker(line, marker string) (string, bool) {
	loc := taskLineRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, false
	}
	return line[:loc[2]] + marker + line[loc[3]:], true
}

// ScanFile reads and scans the document at path. A missing file is not
// an error: it yields no lines, which downstream layers treat as
// "document no longer tracked".
func ScanFile(path string) ([]model.TaskLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Scan(string(data)), nil
}
