package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScanFindsChecklistLines(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"# Groceries",
		"",
		"- [ ] milk",
		"- [x] bread",
		"* [X] eggs  ",
		"+ [✓] butter",
		"1. [✔] jam",
		"2) [?] maybe cheese",
		"  - [ ] nested item",
		"- [] not a box",
		"- [xx] not a box either",
		"plain prose with [x] inline",
	}, "\n")

	tasks := Scan(content)
	if len(tasks) != 7 {
		t.Fatalf("Scan found %d lines, want 7: %+v", len(tasks), tasks)
	}

	want := []struct {
		line   int
		marker string
		text   string
	}{
		{2, " ", "milk"},
		{3, "x", "bread"},
		{4, "X", "eggs"},
		{5, "✓", "butter"},
		{6, "✔", "jam"},
		{7, "?", "maybe cheese"},
		{8, " ", "nested item"},
	}
	for i, w := range want {
		got := tasks[i]
		if got.Line != w.line || got.Marker != w.marker || got.Text != w.text {
			t.Fatalf("task %d = %+v, want line=%d marker=%q text=%q", i, got, w.line, w.marker, w.text)
		}
	}
}

func TestScanOptOutPragma(t *testing.T) {
	t.Parallel()

	content := "# Notes\n<!-- tada: off -->\n- [x] done thing\n"
	if got := Scan(content); got != nil {
		t.Fatalf("opted-out document yielded %+v, want none", got)
	}

	// The pragma only counts near the top of the file.
	var b strings.Builder
	for i := 0; i < 25; i++ {
		b.WriteString("filler\n")
	}
	b.WriteString("<!-- tada: off -->\n- [x] done thing\n")
	if got := Scan(b.String()); len(got) != 1 {
		t.Fatalf("late pragma suppressed scanning: %+v", got)
	}
}

func TestScanFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "todo.md")
	if err := os.WriteFile(path, []byte("- [ ] a\n- [x] b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tasks, err := ScanFile(path)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("ScanFile found %d lines, want 2", len(tasks))
	}

	// Missing files are a normal outcome, not an error.
	tasks, err = ScanFile(filepath.Join(dir, "gone.md"))
	if err != nil {
		t.Fatalf("ScanFile on missing file: %v", err)
	}
	if tasks != nil {
		t.Fatalf("missing file yielded %+v, want none", tasks)
	}
}

func TestRewriteMarker(t *testing.T) {
	t.Parallel()

	got, ok := RewriteMarker("  - [ ] ship the release", "x")
	if !ok || got != "  - [x] ship the release" {
		t.Fatalf("RewriteMarker check = %q, %v", got, ok)
	}

	got, ok = RewriteMarker("3) [✔] reviewed", " ")
	if !ok || got != "3) [ ] reviewed" {
		t.Fatalf("RewriteMarker uncheck = %q, %v", got, ok)
	}

	if _, ok := RewriteMarker("plain prose line", "x"); ok {
		t.Fatalf("RewriteMarker accepted a non-checklist line")
	}
}
