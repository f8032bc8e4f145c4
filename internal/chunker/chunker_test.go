package chunker

import (
	"errors"
	"strings"
	"testing"
)

func TestSplitFastPath(t *testing.T) {
	t.Parallel()

	chunks, err := Split("hello", Config{MaxChars: 1950, MaxLines: 17})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != "hello" {
		t.Fatalf("expected [hello], got %#v", chunks)
	}

	// Content is returned untouched, leading/trailing whitespace included.
	raw := "  keep me  \n\n  and me  "
	chunks, err = Split(raw, Config{MaxChars: 100, MaxLines: 0})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != raw {
		t.Fatalf("expected raw passthrough, got %#v", chunks)
	}
}

func TestSplitEmptyContent(t *testing.T) {
	t.Parallel()

	chunks, err := Split("", Config{MaxChars: 100, MaxLines: 0})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != "" {
		t.Fatalf("expected single empty chunk, got %#v", chunks)
	}
}

func TestSplitAtLineBoundary(t *testing.T) {
	t.Parallel()

	a := strings.Repeat("A", 80)
	b := strings.Repeat("B", 80)
	chunks, err := Split(a+"\n"+b, Config{MaxChars: 100, MaxLines: 0})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) != 2 || chunks[0] != a || chunks[1] != b {
		t.Fatalf("expected split at line boundary, got %#v", chunks)
	}
}

func TestSplitHardCut(t *testing.T) {
	t.Parallel()

	chunks, err := Split(strings.Repeat("A", 200), Config{MaxChars: 100, MaxLines: 0})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	want := strings.Repeat("A", 100)
	if len(chunks) != 2 || chunks[0] != want || chunks[1] != want {
		t.Fatalf("expected two exact 100-char cuts, got %#v", chunks)
	}
}

func TestSplitHardCutRemainderJoinsNextLine(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("A", 150) + "\nshort"
	chunks, err := Split(content, Config{MaxChars: 100, MaxLines: 0})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %#v", len(chunks), chunks)
	}
	if chunks[0] != strings.Repeat("A", 100) {
		t.Fatalf("unexpected first cut: %q", chunks[0])
	}
	if chunks[1] != strings.Repeat("A", 50)+"\nshort" {
		t.Fatalf("remainder should carry the following line, got %q", chunks[1])
	}
}

func TestSplitByReadableLines(t *testing.T) {
	t.Parallel()

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "line"
	}
	chunks, err := Split(strings.Join(lines, "\n"), Config{MaxChars: 50000, MaxLines: 5})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	half := strings.Join(lines[:5], "\n")
	if len(chunks) != 2 || chunks[0] != half || chunks[1] != half {
		t.Fatalf("expected two chunks of 5 lines, got %#v", chunks)
	}
}

func TestSplitBlankLinesDoNotCount(t *testing.T) {
	t.Parallel()

	content := "one\n\ntwo\n\nthree"
	chunks, err := Split(content, Config{MaxChars: 50000, MaxLines: 3})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != content {
		t.Fatalf("blank lines must not count toward the line limit, got %#v", chunks)
	}
}

func TestSplitFenceReplay(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("```js\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("code\n")
	}
	sb.WriteString("```")

	chunks, err := Split(sb.String(), Config{MaxChars: 50000, MaxLines: 5})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n```") {
		t.Fatalf("first chunk must close the fence, got %q", chunks[0])
	}
	if firstLine := strings.SplitN(chunks[1], "\n", 2)[0]; firstLine != "```js" {
		t.Fatalf("second chunk must replay the opening line, got %q", firstLine)
	}
	for i, chunk := range chunks {
		markers := 0
		for _, line := range strings.Split(chunk, "\n") {
			if isFenceLine(line) {
				markers++
			}
		}
		if markers%2 != 0 {
			t.Fatalf("chunk %d has unbalanced fence markers: %q", i, chunk)
		}
	}
}

func TestSplitFenceCharOverheadReserved(t *testing.T) {
	t.Parallel()

	// 10 fenced lines of 60 chars each; with max_chars 200 the close-fence
	// overhead must be reserved, so every chunk stays within the limit.
	var sb strings.Builder
	sb.WriteString("```\n")
	for i := 0; i < 10; i++ {
		sb.WriteString(strings.Repeat("x", 60) + "\n")
	}
	sb.WriteString("```")

	chunks, err := Split(sb.String(), Config{MaxChars: 200, MaxLines: 0})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 200 {
			t.Fatalf("chunk %d is %d chars, over the configured limit", i, len(chunk))
		}
	}
}

func TestSplitTildeFenceIndependentOfBackticks(t *testing.T) {
	t.Parallel()

	content := "~~~\n```\ntext\n```\nmore\n~~~"
	chunks, err := Split(content, Config{MaxChars: 5000, MaxLines: 0})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != content {
		t.Fatalf("backtick lines inside a tilde fence are content, got %#v", chunks)
	}
}

func TestSplitLongerMarkerStaysOpen(t *testing.T) {
	t.Parallel()

	// A ``` line inside a ```` fence does not close it, so the line limit
	// forces the split to replay the four-backtick opening.
	lines := []string{"````", "one", "two", "```", "three", "four", "five", "````"}
	chunks, err := Split(strings.Join(lines, "\n"), Config{MaxChars: 5000, MaxLines: 3})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %#v", chunks)
	}
	if !strings.HasSuffix(chunks[0], "\n````") {
		t.Fatalf("first chunk must close with a four-marker line, got %q", chunks[0])
	}
	if firstLine := strings.SplitN(chunks[1], "\n", 2)[0]; firstLine != "````" {
		t.Fatalf("second chunk must reopen with the original marker, got %q", firstLine)
	}
}

func TestSplitUnterminatedFencePreserved(t *testing.T) {
	t.Parallel()

	content := "```go\nfunc main() {}"
	chunks, err := Split(content, Config{MaxChars: 5000, MaxLines: 1})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	last := chunks[len(chunks)-1]
	if strings.HasSuffix(last, "\n```") {
		t.Fatalf("no synthetic close at end of input, got %q", last)
	}
}

func TestSplitHardCutInsideFence(t *testing.T) {
	t.Parallel()

	content := "```js\n" + strings.Repeat("A", 300) + "\n```"
	chunks, err := Split(content, Config{MaxChars: 100, MaxLines: 0})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	for i, chunk := range chunks {
		if len(chunk) > 100 {
			t.Fatalf("chunk %d is %d chars, over the limit: %q", i, len(chunk), chunk)
		}
	}
	// Every middle chunk carries the replayed opening and a close line.
	for i, chunk := range chunks[1 : len(chunks)-1] {
		if !strings.HasPrefix(chunk, "```js\n") || !strings.HasSuffix(chunk, "\n```") {
			t.Fatalf("forced piece %d is missing fence wrappers: %q", i+1, chunk)
		}
	}
	// Joining the content back together must reproduce the original A-run.
	var joined strings.Builder
	for _, chunk := range chunks {
		for _, line := range strings.Split(chunk, "\n") {
			if !isFenceLine(line) {
				joined.WriteString(line)
			}
		}
	}
	if joined.String() != strings.Repeat("A", 300) {
		t.Fatalf("hard-cut pieces do not reassemble, got %d chars", joined.Len())
	}
}

func TestSplitFenceOverheadTooSmall(t *testing.T) {
	t.Parallel()

	content := "```js\n" + strings.Repeat("A", 200) + "\n```"
	_, err := Split(content, Config{MaxChars: 10, MaxLines: 0})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrFenceOverhead) {
		t.Fatalf("expected ErrFenceOverhead, got %v", err)
	}
	if !strings.Contains(err.Error(), "too small to preserve active code fence wrappers") {
		t.Fatalf("error message should name the cause, got %q", err)
	}
}

func TestSplitHardLimitGuard(t *testing.T) {
	t.Parallel()

	_, err := Split(strings.Repeat("A", 3000), Config{MaxChars: 5000, MaxLines: 0})
	if err == nil {
		t.Fatal("expected hard-limit violation")
	}
	if !strings.Contains(err.Error(), "hard limit") {
		t.Fatalf("expected hard-limit error, got %v", err)
	}
}

func TestSplitNeverBreaksMidLine(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("alpha beta gamma delta\n", 50) + "tail"
	chunks, err := Split(content, Config{MaxChars: 120, MaxLines: 0})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	original := map[string]bool{}
	for _, line := range strings.Split(content, "\n") {
		original[line] = true
	}
	for _, chunk := range chunks {
		for _, line := range strings.Split(chunk, "\n") {
			if !original[line] {
				t.Fatalf("chunk contains a line not present in the input: %q", line)
			}
		}
	}
}

func TestSplitChunkBoundariesStable(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("some sentence here\n", 30)
	cfg := Config{MaxChars: 150, MaxLines: 0}
	first, err := Split(content, cfg)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	again, err := Split(strings.Join(first, "\n"), cfg)
	if err != nil {
		t.Fatalf("re-split failed: %v", err)
	}
	if strings.Join(first, "\n") != strings.Join(again, "\n") {
		t.Fatalf("re-chunking the joined output changed content")
	}
}
