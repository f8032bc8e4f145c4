// Package chunker splits long Markdown-ish text into message-sized chunks.
//
// The splitter walks the input line by line and never breaks inside a line
// unless a single line alone exceeds the character limit. Fenced code blocks
// (``` or ~~~) that straddle a split are closed in the earlier chunk and
// reopened verbatim in the later one, so every chunk stays well-formed on
// its own.
package chunker

import (
	"errors"
	"fmt"
	"strings"
)

// HardLimit is the absolute ceiling on a single chunk, independent of the
// configured MaxChars. It matches Discord's message length cap.
const HardLimit = 2000

// ErrFenceOverhead is returned when MaxChars is too small to fit the fence
// open/close wrapper lines around content that must be hard-cut inside an
// active code fence.
var ErrFenceOverhead = errors.New("max_chars too small to preserve active code fence wrappers")

// Config carries the two limits a single Split call honors.
type Config struct {
	// MaxChars is the maximum character count per chunk. Must be positive.
	MaxChars int
	// MaxLines is the maximum readable-line count per chunk. Zero disables
	// the line limit; blank and fence-delimiter lines never count.
	MaxLines int
}

// Split breaks content into an ordered, non-empty list of chunks that each
// satisfy cfg and the absolute HardLimit. Content that already fits is
// returned untouched as a single chunk. Split never partially succeeds: it
// returns either a fully valid chunk list or an error.
func Split(content string, cfg Config) ([]string, error) {
	if len(content) <= cfg.MaxChars && (cfg.MaxLines == 0 || CountReadableLines(content) <= cfg.MaxLines) {
		chunks := []string{content}
		if err := guard(chunks); err != nil {
			return nil, err
		}
		return chunks, nil
	}

	var (
		chunks   []string
		current  []string
		chars    int // len(strings.Join(current, "\n"))
		readable int
		fence    fenceState
	)

	// flush emits the accumulated chunk. An open fence is closed before the
	// emit and reopened (replaying its original opening line) as the start
	// of the next chunk.
	flush := func() {
		if fence.open {
			chunks = append(chunks, strings.Join(current, "\n")+"\n"+fence.closeLine())
			current = []string{fence.openLine}
			chars = len(fence.openLine)
		} else {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = current[:0]
			chars = 0
		}
		readable = 0
	}

	push := func(line string) {
		if len(current) > 0 {
			chars++
		}
		current = append(current, line)
		chars += len(line)
		if isReadableLine(line) {
			readable++
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if len(line) > cfg.MaxChars {
			// The line cannot fit in any chunk whole; cut it at fixed
			// MaxChars boundaries. Inside a fence every forced piece also
			// carries the reopen and close wrapper lines.
			if len(current) > 0 {
				flush()
			}
			if fence.open {
				room := cfg.MaxChars - len(fence.openLine) - 1 - fence.markerLen - 1
				if room < 1 {
					return nil, fmt.Errorf("%w (max_chars=%d)", ErrFenceOverhead, cfg.MaxChars)
				}
				rest := line
				for len(rest) > room {
					chunks = append(chunks, fence.openLine+"\n"+rest[:room]+"\n"+fence.closeLine())
					rest = rest[room:]
				}
				current = []string{fence.openLine}
				chars = len(fence.openLine)
				readable = 0
				if rest != "" {
					push(rest)
				}
			} else {
				rest := line
				for len(rest) > cfg.MaxChars {
					chunks = append(chunks, rest[:cfg.MaxChars])
					rest = rest[cfg.MaxChars:]
				}
				if rest != "" {
					push(rest)
				}
			}
			fence.observe(line)
			continue
		}

		if len(current) > 0 {
			projected := chars + 1 + len(line)
			if fence.open {
				// Reserve room for the close-fence line that a flush right
				// after this line would have to append.
				projected += 1 + fence.markerLen
			}
			switch {
			case projected > cfg.MaxChars:
				flush()
			case cfg.MaxLines > 0 && isReadableLine(line) && readable >= cfg.MaxLines:
				flush()
			}
		}

		push(line)
		fence.observe(line)
	}

	// An unterminated fence at the very end of the input is preserved as-is;
	// a synthetic close is only ever added at a split.
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}

	if err := guard(chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// guard asserts the post-split invariant: no chunk may exceed HardLimit.
// A violation aborts the whole call rather than re-splitting, since another
// split round could reintroduce the same overhead or corrupt fence pairing.
func guard(chunks []string) error {
	for i, chunk := range chunks {
		if len(chunk) > HardLimit {
			return fmt.Errorf("chunk %d is %d characters, exceeding the hard limit of %d", i+1, len(chunk), HardLimit)
		}
	}
	return nil
}
