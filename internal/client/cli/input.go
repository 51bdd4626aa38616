package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// readPassword, isTerminal, getTermState and restoreTerm are test seams for
// golang.org/x/term. In tests you can replace them with stubs to avoid
// touching the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
	getTermState = term.GetState
	restoreTerm  = term.Restore
)

// MultilineEnd is the line that finishes GetMultiline input.
const MultilineEnd = "."

type lineResult struct {
	line string
	err  error
}

// LineReader reads lines from an input stream and gives up waiting when the
// context is canceled. At most one read is in flight; a line that arrives
// after its caller gave up is returned by the next ReadLine.
//
// A LineReader has a single consumer.
type LineReader struct {
	r *bufio.Reader

	mu      sync.Mutex
	pending chan lineResult
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line including its newline, like
// bufio.Reader.ReadString('\n').
func (l *LineReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	ch := l.pending
	if ch == nil {
		ch = make(chan lineResult, 1)
		l.pending = ch
		go func() {
			line, err := l.r.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
	}
	l.mu.Unlock()

	select {
	case res := <-ch:
		l.mu.Lock()
		l.pending = nil
		l.mu.Unlock()
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// GetSimpleText prints a prompt to w and reads a single line of input.
// The surrounding whitespace is trimmed. If EOF occurs after some input was
// read, the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(ctx context.Context, in *LineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := in.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// user's terminal without echo. When stdin is not a terminal (piped input)
// the password is read as a plain line from in.
//
// If ctx is canceled while waiting, the terminal mode is restored so echo
// comes back on exit.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(ctx context.Context, in *LineReader, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Password\n> "); err != nil {
		return nil, err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := in.ReadLine(ctx)
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return nil, err
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}

	state, err := getTermState(fd)
	if err != nil {
		state = nil
	}

	type result struct {
		pw  []byte
		err error
	}
	ch := make(chan result, 1)
	go func() {
		pw, err := readPassword(fd)
		ch <- result{pw: pw, err: err}
	}()

	select {
	case res := <-ch:
		fmt.Fprintln(w)
		if res.err != nil {
			return nil, res.err
		}
		return res.pw, nil
	case <-ctx.Done():
		if state != nil {
			_ = restoreTerm(fd, state)
		}
		fmt.Fprintln(w)
		return nil, ctx.Err()
	}
}

// GetMultiline prints a prompt to w and reads lines until one consisting of
// a single "." (or EOF). Blank lines are kept so Markdown paragraphs survive.
// The collected text is joined with '\n' and trimmed.
func GetMultiline(ctx context.Context, in *LineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n(finish with a line containing only %q)\n", prompt, MultilineEnd); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := in.ReadLine(ctx)
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == MultilineEnd {
			break
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				lines = append(lines, trimmed)
				break
			}
			return "", err
		}
		lines = append(lines, trimmed)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
