// Package sshconfig reads the host blocks out of an OpenSSH client config.
//
// Only what is needed to list hosts is interpreted: Host, HostName and User.
// Every other directive is kept verbatim and otherwise ignored. Patterns are
// not matched against real host names and Include is not followed.
package sshconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned when the config file does not exist.
var ErrNotFound = errors.New("ssh config not found")

// Host is one Host block. Repeated aliases produce separate Hosts.
type Host struct {
	// Alias is the first pattern on the Host line.
	Alias string
	// Patterns are all patterns on the Host line, in order.
	Patterns []string
	// HostName and User are empty when the block does not set them.
	HostName string
	User     string
	// Options holds the block's remaining directive lines, trimmed.
	Options []string
}

// ParseError reports a directive the parser cannot make sense of.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseFile parses the config at path. A missing file yields an error that
// matches both ErrNotFound and fs.ErrNotExist.
func ParseFile(path string) ([]Host, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	hosts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return hosts, nil
}

// Parse reads host blocks from r in file order.
func Parse(r io.Reader) ([]Host, error) {
	var (
		hosts   []Host
		current *Host
		lineNo  int
	)
	flush := func() {
		if current != nil {
			hosts = append(hosts, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		keyword, args := splitDirective(line)
		switch strings.ToLower(keyword) {
		case "host":
			flush()
			patterns := splitArgs(args)
			if len(patterns) == 0 {
				return nil, &ParseError{Line: lineNo, Msg: "Host directive without a pattern"}
			}
			current = &Host{Alias: patterns[0], Patterns: patterns}
		case "match":
			// Match blocks are conditional; their options belong to no Host.
			flush()
		case "hostname":
			if current != nil && current.HostName == "" {
				current.HostName = firstArg(args)
			}
		case "user":
			if current != nil && current.User == "" {
				current.User = firstArg(args)
			}
		default:
			if current != nil {
				current.Options = append(current.Options, line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return hosts, nil
}

// splitDirective separates the keyword from its arguments. OpenSSH accepts
// both "Keyword value" and "Keyword=value".
func splitDirective(line string) (string, string) {
	i := strings.IndexAny(line, " \t=")
	if i < 0 {
		return line, ""
	}
	keyword := line[:i]
	rest := strings.TrimLeft(line[i:], " \t")
	rest = strings.TrimPrefix(rest, "=")
	return keyword, strings.TrimSpace(rest)
}

// splitArgs splits on whitespace, honoring double quotes.
func splitArgs(s string) []string {
	var (
		args    []string
		buf     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case (r == ' ' || r == '\t') && !inQuote:
			if started {
				args = append(args, buf.String())
				buf.Reset()
				started = false
			}
		default:
			buf.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, buf.String())
	}
	return args
}

func firstArg(s string) string {
	args := splitArgs(s)
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
