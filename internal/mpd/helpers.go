package mpd

import (
	"math"
	"strconv"
	"strings"
)

// Arg is one command argument. Tokens that parse as integers carry the value
// in Int; Text always holds the unquoted token.
type Arg struct {
	Text  string
	Int   int
	IsInt bool
}

func (a Arg) String() string {
	return a.Text
}

// parseLine splits a request into its command name and arguments. Tokens are
// separated by whitespace; double quotes group a token and backslash escapes
// the next character inside quotes.
func parseLine(line string) (string, []Arg, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return "", nil, err
	}
	if len(tokens) == 0 {
		return "", nil, nil
	}

	args := make([]Arg, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		arg := Arg{Text: tok}
		if n, err := strconv.Atoi(tok); err == nil {
			arg.Int = n
			arg.IsInt = true
		}
		args = append(args, arg)
	}
	return strings.ToLower(tokens[0]), args, nil
}

func tokenize(line string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inToken := false
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes && c == '\\':
			if i+1 >= len(line) {
				return nil, newError(ErrorMalformed, "missing closing '\"'")
			}
			i++
			cur.WriteByte(line[i])
		case c == '"':
			inQuotes = !inQuotes
			inToken = true
		case !inQuotes && (c == ' ' || c == '\t'):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteByte(c)
			inToken = true
		}
	}
	if inQuotes {
		return nil, newError(ErrorMalformed, "missing closing '\"'")
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// commandName returns the lower-cased first word of a request line
func commandName(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// parseBool accepts the protocol's 0/1 booleans
func parseBool(a Arg) (bool, error) {
	switch a.Text {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, argumentError("Boolean (0/1) expected: %s", a.Text)
}

// parseInt requires an integer argument
func parseInt(a Arg, what string) (int, error) {
	if !a.IsInt {
		return 0, argumentError("Integer expected for %s: %s", what, a.Text)
	}
	return a.Int, nil
}

// parseUint requires a non-negative integer argument
func parseUint(a Arg, what string) (int, error) {
	n, err := parseInt(a, what)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, argumentError("Number too small for %s: %s", what, a.Text)
	}
	return n, nil
}

// parseRange parses "N" or "START:END" (END may be empty for open ranges,
// returned as -1). The result is half-open.
func parseRange(a Arg) (int, int, error) {
	if a.IsInt {
		if a.Int < 0 {
			return 0, 0, argumentError("Number is negative: %s", a.Text)
		}
		return a.Int, a.Int + 1, nil
	}

	before, after, found := strings.Cut(a.Text, ":")
	if !found {
		return 0, 0, argumentError("Integer or range expected: %s", a.Text)
	}
	start, err := strconv.Atoi(before)
	if err != nil || start < 0 {
		return 0, 0, argumentError("Integer or range expected: %s", a.Text)
	}
	if after == "" {
		return start, -1, nil
	}
	end, err := strconv.Atoi(after)
	if err != nil || end < start {
		return 0, 0, argumentError("Integer or range expected: %s", a.Text)
	}
	return start, end, nil
}

// parseSeconds parses a time offset. A leading sign marks it as relative.
func parseSeconds(a Arg) (float64, bool, error) {
	relative := strings.HasPrefix(a.Text, "+") || strings.HasPrefix(a.Text, "-")
	seconds, err := strconv.ParseFloat(a.Text, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, false, argumentError("Float expected: %s", a.Text)
	}
	return seconds, relative, nil
}
