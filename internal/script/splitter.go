package script

import "strings"

// DefaultTerminator ends statements until a SET TERM changes it.
const DefaultTerminator = ";"

// Kind classifies a split statement.
type Kind int

const (
	// KindSQL is sent to the server.
	KindSQL Kind = iota
	// KindCommit is an isql COMMIT [WORK].
	KindCommit
	// KindDirective is an isql client-side SET command (AUTODDL, NAMES, ...).
	KindDirective
)

func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindDirective:
		return "directive"
	default:
		return "sql"
	}
}

type Statement struct {
	Text string
	Kind Kind
	Line int // 1-based line where the statement starts
}

// lexState is where the scanner currently is inside the script text.
type lexState int

const (
	stateCode lexState = iota
	stateSingleQuote
	stateDoubleQuote
	stateLineComment
	stateBlockComment
)

// clientDirectives are isql SET commands that have no server-side meaning.
var clientDirectives = []string{
	"AUTODDL", "SQL DIALECT", "NAMES", "ECHO", "BAIL", "STATS", "COUNT",
	"HEADING", "LIST", "PLAN", "PLANONLY", "WARNINGS", "WNG", "BLOBDISPLAY",
}

// Split cuts script text into statements using the isql terminator
// convention. See SplitWith.
func Split(text string) []Statement {
	return SplitWith(text, DefaultTerminator)
}

// SplitWith cuts script text into statements starting from the given
// terminator. A "SET TERM <new> <old>" statement, itself ended by the current
// terminator, switches the terminator and is not returned. Terminators inside
// string literals, quoted identifiers and comments are ignored. Statements
// consisting only of whitespace and comments are dropped.
func SplitWith(text, terminator string) []Statement {
	s := &splitter{src: text, term: terminator, line: 1, startLine: 1}
	s.run()
	return s.out
}

type splitter struct {
	src       string
	term      string
	state     lexState
	buf       strings.Builder
	hasCode   bool // buf holds something other than whitespace and comments
	line      int
	startLine int
	out       []Statement
}

func (s *splitter) run() {
	for i := 0; i < len(s.src); {
		c := s.src[i]
		switch s.state {
		case stateCode:
			switch {
			case strings.HasPrefix(s.src[i:], s.term):
				// flush may switch the terminator.
				n := len(s.term)
				s.flush()
				i += n
				continue
			case c == '\'':
				s.state = stateSingleQuote
			case c == '"':
				s.state = stateDoubleQuote
			case strings.HasPrefix(s.src[i:], "--"):
				s.state = stateLineComment
			case strings.HasPrefix(s.src[i:], "/*"):
				s.state = stateBlockComment
				s.write("/*")
				i += 2
				continue
			}
			if s.state != stateLineComment && !isSpace(c) {
				s.hasCode = true
			}
		case stateSingleQuote:
			if c == '\'' {
				// '' is an escaped quote and keeps the literal open.
				if i+1 < len(s.src) && s.src[i+1] == '\'' {
					s.write("''")
					i += 2
					continue
				}
				s.state = stateCode
			}
		case stateDoubleQuote:
			if c == '"' {
				s.state = stateCode
			}
		case stateLineComment:
			if c == '\n' {
				s.state = stateCode
			}
		case stateBlockComment:
			if strings.HasPrefix(s.src[i:], "*/") {
				s.write("*/")
				s.state = stateCode
				i += 2
				continue
			}
		}
		s.write(s.src[i : i+1])
		i++
	}
	s.flush()
}

func (s *splitter) write(chunk string) {
	if s.buf.Len() == 0 && !s.hasCode {
		// Leading whitespace does not count as the statement start.
		if strings.TrimSpace(chunk) == "" {
			s.line += strings.Count(chunk, "\n")
			s.startLine = s.line
			return
		}
	}
	s.buf.WriteString(chunk)
	s.line += strings.Count(chunk, "\n")
}

// flush ends the current statement at a terminator (or at end of input).
func (s *splitter) flush() {
	text := strings.TrimSpace(s.buf.String())
	hasCode := s.hasCode
	startLine := s.startLine
	s.buf.Reset()
	s.hasCode = false
	s.startLine = s.line

	if !hasCode {
		return
	}
	if newTerm, ok := parseSetTerm(text); ok {
		s.term = newTerm
		return
	}
	s.out = append(s.out, Statement{Text: text, Kind: classify(text), Line: startLine})
}

// parseSetTerm recognises "SET TERM <new> [<old>]" and returns <new>.
func parseSetTerm(text string) (string, bool) {
	fields := strings.Fields(stripComments(text))
	if len(fields) < 3 || len(fields) > 4 {
		return "", false
	}
	if !strings.EqualFold(fields[0], "SET") || !strings.EqualFold(fields[1], "TERM") {
		return "", false
	}
	return fields[2], true
}

func classify(text string) Kind {
	upper := strings.ToUpper(strings.Join(strings.Fields(stripComments(text)), " "))
	if upper == "COMMIT" || upper == "COMMIT WORK" {
		return KindCommit
	}
	if rest, ok := strings.CutPrefix(upper, "SET "); ok {
		for _, d := range clientDirectives {
			if rest == d || strings.HasPrefix(rest, d+" ") {
				return KindDirective
			}
		}
	}
	return KindSQL
}

// stripComments removes comments outside of quotes; it is only used on short
// statements for classification.
func stripComments(text string) string {
	var sb strings.Builder
	state := stateCode
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch state {
		case stateCode:
			switch {
			case strings.HasPrefix(text[i:], "--"):
				state = stateLineComment
				continue
			case strings.HasPrefix(text[i:], "/*"):
				state = stateBlockComment
				i++
				continue
			case c == '\'':
				state = stateSingleQuote
			case c == '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			if c == '\'' {
				state = stateCode
			}
		case stateDoubleQuote:
			if c == '"' {
				state = stateCode
			}
		case stateLineComment:
			if c == '\n' {
				state = stateCode
				sb.WriteByte(' ')
			}
			continue
		case stateBlockComment:
			if strings.HasPrefix(text[i:], "*/") {
				state = stateCode
				sb.WriteByte(' ')
				i++
			}
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
