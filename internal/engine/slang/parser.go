package slang

import (
	"fmt"
	"strings"
	"unicode"
)

// sourceUnit is the parsed form of one shader source file: its import names
// in declaration order, and the remaining code tokens.
type sourceUnit struct {
	imports []string
	tokens  []string
}

// diagnostic is a single parse or resolution error with its source position.
type diagnostic struct {
	path string
	line int
	msg  string
}

func (d diagnostic) String() string {
	return fmt.Sprintf("%s:%d: error: %s", d.path, d.line, d.msg)
}

// parse splits source into import declarations and code tokens. Line
// comments (//) and block comments (/* */) are stripped. Imports must be of
// the form `import name;` and may appear anywhere at top level.
func parse(path string, source []byte) (*sourceUnit, []diagnostic) {
	var (
		unit  sourceUnit
		diags []diagnostic
	)

	for lineNo, line := range strings.Split(stripComments(string(source)), "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "import "); ok {
			name, ok := parseImportName(rest)
			if !ok {
				diags = append(diags, diagnostic{
					path: path,
					line: lineNo + 1,
					msg:  fmt.Sprintf("malformed import declaration %q", trimmed),
				})
				continue
			}
			unit.imports = append(unit.imports, name)
			continue
		}
		unit.tokens = append(unit.tokens, tokenize(trimmed)...)
	}

	return &unit, diags
}

// parseImportName extracts the module name from the remainder of an import
// declaration ("name;"). Quoted forms (`import "name";`) are accepted too.
func parseImportName(rest string) (string, bool) {
	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ";") {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimSuffix(rest, ";"))
	name = strings.Trim(name, `"`)
	if name == "" {
		return "", false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' && r != '/' {
			return "", false
		}
	}
	return name, true
}

// stripComments removes // line comments and /* */ block comments, keeping
// newlines so diagnostics report the right line.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				// Unterminated block comment eats the rest of the file; the
				// newlines are preserved for line numbering.
				end = len(src) - i - 2
			}
			for _, r := range src[i : i+2+end] {
				if r == '\n' {
					b.WriteByte('\n')
				}
			}
			i += 2 + end
			if i < len(src) {
				i += 2 // closing */
			}
		default:
			b.WriteByte(src[i])
			i++
		}
	}
	return b.String()
}

// tokenize splits a line into identifier/operator tokens.
func tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r)
	})
}
