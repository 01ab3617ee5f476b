package parser

import "strings"

// indentStyle identifies which of the two allowed indent units a source
// file commits to on its first indented line.
type indentStyle int

const (
	indentUnknown indentStyle = iota
	indentTabs
	indentSpaces
)

// rawLine is one non-blank source line with its indentation already
// measured off as a depth (one logical indent level per tab, or per two
// spaces).
type rawLine struct {
	depth   int
	content string // text after the indentation prefix, NOT yet comment/weight/escape processed
	lineNo  int    // 1-based source line number
}

// splitLines normalizes line endings, measures indentation depth for every
// non-blank line, and enforces that the whole file commits to one indent
// style (tabs, or exactly two spaces) used consistently at every level.
func splitLines(source string) ([]rawLine, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")

	var style indentStyle
	var out []rawLine
	for i, text := range strings.Split(source, "\n") {
		lineNo := i + 1
		if strings.TrimSpace(text) == "" {
			continue
		}

		prefixLen := 0
		for prefixLen < len(text) && (text[prefixLen] == ' ' || text[prefixLen] == '\t') {
			prefixLen++
		}
		prefix := text[:prefixLen]
		content := text[prefixLen:]

		if prefix == "" {
			out = append(out, rawLine{depth: 0, content: content, lineNo: lineNo})
			continue
		}

		usesTabs := strings.Contains(prefix, "\t")
		usesSpaces := strings.Contains(prefix, " ")
		if usesTabs && usesSpaces {
			return nil, errAt(lineNo, "indentation mixes tabs and spaces")
		}

		if style == indentUnknown {
			if usesTabs {
				style = indentTabs
			} else {
				style = indentSpaces
			}
		}

		var depth int
		if usesTabs {
			if style != indentTabs {
				return nil, errAt(lineNo, "indentation switches from spaces to tabs")
			}
			depth = len(prefix)
		} else {
			if style != indentSpaces {
				return nil, errAt(lineNo, "indentation switches from tabs to spaces")
			}
			if len(prefix)%2 != 0 {
				return nil, errAt(lineNo, "indentation must be exactly two spaces per level, got %d spaces", len(prefix))
			}
			depth = len(prefix) / 2
		}

		out = append(out, rawLine{depth: depth, content: content, lineNo: lineNo})
	}
	return out, nil
}

// childExtent scans forward from i+1 and returns the index just past the
// contiguous run of lines indented deeper than lines[i]. That run is the
// block owned by lines[i] (its properties, items, sub-lists, or $output),
// to be walked recursively one depth at a time.
func childExtent(lines []rawLine, i int) int {
	parentDepth := lines[i].depth
	j := i + 1
	for j < len(lines) && lines[j].depth > parentDepth {
		j++
	}
	return j
}
