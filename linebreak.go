package text2d

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// wrapLines splits content into lines. Newlines always break. When maxWidth is
// positive, each paragraph is greedily filled up to maxWidth using the break
// opportunities of policy; otherwise paragraphs are returned as-is.
func wrapLines(content string, f Font, maxWidth float64, policy LineBreak) []string {
	paragraphs := strings.Split(content, "\n")
	if maxWidth <= 0 {
		for i, p := range paragraphs {
			paragraphs[i] = strings.TrimSuffix(p, "\r")
		}
		return paragraphs
	}

	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSuffix(p, "\r")
		switch policy {
		case LineBreakAnyCharacter:
			lines = wrapGraphemes(lines, p, f, maxWidth)
		default:
			lines = wrapWords(lines, p, f, maxWidth)
		}
	}
	return lines
}

// wrapWords fills lines at Unicode line break opportunities (UAX #14).
// Trailing whitespace never causes a wrap and is dropped from every line,
// including the paragraph's last. A segment wider than maxWidth on
// its own stays whole and overflows.
func wrapWords(lines []string, para string, f Font, maxWidth float64) []string {
	var line string
	state := -1
	for rest := para; len(rest) > 0; {
		var seg string
		seg, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		candidate := line + seg
		if line != "" && measureWidth(f, trimTrailingSpace(candidate)) > maxWidth {
			lines = append(lines, trimTrailingSpace(line))
			line = seg
			continue
		}
		line = candidate
	}
	return append(lines, trimTrailingSpace(line))
}

// wrapGraphemes fills lines one grapheme cluster at a time. Each line holds
// at least one cluster.
func wrapGraphemes(lines []string, para string, f Font, maxWidth float64) []string {
	var line string
	state := -1
	for rest := para; len(rest) > 0; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		candidate := line + cluster
		if line != "" && measureWidth(f, candidate) > maxWidth {
			lines = append(lines, line)
			line = cluster
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

func measureWidth(f Font, s string) float64 {
	w, _ := f.MeasureString(s)
	return w
}

func trimTrailingSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
