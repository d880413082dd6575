// Package scanner turns raw Varion source text into a stream of classified
// lines. It strips comments and blanks, recognizes the line markers of the
// external grammar and attaches source line numbers for diagnostics.
//
// The grammar is line-oriented:
//
//	:: node_id            node header
//	# tag                 tag line
//	// anything           comment (discarded)
//	@next target_id       explicit continuation directive
//	@if expr              condition guarding the following choice
//	@action: command      host action
//	@key: value           meta pair
//	* label => target     choice (optional trailing `@if expr`)
//	anything else         display text
//
// Scanning never stops at the first problem; lexical errors are accumulated
// so authors see every issue in one pass.
package scanner

import (
	"bufio"
	"strings"

	"github.com/aretw0/varion/pkg/script"
)

// Kind classifies a logical line.
type Kind int

const (
	KindHeader Kind = iota
	KindTag
	KindDirective
	KindCondition
	KindAction
	KindMeta
	KindChoice
	KindText
)

// Line is one classified source line. Comments and blanks are never emitted.
type Line struct {
	Kind   Kind
	Number int // 1-based source line number

	// Text carries the trimmed payload (header id, tag text, directive
	// target, condition expression, action command). For KindText it is the
	// original line, untrimmed, so indentation survives into node bodies.
	Text string

	// Key/Value are set for KindMeta.
	Key   string
	Value string

	// Label/Target/Condition are set for KindChoice.
	Label     string
	Target    string
	Condition string
}

const (
	headerMarker    = "::"
	tagMarker       = "#"
	commentMarker   = "//"
	choiceMarker    = "*"
	directiveWord   = "@next"
	conditionWord   = "@if"
	actionPrefix    = "@action:"
	choiceDelimiter = "=>"
)

// Scan classifies every line of source in a single forward pass.
// It always returns the classified lines it could produce; errs collects
// every lexical problem encountered along the way.
func Scan(source string) ([]Line, *script.ErrorList) {
	var lines []Line
	errs := &script.ErrorList{}

	sc := bufio.NewScanner(strings.NewReader(source))
	// Script lines are small, but do not choke on long text paragraphs.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	num := 0
	for sc.Scan() {
		num++
		raw := sc.Text()
		line, err := classify(raw, num)
		errs.Add(err)
		if line != nil {
			lines = append(lines, *line)
		}
	}

	return lines, errs
}

func classify(raw string, num int) (*Line, *script.Error) {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "" || strings.HasPrefix(trimmed, commentMarker):
		// Blank lines group content visually; comments are author-only.
		return nil, nil

	case strings.HasPrefix(trimmed, headerMarker):
		id := strings.TrimSpace(trimmed[len(headerMarker):])
		if id == "" {
			return nil, script.Errorf(script.KindLexical, num, "",
				"node declaration %q must be followed by a name", headerMarker)
		}
		return &Line{Kind: KindHeader, Number: num, Text: id}, nil

	case strings.HasPrefix(trimmed, tagMarker):
		tag := strings.TrimSpace(trimmed[len(tagMarker):])
		if tag == "" {
			return nil, script.Errorf(script.KindLexical, num, "",
				"tag marker %q must be followed by tag text", tagMarker)
		}
		return &Line{Kind: KindTag, Number: num, Text: tag}, nil

	case strings.HasPrefix(trimmed, "@"):
		return classifyAt(trimmed, num)

	case strings.HasPrefix(trimmed, choiceMarker):
		return classifyChoice(strings.TrimSpace(trimmed[len(choiceMarker):]), num)

	default:
		return &Line{Kind: KindText, Number: num, Text: raw}, nil
	}
}

// classifyAt handles the `@` family: @next, @if, @action: and @key: value.
func classifyAt(trimmed string, num int) (*Line, *script.Error) {
	if rest, ok := cutKeyword(trimmed, directiveWord); ok {
		if rest == "" {
			return nil, script.Errorf(script.KindLexical, num, "",
				"%s must name a target node", directiveWord)
		}
		return &Line{Kind: KindDirective, Number: num, Text: rest}, nil
	}

	if rest, ok := cutKeyword(trimmed, conditionWord); ok {
		if rest == "" {
			return nil, script.Errorf(script.KindLexical, num, "",
				"%s must carry a condition expression", conditionWord)
		}
		return &Line{Kind: KindCondition, Number: num, Text: rest}, nil
	}

	if strings.HasPrefix(trimmed, actionPrefix) {
		cmd := strings.TrimSpace(trimmed[len(actionPrefix):])
		if cmd == "" {
			return nil, script.Errorf(script.KindLexical, num, "",
				"%s must carry a command", actionPrefix)
		}
		return &Line{Kind: KindAction, Number: num, Text: cmd}, nil
	}

	key, value, found := strings.Cut(trimmed[1:], ":")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return nil, script.Errorf(script.KindMalformedMeta, num, "",
			"invalid meta or action line: %s", trimmed)
	}
	return &Line{
		Kind:   KindMeta,
		Number: num,
		Key:    key,
		Value:  strings.TrimSpace(value),
	}, nil
}

// classifyChoice splits `label => target` with an optional inline `@if expr`
// after the target. The `=>` delimiter is the external grammar contract.
func classifyChoice(body string, num int) (*Line, *script.Error) {
	label, rest, found := strings.Cut(body, choiceDelimiter)
	label = strings.TrimSpace(label)
	rest = strings.TrimSpace(rest)
	if !found || label == "" || rest == "" {
		return nil, script.Errorf(script.KindMalformedChoice, num, "",
			"invalid choice format (want `* label %s target`): %s", choiceDelimiter, body)
	}

	target := rest
	condition := ""
	if idx := strings.Index(rest, conditionWord); idx >= 0 {
		target = strings.TrimSpace(rest[:idx])
		condition = strings.TrimSpace(rest[idx+len(conditionWord):])
		if target == "" || condition == "" {
			return nil, script.Errorf(script.KindMalformedChoice, num, "",
				"invalid inline condition in choice: %s", body)
		}
	}

	return &Line{
		Kind:      KindChoice,
		Number:    num,
		Label:     label,
		Target:    target,
		Condition: condition,
	}, nil
}

// cutKeyword strips a leading keyword if it is followed by a word boundary,
// returning the trimmed remainder. This keeps `@nextish` from being read as
// a directive.
func cutKeyword(s, keyword string) (string, bool) {
	if !strings.HasPrefix(s, keyword) {
		return "", false
	}
	rest := s[len(keyword):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
