package gfm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/keepmark/pkg/mark"
)

const (
	typeFootnoteCall                  = "gfmFootnoteCall"
	typeFootnoteCallLabelMarker       = "gfmFootnoteCallLabelMarker"
	typeFootnoteCallMarker            = "gfmFootnoteCallMarker"
	typeFootnoteCallString            = "gfmFootnoteCallString"
	typeFootnoteDefinition            = "gfmFootnoteDefinition"
	typeFootnoteDefinitionIndent      = "gfmFootnoteDefinitionIndent"
	typeFootnoteDefinitionLabel       = "gfmFootnoteDefinitionLabel"
	typeFootnoteDefinitionLabelMarker = "gfmFootnoteDefinitionLabelMarker"
	typeFootnoteDefinitionLabelString = "gfmFootnoteDefinitionLabelString"
	typeFootnoteDefinitionMarker      = "gfmFootnoteDefinitionMarker"
	typeFootnoteDefinitionWhitespace  = "gfmFootnoteDefinitionWhitespace"
	typeFootnotePotentialCall         = "gfmPotentialFootnoteCall"
)

const footnoteLabelSizeMax = 999

// FootnoteSyntax adds footnote definitions (`[^a]: b`) and calls (`[^a]`).
// Call parsing depends on the definitions seen so far, so definitions have to
// come first in the document to be picked up, like on GitHub.
func FootnoteSyntax() mark.Extension {
	return mark.Extension{
		Document: mark.ConstructRecord{
			'[': {{
				Name:         "gfmFootnoteDefinition",
				Tokenize:     tokenizeFootnoteDefinitionStart,
				Continuation: &mark.Construct{Tokenize: tokenizeFootnoteDefinitionContinuation},
				Exit:         footnoteDefinitionEnd,
			}},
		},
		Text: mark.ConstructRecord{
			'[': {{
				Name:     "gfmFootnoteCall",
				Tokenize: tokenizeFootnoteCall,
			}},
			']': {{
				Name:      "gfmPotentialFootnoteCall",
				Add:       "after",
				Tokenize:  tokenizePotentialFootnoteCall,
				ResolveTo: resolveToPotentialFootnoteCall,
			}},
		},
	}
}

// footnoteIdentifiers lists the identifiers of footnote definitions parsed so
// far, shared across the parser's tokenizers.
func footnoteIdentifiers(p *mark.Parser) []string {
	list, _ := p.Extra["gfmFootnotes"].([]string)
	return list
}

// An image label start (`![`) that could not close as an image may still end
// in a footnote call: `![^a]` is `!` followed by a call. The potential call
// construct runs after the regular label end and picks those up.
func tokenizePotentialFootnoteCall(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	events := tk.Events()
	defined := footnoteIdentifiers(tk.Parser())
	var labelStart *mark.Token

	for index := len(events) - 1; index >= 0; index-- {
		token := events[index].Token
		if token.Type == mark.TypeLabelImage {
			labelStart = token
			break
		}
		// Walked past anything that could hold an open image: stop.
		if token.Type == typeFootnoteCall ||
			token.Type == mark.TypeLabelLink ||
			token.Type == mark.TypeLabel ||
			token.Type == mark.TypeImage ||
			token.Type == mark.TypeLink {
			break
		}
	}

	return func(code mark.Code) mark.State {
		if labelStart == nil || !labelStart.Balanced {
			return nok(code)
		}

		id := mark.NormalizeIdentifier(tk.SliceSerialize(
			&mark.Token{Start: labelStart.End, End: tk.Now()}, false))

		if len(id) == 0 || id[0] != '^' || !contains(defined, id[1:]) {
			return nok(code)
		}

		tk.Enter(typeFootnoteCallLabelMarker)
		tk.Consume(code)
		tk.Exit(typeFootnoteCallLabelMarker)
		return ok(code)
	}
}

// resolveToPotentialFootnoteCall rewrites the dangling image label start into
// a data `!` followed by a footnote call.
func resolveToPotentialFootnoteCall(events []mark.Event, context *mark.Tokenizer) []mark.Event {
	index := len(events)
	for index > 0 {
		index--
		if events[index].Kind == mark.Enter &&
			events[index].Token.Type == mark.TypeLabelImage {
			break
		}
	}

	// The `!` becomes data, the `[` becomes the call's opening marker.
	events[index+1].Token.Type = mark.TypeData
	events[index+3].Token.Type = typeFootnoteCallLabelMarker

	call := &mark.Token{
		Type:  typeFootnoteCall,
		Start: events[index+3].Token.Start,
		End:   events[len(events)-1].Token.End,
	}
	marker := &mark.Token{
		Type:  typeFootnoteCallMarker,
		Start: events[index+3].Token.End,
		End:   mark.MovePoint(events[index+3].Token.End, 1),
	}
	str := &mark.Token{
		Type:  typeFootnoteCallString,
		Start: marker.End,
		End:   events[len(events)-1].Token.Start,
	}
	chunk := &mark.Token{
		Type:        mark.TypeChunkString,
		ContentType: mark.ContentTypeString,
		Start:       str.Start,
		End:         str.End,
	}

	replacement := []mark.Event{
		// The `!`, now data.
		events[index+1],
		events[index+2],
		{Kind: mark.Enter, Token: call, Context: context},
		// The `[`.
		events[index+3],
		events[index+4],
		// The `^`.
		{Kind: mark.Enter, Token: marker, Context: context},
		{Kind: mark.Exit, Token: marker, Context: context},
		// Everything in between.
		{Kind: mark.Enter, Token: str, Context: context},
		{Kind: mark.Enter, Token: chunk, Context: context},
		{Kind: mark.Exit, Token: chunk, Context: context},
		{Kind: mark.Exit, Token: str, Context: context},
		// The `]`, parsed by the potential call itself.
		events[len(events)-2],
		events[len(events)-1],
		{Kind: mark.Exit, Token: call, Context: context},
	}

	return mark.SpliceEvents(events, index, len(events)-index, replacement)
}

func tokenizeFootnoteCall(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	defined := footnoteIdentifiers(tk.Parser())
	size := 0
	data := false

	var callStart, callData, callEscape mark.State

	callStart = func(code mark.Code) mark.State {
		if code != '^' {
			return nok(code)
		}
		tk.Enter(typeFootnoteCallMarker)
		tk.Consume(code)
		tk.Exit(typeFootnoteCallMarker)
		tk.Enter(typeFootnoteCallString)
		t := tk.Enter(mark.TypeChunkString)
		t.ContentType = mark.ContentTypeString
		return callData
	}

	callData = func(code mark.Code) mark.State {
		if size > footnoteLabelSizeMax ||
			(code == ']' && !data) ||
			code == mark.CodeEOF ||
			code == '[' ||
			mark.MarkdownLineEndingOrSpace(code) {
			return nok(code)
		}

		if code == ']' {
			tk.Exit(mark.TypeChunkString)
			token := tk.Exit(typeFootnoteCallString)

			if !contains(defined, mark.NormalizeIdentifier(tk.SliceSerialize(token, false))) {
				return nok(code)
			}

			tk.Enter(typeFootnoteCallLabelMarker)
			tk.Consume(code)
			tk.Exit(typeFootnoteCallLabelMarker)
			tk.Exit(typeFootnoteCall)
			return ok
		}

		data = true
		size++
		tk.Consume(code)
		if code == '\\' {
			return callEscape
		}
		return callData
	}

	callEscape = func(code mark.Code) mark.State {
		if code == '\\' || code == '[' || code == ']' {
			size++
			tk.Consume(code)
			return callData
		}
		return callData(code)
	}

	return func(code mark.Code) mark.State {
		tk.Enter(typeFootnoteCall)
		tk.Enter(typeFootnoteCallLabelMarker)
		tk.Consume(code)
		tk.Exit(typeFootnoteCallLabelMarker)
		return callStart
	}
}

func tokenizeFootnoteDefinitionStart(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	var identifier string
	size := 0
	data := false

	var labelAtMarker, labelInside, labelEscape, labelAfter mark.State

	labelAtMarker = func(code mark.Code) mark.State {
		if code != '^' {
			return nok(code)
		}
		tk.Enter(typeFootnoteDefinitionMarker)
		tk.Consume(code)
		tk.Exit(typeFootnoteDefinitionMarker)
		tk.Enter(typeFootnoteDefinitionLabelString)
		t := tk.Enter(mark.TypeChunkString)
		t.ContentType = mark.ContentTypeString
		return labelInside
	}

	labelInside = func(code mark.Code) mark.State {
		if size > footnoteLabelSizeMax ||
			(code == ']' && !data) ||
			code == mark.CodeEOF ||
			code == '[' ||
			mark.MarkdownLineEndingOrSpace(code) {
			return nok(code)
		}

		if code == ']' {
			tk.Exit(mark.TypeChunkString)
			token := tk.Exit(typeFootnoteDefinitionLabelString)
			identifier = mark.NormalizeIdentifier(tk.SliceSerialize(token, false))
			tk.Enter(typeFootnoteDefinitionLabelMarker)
			tk.Consume(code)
			tk.Exit(typeFootnoteDefinitionLabelMarker)
			tk.Exit(typeFootnoteDefinitionLabel)
			return labelAfter
		}

		data = true
		size++
		tk.Consume(code)
		if code == '\\' {
			return labelEscape
		}
		return labelInside
	}

	labelEscape = func(code mark.Code) mark.State {
		if code == '\\' || code == '[' || code == ']' {
			size++
			tk.Consume(code)
			return labelInside
		}
		return labelInside(code)
	}

	labelAfter = func(code mark.Code) mark.State {
		if code != ':' {
			return nok(code)
		}
		tk.Enter(mark.TypeDefinitionMarker)
		tk.Consume(code)
		tk.Exit(mark.TypeDefinitionMarker)

		defined := footnoteIdentifiers(tk.Parser())
		if !contains(defined, identifier) {
			tk.Parser().Extra["gfmFootnotes"] = append(defined, identifier)
		}

		// Eat whitespace so indented code after the marker is impossible.
		return mark.FactorySpace(tk, ok, typeFootnoteDefinitionWhitespace, 0)
	}

	return func(code mark.Code) mark.State {
		tk.Enter(typeFootnoteDefinition).Container = true
		tk.Enter(typeFootnoteDefinitionLabel)
		tk.Enter(typeFootnoteDefinitionLabelMarker)
		tk.Consume(code)
		tk.Exit(typeFootnoteDefinitionLabelMarker)
		return labelAtMarker
	}
}

// Later lines of a definition are blank or indented by a full tab size.
func tokenizeFootnoteDefinitionContinuation(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	return tk.Check(mark.BlankLine, ok, tk.Attempt(footnoteIndent, ok, nok))
}

func footnoteDefinitionEnd(tk *mark.Tokenizer) {
	tk.Exit(typeFootnoteDefinition)
}

var footnoteIndent = &mark.Construct{Tokenize: tokenizeFootnoteIndent, Partial: true}

func tokenizeFootnoteIndent(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	afterPrefix := func(code mark.Code) mark.State {
		events := tk.Events()
		if len(events) > 0 {
			tail := events[len(events)-1].Token
			if tail.Type == typeFootnoteDefinitionIndent &&
				tail.End.Column-tail.Start.Column == tabSize {
				return ok(code)
			}
		}
		return nok(code)
	}

	return mark.FactorySpace(tk, afterPrefix, typeFootnoteDefinitionIndent, tabSize+1)
}

// FootnoteHTMLOptions configure the generated footnote section. Zero values
// pick the GitHub defaults.
type FootnoteHTMLOptions struct {
	// ClobberPrefix is prepended to ids to avoid DOM clobbering; GitHub uses
	// "user-content-".
	ClobberPrefix string

	// Label is the text of the section heading.
	Label string

	// LabelTagName is the element name of the section heading.
	LabelTagName string

	// LabelAttributes is the attribute text on the section heading; the
	// default hides the heading visually.
	LabelAttributes string

	// BackLabel builds the aria label of a backreference, given the footnote
	// number and how often it was called.
	BackLabel func(referenceIndex, rereferenceIndex int) string
}

var trailingParagraphClose = regexp.MustCompile(`</p>(?:\r?\n|\r)?$`)

// FootnoteHTML renders footnote calls as numbered superscript links, and all
// called definitions in a section at the end of the document.
func FootnoteHTML(options FootnoteHTMLOptions) mark.HTMLExtension {
	clobberPrefix := options.ClobberPrefix
	if clobberPrefix == "" {
		clobberPrefix = "user-content-"
	}
	label := options.Label
	if label == "" {
		label = "Footnotes"
	}
	labelTagName := options.LabelTagName
	if labelTagName == "" {
		labelTagName = "h2"
	}
	labelAttributes := options.LabelAttributes
	if labelAttributes == "" {
		labelAttributes = `class="sr-only"`
	}
	backLabel := options.BackLabel
	if backLabel == nil {
		backLabel = func(referenceIndex, rereferenceIndex int) string {
			value := "Back to reference " + strconv.Itoa(referenceIndex+1)
			if rereferenceIndex > 1 {
				value += "-" + strconv.Itoa(rereferenceIndex)
			}
			return value
		}
	}

	return mark.HTMLExtension{
		Enter: map[string]mark.Handler{
			typeFootnoteDefinition: func(c *mark.Compiler, _ *mark.Token) {
				c.PushTight(false)
			},
			typeFootnoteDefinitionLabelString: func(c *mark.Compiler, _ *mark.Token) {
				c.Buffer()
			},
			typeFootnoteCallString: func(c *mark.Compiler, _ *mark.Token) {
				c.Buffer()
			},
		},
		Exit: map[string]mark.Handler{
			typeFootnoteCallString: func(c *mark.Compiler, token *mark.Token) {
				c.Resume()
				calls, _ := c.GetExtra("gfmFootnoteCallOrder").([]string)
				counts, _ := c.GetExtra("gfmFootnoteCallCounts").(map[string]int)
				if counts == nil {
					counts = map[string]int{}
				}

				id := mark.NormalizeIdentifier(c.SliceSerialize(token))
				safeID := mark.SanitizeURI(strings.ToLower(id), nil)
				counter := 0

				if index := indexOf(calls, id); index == -1 {
					calls = append(calls, id)
					counts[id] = 1
					counter = len(calls)
				} else {
					counts[id]++
					counter = index + 1
				}
				c.SetExtra("gfmFootnoteCallOrder", calls)
				c.SetExtra("gfmFootnoteCallCounts", counts)

				reuse := ""
				if counts[id] > 1 {
					reuse = "-" + strconv.Itoa(counts[id])
				}

				c.Tag(`<sup><a href="#` + clobberPrefix + "fn-" + safeID +
					`" id="` + clobberPrefix + "fnref-" + safeID + reuse +
					`" data-footnote-ref="" aria-describedby="footnote-label">` +
					strconv.Itoa(counter) + "</a></sup>")
			},
			typeFootnoteDefinitionLabelString: func(c *mark.Compiler, token *mark.Token) {
				stack, _ := c.GetExtra("gfmFootnoteDefinitionStack").([]string)
				stack = append(stack, mark.NormalizeIdentifier(c.SliceSerialize(token)))
				c.SetExtra("gfmFootnoteDefinitionStack", stack)
				// Drop the label, capture the content.
				c.Resume()
				c.Buffer()
			},
			typeFootnoteDefinition: func(c *mark.Compiler, _ *mark.Token) {
				stack := c.GetExtra("gfmFootnoteDefinitionStack").([]string)
				current := stack[len(stack)-1]
				c.SetExtra("gfmFootnoteDefinitionStack", stack[:len(stack)-1])

				value := c.Resume()
				definitions, _ := c.GetExtra("gfmFootnoteDefinitions").(map[string]string)
				if definitions == nil {
					definitions = map[string]string{}
				}
				if _, has := definitions[current]; !has {
					definitions[current] = value
				}
				c.SetExtra("gfmFootnoteDefinitions", definitions)

				c.PopTight()
				c.SetSlurpOneLineEnding(true)
				// A definition as the only content of a list item must not
				// glue `</li>` to the marker.
				c.Raw("")
			},
		},
		DocumentEnd: func(c *mark.Compiler) {
			calls, _ := c.GetExtra("gfmFootnoteCallOrder").([]string)
			counts, _ := c.GetExtra("gfmFootnoteCallCounts").(map[string]int)
			definitions, _ := c.GetExtra("gfmFootnoteDefinitions").(map[string]string)

			if len(calls) == 0 {
				return
			}

			c.LineEndingIfNeeded()
			c.Tag(`<section data-footnotes="" class="footnotes"><` +
				labelTagName + ` id="footnote-label" ` + labelAttributes + ">")
			c.Raw(c.Encode(label))
			c.Tag("</" + labelTagName + ">")
			c.LineEndingIfNeeded()
			c.Tag("<ol>")

			for index, id := range calls {
				safeID := mark.SanitizeURI(strings.ToLower(id), nil)
				references := make([]string, 0, counts[id])

				for referenceIndex := 1; referenceIndex <= counts[id]; referenceIndex++ {
					reuse := ""
					sup := ""
					if referenceIndex > 1 {
						reuse = "-" + strconv.Itoa(referenceIndex)
						sup = "<sup>" + strconv.Itoa(referenceIndex) + "</sup>"
					}
					references = append(references,
						`<a href="#`+clobberPrefix+"fnref-"+safeID+reuse+
							`" data-footnote-backref="" aria-label="`+
							c.Encode(backLabel(index, referenceIndex))+
							`" class="data-footnote-backref">↩`+sup+"</a>")
				}

				reference := strings.Join(references, " ")
				injected := false

				c.LineEndingIfNeeded()
				c.Tag(`<li id="` + clobberPrefix + "fn-" + safeID + `">`)
				c.LineEndingIfNeeded()

				value := definitions[id]
				if trailingParagraphClose.MatchString(value) {
					value = trailingParagraphClose.ReplaceAllString(value, " "+reference+"</p>")
					injected = true
				}
				c.Raw(value)

				if !injected {
					c.LineEndingIfNeeded()
					c.Raw(reference)
				}

				c.LineEndingIfNeeded()
				c.Tag("</li>")
			}

			c.LineEndingIfNeeded()
			c.Tag("</ol>")
			c.LineEndingIfNeeded()
			c.Tag("</section>")
		},
	}
}

func indexOf(list []string, value string) int {
	for index, item := range list {
		if item == value {
			return index
		}
	}
	return -1
}
