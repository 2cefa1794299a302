package mark

import "strings"

var htmlFlow = &Construct{
	Name:      "htmlFlow",
	Tokenize:  tokenizeHTMLFlow,
	ResolveTo: resolveToHTMLFlow,
	Concrete:  true,
}

var htmlFlowBlankLineBefore = &Construct{Tokenize: tokenizeHTMLFlowBlankLineBefore, Partial: true}
var nonLazyContinuationStart = &Construct{Tokenize: tokenizeNonLazyContinuationStart, Partial: true}

// resolveToHTMLFlow folds a line prefix before the HTML into the HTML token,
// so the compiler outputs the original indent.
func resolveToHTMLFlow(events []Event, _ *Tokenizer) []Event {
	index := len(events)
	for index > 0 {
		index--
		if events[index].Kind == Enter && events[index].Token.Type == TypeHTMLFlow {
			break
		}
	}

	if index > 1 && events[index-2].Token.Type == TypeLinePrefix {
		events[index].Token.Start = events[index-2].Token.Start
		events[index+1].Token.Start = events[index-2].Token.Start
		events = append(events[:index-2], events[index:]...)
	}

	return events
}

func tokenizeHTMLFlow(tk *Tokenizer, ok, nok State) State {
	var kind int
	closingTag := false
	var buffer strings.Builder
	var index int
	var markerB Code

	var open, declarationOpen, commentOpenInside, cdataOpenInside, tagCloseStart, tagName State
	var basicSelfClosing, completeClosingTagAfter State
	var completeAttributeNameBefore, completeAttributeName, completeAttributeNameAfter State
	var completeAttributeValueBefore, completeAttributeValueQuoted, completeAttributeValueUnquoted, completeAttributeValueQuotedAfter State
	var completeEnd, completeAfter State
	var continuation, continuationStart, continuationStartNonLazy, continuationBefore State
	var continuationCommentInside, continuationRawTagOpen, continuationRawEndTag State
	var continuationCharacterDataInside, continuationDeclarationInside, continuationClose, continuationAfter State

	open = func(code Code) State {
		if code == '!' {
			tk.Consume(code)
			return declarationOpen
		}
		if code == '/' {
			tk.Consume(code)
			closingTag = true
			return tagCloseStart
		}
		if code == '?' {
			tk.Consume(code)
			kind = htmlInstruction
			// Processing instructions look for `?>`, like declarations look
			// for `>`; while interrupting, the construct succeeds now and
			// continuation takes over.
			if tk.Interrupt {
				return ok
			}
			return continuationDeclarationInside
		}
		if asciiAlpha(code) {
			tk.Consume(code)
			buffer.Reset()
			buffer.WriteRune(rune(code))
			return tagName
		}
		return nok(code)
	}

	declarationOpen = func(code Code) State {
		if code == '-' {
			tk.Consume(code)
			kind = htmlComment
			return commentOpenInside
		}
		if code == '[' {
			tk.Consume(code)
			kind = htmlCdata
			index = 0
			return cdataOpenInside
		}
		if asciiAlpha(code) {
			tk.Consume(code)
			kind = htmlDeclaration
			if tk.Interrupt {
				return ok
			}
			return continuationDeclarationInside
		}
		return nok(code)
	}

	commentOpenInside = func(code Code) State {
		if code == '-' {
			tk.Consume(code)
			if tk.Interrupt {
				return ok
			}
			return continuationDeclarationInside
		}
		return nok(code)
	}

	cdataOpenInside = func(code Code) State {
		const value = "CDATA["
		if code == Code(value[index]) {
			index++
			tk.Consume(code)
			if index == len(value) {
				if tk.Interrupt {
					return ok
				}
				return continuation
			}
			return cdataOpenInside
		}
		return nok(code)
	}

	tagCloseStart = func(code Code) State {
		if asciiAlpha(code) {
			tk.Consume(code)
			buffer.Reset()
			buffer.WriteRune(rune(code))
			return tagName
		}
		return nok(code)
	}

	tagName = func(code Code) State {
		if code == CodeEOF || code == '/' || code == '>' || markdownLineEndingOrSpace(code) {
			slash := code == '/'
			name := strings.ToLower(buffer.String())

			if !slash && !closingTag && contains(htmlRawNames, name) {
				kind = htmlRaw
				if tk.Interrupt {
					return ok(code)
				}
				return continuation(code)
			}

			if contains(htmlBlockNames, name) {
				kind = htmlBasic
				if slash {
					tk.Consume(code)
					return basicSelfClosing
				}
				if tk.Interrupt {
					return ok(code)
				}
				return continuation(code)
			}

			kind = htmlComplete
			// Complete tags cannot interrupt content.
			if tk.Interrupt && !tk.parser.Lazy[tk.Now().Line] {
				return nok(code)
			}
			if closingTag {
				return completeClosingTagAfter(code)
			}
			return completeAttributeNameBefore(code)
		}
		if code == '-' || asciiAlphanumeric(code) {
			tk.Consume(code)
			buffer.WriteRune(rune(code))
			return tagName
		}
		return nok(code)
	}

	basicSelfClosing = func(code Code) State {
		if code == '>' {
			tk.Consume(code)
			if tk.Interrupt {
				return ok
			}
			return continuation
		}
		return nok(code)
	}

	completeClosingTagAfter = func(code Code) State {
		if markdownSpace(code) {
			tk.Consume(code)
			return completeClosingTagAfter
		}
		return completeEnd(code)
	}

	completeAttributeNameBefore = func(code Code) State {
		if code == '/' {
			tk.Consume(code)
			return completeEnd
		}
		if code == ':' || code == '_' || asciiAlpha(code) {
			tk.Consume(code)
			return completeAttributeName
		}
		if markdownSpace(code) {
			tk.Consume(code)
			return completeAttributeNameBefore
		}
		return completeEnd(code)
	}

	completeAttributeName = func(code Code) State {
		if code == '-' || code == '.' || code == ':' || code == '_' || asciiAlphanumeric(code) {
			tk.Consume(code)
			return completeAttributeName
		}
		return completeAttributeNameAfter(code)
	}

	completeAttributeNameAfter = func(code Code) State {
		if code == '=' {
			tk.Consume(code)
			return completeAttributeValueBefore
		}
		if markdownSpace(code) {
			tk.Consume(code)
			return completeAttributeNameAfter
		}
		return completeAttributeNameBefore(code)
	}

	completeAttributeValueBefore = func(code Code) State {
		if code == CodeEOF || code == '<' || code == '=' || code == '>' || code == '`' {
			return nok(code)
		}
		if code == '"' || code == '\'' {
			tk.Consume(code)
			markerB = code
			return completeAttributeValueQuoted
		}
		if markdownSpace(code) {
			tk.Consume(code)
			return completeAttributeValueBefore
		}
		return completeAttributeValueUnquoted(code)
	}

	completeAttributeValueQuoted = func(code Code) State {
		if code == markerB {
			tk.Consume(code)
			markerB = 0
			return completeAttributeValueQuotedAfter
		}
		if code == CodeEOF || markdownLineEnding(code) {
			return nok(code)
		}
		tk.Consume(code)
		return completeAttributeValueQuoted
	}

	completeAttributeValueUnquoted = func(code Code) State {
		if code == CodeEOF || code == '"' || code == '\'' || code == '/' ||
			code == '<' || code == '=' || code == '>' || code == '`' ||
			markdownLineEndingOrSpace(code) {
			return completeAttributeNameAfter(code)
		}
		tk.Consume(code)
		return completeAttributeValueUnquoted
	}

	completeAttributeValueQuotedAfter = func(code Code) State {
		if code == '/' || code == '>' || markdownSpace(code) {
			return completeAttributeNameBefore(code)
		}
		return nok(code)
	}

	completeEnd = func(code Code) State {
		if code == '>' {
			tk.Consume(code)
			return completeAfter
		}
		return nok(code)
	}

	completeAfter = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return continuation(code)
		}
		if markdownSpace(code) {
			tk.Consume(code)
			return completeAfter
		}
		return nok(code)
	}

	continuation = func(code Code) State {
		if code == '-' && kind == htmlComment {
			tk.Consume(code)
			return continuationCommentInside
		}
		if code == '<' && kind == htmlRaw {
			tk.Consume(code)
			return continuationRawTagOpen
		}
		if code == '>' && kind == htmlDeclaration {
			tk.Consume(code)
			return continuationClose
		}
		if code == '?' && kind == htmlInstruction {
			tk.Consume(code)
			return continuationDeclarationInside
		}
		if code == ']' && kind == htmlCdata {
			tk.Consume(code)
			return continuationCharacterDataInside
		}
		if markdownLineEnding(code) && (kind == htmlBasic || kind == htmlComplete) {
			tk.Exit(TypeHTMLFlowData)
			return tk.Check(htmlFlowBlankLineBefore, continuationAfter, continuationStart)(code)
		}
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeHTMLFlowData)
			return continuationStart(code)
		}
		tk.Consume(code)
		return continuation
	}

	continuationStart = func(code Code) State {
		return tk.Check(nonLazyContinuationStart, continuationStartNonLazy, continuationAfter)(code)
	}

	continuationStartNonLazy = func(code Code) State {
		tk.Enter(TypeLineEnding)
		tk.Consume(code)
		tk.Exit(TypeLineEnding)
		return continuationBefore
	}

	continuationBefore = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return continuationStart(code)
		}
		tk.Enter(TypeHTMLFlowData)
		return continuation(code)
	}

	continuationCommentInside = func(code Code) State {
		if code == '-' {
			tk.Consume(code)
			return continuationDeclarationInside
		}
		return continuation(code)
	}

	continuationRawTagOpen = func(code Code) State {
		if code == '/' {
			tk.Consume(code)
			buffer.Reset()
			return continuationRawEndTag
		}
		return continuation(code)
	}

	continuationRawEndTag = func(code Code) State {
		if code == '>' {
			if contains(htmlRawNames, strings.ToLower(buffer.String())) {
				tk.Consume(code)
				return continuationClose
			}
			return continuation(code)
		}
		if asciiAlpha(code) && buffer.Len() < htmlRawSizeMax {
			tk.Consume(code)
			buffer.WriteRune(rune(code))
			return continuationRawEndTag
		}
		return continuation(code)
	}

	continuationCharacterDataInside = func(code Code) State {
		if code == ']' {
			tk.Consume(code)
			return continuationDeclarationInside
		}
		return continuation(code)
	}

	continuationDeclarationInside = func(code Code) State {
		if code == '>' {
			tk.Consume(code)
			return continuationClose
		}
		if code == '-' && kind == htmlComment {
			tk.Consume(code)
			return continuationDeclarationInside
		}
		return continuation(code)
	}

	continuationClose = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeHTMLFlowData)
			return continuationAfter(code)
		}
		tk.Consume(code)
		return continuationClose
	}

	continuationAfter = func(code Code) State {
		tk.Exit(TypeHTMLFlow)
		return ok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeHTMLFlow)
		tk.Enter(TypeHTMLFlowData)
		tk.Consume(code)
		return open
	}
}

func tokenizeNonLazyContinuationStart(tk *Tokenizer, ok, nok State) State {
	after := func(code Code) State {
		if tk.parser.Lazy[tk.Now().Line] {
			return nok(code)
		}
		return ok(code)
	}

	return func(code Code) State {
		if markdownLineEnding(code) {
			tk.Enter(TypeLineEnding)
			tk.Consume(code)
			tk.Exit(TypeLineEnding)
			return after
		}
		return nok(code)
	}
}

func tokenizeHTMLFlowBlankLineBefore(tk *Tokenizer, ok, nok State) State {
	return func(code Code) State {
		tk.Enter(TypeLineEnding)
		tk.Consume(code)
		tk.Exit(TypeLineEnding)
		return tk.Attempt(BlankLine, ok, nok)
	}
}
