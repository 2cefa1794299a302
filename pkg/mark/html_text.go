package mark

var htmlText = &Construct{Name: "htmlText", Tokenize: tokenizeHTMLText}

func tokenizeHTMLText(tk *Tokenizer, ok, nok State) State {
	var marker Code
	var index int
	var returnState State

	var open, declarationOpen, commentOpenInside, comment, commentClose, commentEnd State
	var cdataOpenInside, cdata, cdataClose, cdataEnd, declaration State
	var instruction, instructionClose, tagCloseStart, tagClose, tagCloseBetween State
	var tagOpen, tagOpenBetween, tagOpenAttributeName, tagOpenAttributeNameAfter State
	var tagOpenAttributeValueBefore, tagOpenAttributeValueQuoted, tagOpenAttributeValueUnquoted, tagOpenAttributeValueQuotedAfter State
	var end, lineEndingBefore, lineEndingAfter, lineEndingAfterPrefix State

	open = func(code Code) State {
		switch {
		case code == '!':
			tk.Consume(code)
			return declarationOpen
		case code == '/':
			tk.Consume(code)
			return tagCloseStart
		case code == '?':
			tk.Consume(code)
			return instruction
		case asciiAlpha(code):
			tk.Consume(code)
			return tagOpen
		}
		return nok(code)
	}

	declarationOpen = func(code Code) State {
		switch {
		case code == '-':
			tk.Consume(code)
			return commentOpenInside
		case code == '[':
			tk.Consume(code)
			index = 0
			return cdataOpenInside
		case asciiAlpha(code):
			tk.Consume(code)
			return declaration
		}
		return nok(code)
	}

	commentOpenInside = func(code Code) State {
		if code == '-' {
			tk.Consume(code)
			return commentEnd
		}
		return nok(code)
	}

	comment = func(code Code) State {
		if code == CodeEOF {
			return nok(code)
		}
		if code == '-' {
			tk.Consume(code)
			return commentClose
		}
		if markdownLineEnding(code) {
			returnState = comment
			return lineEndingBefore(code)
		}
		tk.Consume(code)
		return comment
	}

	commentClose = func(code Code) State {
		if code == '-' {
			tk.Consume(code)
			return commentEnd
		}
		return comment(code)
	}

	commentEnd = func(code Code) State {
		if code == '>' {
			return end(code)
		}
		if code == '-' {
			return commentClose(code)
		}
		return comment(code)
	}

	cdataOpenInside = func(code Code) State {
		const value = "CDATA["
		if code == Code(value[index]) {
			index++
			tk.Consume(code)
			if index == len(value) {
				return cdata
			}
			return cdataOpenInside
		}
		return nok(code)
	}

	cdata = func(code Code) State {
		if code == CodeEOF {
			return nok(code)
		}
		if code == ']' {
			tk.Consume(code)
			return cdataClose
		}
		if markdownLineEnding(code) {
			returnState = cdata
			return lineEndingBefore(code)
		}
		tk.Consume(code)
		return cdata
	}

	cdataClose = func(code Code) State {
		if code == ']' {
			tk.Consume(code)
			return cdataEnd
		}
		return cdata(code)
	}

	cdataEnd = func(code Code) State {
		if code == '>' {
			return end(code)
		}
		if code == ']' {
			tk.Consume(code)
			return cdataEnd
		}
		return cdata(code)
	}

	declaration = func(code Code) State {
		if code == CodeEOF || code == '>' {
			return end(code)
		}
		if markdownLineEnding(code) {
			returnState = declaration
			return lineEndingBefore(code)
		}
		tk.Consume(code)
		return declaration
	}

	instruction = func(code Code) State {
		if code == CodeEOF {
			return nok(code)
		}
		if code == '?' {
			tk.Consume(code)
			return instructionClose
		}
		if markdownLineEnding(code) {
			returnState = instruction
			return lineEndingBefore(code)
		}
		tk.Consume(code)
		return instruction
	}

	instructionClose = func(code Code) State {
		if code == '>' {
			return end(code)
		}
		return instruction(code)
	}

	tagCloseStart = func(code Code) State {
		if asciiAlpha(code) {
			tk.Consume(code)
			return tagClose
		}
		return nok(code)
	}

	tagClose = func(code Code) State {
		if code == '-' || asciiAlphanumeric(code) {
			tk.Consume(code)
			return tagClose
		}
		return tagCloseBetween(code)
	}

	tagCloseBetween = func(code Code) State {
		if markdownLineEnding(code) {
			returnState = tagCloseBetween
			return lineEndingBefore(code)
		}
		if markdownSpace(code) {
			tk.Consume(code)
			return tagCloseBetween
		}
		return end(code)
	}

	tagOpen = func(code Code) State {
		if code == '-' || asciiAlphanumeric(code) {
			tk.Consume(code)
			return tagOpen
		}
		if code == '/' || code == '>' || markdownLineEndingOrSpace(code) {
			return tagOpenBetween(code)
		}
		return nok(code)
	}

	tagOpenBetween = func(code Code) State {
		if code == '/' {
			tk.Consume(code)
			return end
		}
		if code == ':' || code == '_' || asciiAlpha(code) {
			tk.Consume(code)
			return tagOpenAttributeName
		}
		if markdownLineEnding(code) {
			returnState = tagOpenBetween
			return lineEndingBefore(code)
		}
		if markdownSpace(code) {
			tk.Consume(code)
			return tagOpenBetween
		}
		return end(code)
	}

	tagOpenAttributeName = func(code Code) State {
		if code == '-' || code == '.' || code == ':' || code == '_' || asciiAlphanumeric(code) {
			tk.Consume(code)
			return tagOpenAttributeName
		}
		return tagOpenAttributeNameAfter(code)
	}

	tagOpenAttributeNameAfter = func(code Code) State {
		if code == '=' {
			tk.Consume(code)
			return tagOpenAttributeValueBefore
		}
		if markdownLineEnding(code) {
			returnState = tagOpenAttributeNameAfter
			return lineEndingBefore(code)
		}
		if markdownSpace(code) {
			tk.Consume(code)
			return tagOpenAttributeNameAfter
		}
		return tagOpenBetween(code)
	}

	tagOpenAttributeValueBefore = func(code Code) State {
		if code == CodeEOF || code == '<' || code == '=' || code == '>' || code == '`' {
			return nok(code)
		}
		if code == '"' || code == '\'' {
			tk.Consume(code)
			marker = code
			return tagOpenAttributeValueQuoted
		}
		if markdownLineEnding(code) {
			returnState = tagOpenAttributeValueBefore
			return lineEndingBefore(code)
		}
		if markdownSpace(code) {
			tk.Consume(code)
			return tagOpenAttributeValueBefore
		}
		tk.Consume(code)
		return tagOpenAttributeValueUnquoted
	}

	tagOpenAttributeValueQuoted = func(code Code) State {
		if code == marker {
			tk.Consume(code)
			marker = 0
			return tagOpenAttributeValueQuotedAfter
		}
		if code == CodeEOF {
			return nok(code)
		}
		if markdownLineEnding(code) {
			returnState = tagOpenAttributeValueQuoted
			return lineEndingBefore(code)
		}
		tk.Consume(code)
		return tagOpenAttributeValueQuoted
	}

	tagOpenAttributeValueUnquoted = func(code Code) State {
		if code == CodeEOF || code == '"' || code == '\'' || code == '<' || code == '=' || code == '`' {
			return nok(code)
		}
		if code == '/' || code == '>' || markdownLineEndingOrSpace(code) {
			return tagOpenBetween(code)
		}
		tk.Consume(code)
		return tagOpenAttributeValueUnquoted
	}

	tagOpenAttributeValueQuotedAfter = func(code Code) State {
		if code == '/' || code == '>' || markdownLineEndingOrSpace(code) {
			return tagOpenBetween(code)
		}
		return nok(code)
	}

	end = func(code Code) State {
		if code == '>' {
			tk.Consume(code)
			tk.Exit(TypeHTMLTextData)
			tk.Exit(TypeHTMLText)
			return ok
		}
		return nok(code)
	}

	lineEndingBefore = func(code Code) State {
		tk.Exit(TypeHTMLTextData)
		tk.Enter(TypeLineEnding)
		tk.Consume(code)
		tk.Exit(TypeLineEnding)
		return lineEndingAfter
	}

	lineEndingAfter = func(code Code) State {
		if markdownSpace(code) {
			max := tabSize
			if contains(tk.parser.Constructs.Disable, "codeIndented") {
				max = 0
			}
			return factorySpace(tk, lineEndingAfterPrefix, TypeLinePrefix, max)(code)
		}
		return lineEndingAfterPrefix(code)
	}

	lineEndingAfterPrefix = func(code Code) State {
		tk.Enter(TypeHTMLTextData)
		return returnState(code)
	}

	return func(code Code) State {
		tk.Enter(TypeHTMLText)
		tk.Enter(TypeHTMLTextData)
		tk.Consume(code)
		return open
	}
}
