package mark

// BlankLine is a partial used wherever a construct needs to know whether the
// rest of the line is only whitespace.
var BlankLine = &Construct{Tokenize: tokenizeBlankLine, Partial: true}

func tokenizeBlankLine(tk *Tokenizer, ok, nok State) State {
	after := func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return ok(code)
		}
		return nok(code)
	}

	return func(code Code) State {
		if markdownSpace(code) {
			return factorySpace(tk, after, TypeLinePrefix, 0)(code)
		}
		return after(code)
	}
}
