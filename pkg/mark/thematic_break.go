package mark

var thematicBreak = &Construct{Name: "thematicBreak", Tokenize: tokenizeThematicBreak}

func tokenizeThematicBreak(tk *Tokenizer, ok, nok State) State {
	size := 0
	var marker Code

	var atBreak, sequence State

	atBreak = func(code Code) State {
		if code == marker {
			tk.Enter(TypeThematicBreakSequence)
			return sequence(code)
		}
		if size >= thematicBreakMarkerCountMin && (code == CodeEOF || markdownLineEnding(code)) {
			tk.Exit(TypeThematicBreak)
			return ok(code)
		}
		return nok(code)
	}

	sequence = func(code Code) State {
		if code == marker {
			tk.Consume(code)
			size++
			return sequence
		}
		tk.Exit(TypeThematicBreakSequence)
		if markdownSpace(code) {
			return factorySpace(tk, atBreak, TypeWhitespace, 0)(code)
		}
		return atBreak(code)
	}

	return func(code Code) State {
		tk.Enter(TypeThematicBreak)
		marker = code
		return atBreak(code)
	}
}
