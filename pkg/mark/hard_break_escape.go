package mark

var hardBreakEscape = &Construct{Name: "hardBreakEscape", Tokenize: tokenizeHardBreakEscape}

func tokenizeHardBreakEscape(tk *Tokenizer, ok, nok State) State {
	after := func(code Code) State {
		if markdownLineEnding(code) {
			tk.Exit(TypeHardBreakEscape)
			return ok(code)
		}
		return nok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeHardBreakEscape)
		tk.Consume(code)
		return after
	}
}
