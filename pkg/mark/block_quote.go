package mark

// blockQuote is filled in by init: its continuation refers back to it to
// match the markers of deeper quotes.
var blockQuote = &Construct{}

func init() {
	*blockQuote = Construct{
		Name:         "blockQuote",
		Tokenize:     tokenizeBlockQuoteStart,
		Continuation: &Construct{Tokenize: tokenizeBlockQuoteContinuation},
		Exit:         exitBlockQuote,
	}
}

func tokenizeBlockQuoteStart(tk *Tokenizer, ok, nok State) State {
	after := func(code Code) State {
		if markdownSpace(code) {
			tk.Enter(TypeBlockQuotePrefixWhitespace)
			tk.Consume(code)
			tk.Exit(TypeBlockQuotePrefixWhitespace)
			tk.Exit(TypeBlockQuotePrefix)
			return ok
		}
		tk.Exit(TypeBlockQuotePrefix)
		return ok(code)
	}

	return func(code Code) State {
		if code == '>' {
			state := tk.ContainerState
			if !state.Open {
				tk.Enter(TypeBlockQuote).Container = true
				state.Open = true
			}
			tk.Enter(TypeBlockQuotePrefix)
			tk.Enter(TypeBlockQuoteMarker)
			tk.Consume(code)
			tk.Exit(TypeBlockQuoteMarker)
			return after
		}
		return nok(code)
	}
}

func tokenizeBlockQuoteContinuation(tk *Tokenizer, ok, nok State) State {
	contBefore := func(code Code) State {
		return tk.Attempt(blockQuote, ok, nok)(code)
	}

	return func(code Code) State {
		if markdownSpace(code) {
			max := tabSize
			if contains(tk.parser.Constructs.Disable, "codeIndented") {
				max = 0
			}
			return factorySpace(tk, contBefore, TypeLinePrefix, max)(code)
		}
		return contBefore(code)
	}
}

func exitBlockQuote(tk *Tokenizer) {
	tk.Exit(TypeBlockQuote)
}
