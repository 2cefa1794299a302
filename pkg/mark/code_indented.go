package mark

var codeIndented = &Construct{Name: "codeIndented", Tokenize: tokenizeCodeIndented}

var codeIndentedFurtherStart = &Construct{Tokenize: tokenizeCodeIndentedFurtherStart, Partial: true}

func tokenizeCodeIndented(tk *Tokenizer, ok, nok State) State {
	var afterPrefix, atBreak, inside, after State

	afterPrefix = func(code Code) State {
		if tail := lastEvent(tk); tail != nil &&
			tail.Token.Type == TypeLinePrefix &&
			len(tail.Context.SliceSerialize(tail.Token, true)) >= tabSize {
			return atBreak(code)
		}
		return nok(code)
	}

	atBreak = func(code Code) State {
		if code == CodeEOF {
			return after(code)
		}
		if markdownLineEnding(code) {
			return tk.Attempt(codeIndentedFurtherStart, atBreak, after)(code)
		}
		tk.Enter(TypeCodeFlowValue)
		return inside(code)
	}

	inside = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeCodeFlowValue)
			return atBreak(code)
		}
		tk.Consume(code)
		return inside
	}

	after = func(code Code) State {
		tk.Exit(TypeCodeIndented)
		return ok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeCodeIndented)
		return factorySpace(tk, afterPrefix, TypeLinePrefix, tabSize+1)(code)
	}
}

func tokenizeCodeIndentedFurtherStart(tk *Tokenizer, ok, nok State) State {
	var furtherStart, afterPrefix State

	furtherStart = func(code Code) State {
		if tk.parser.Lazy[tk.Now().Line] {
			return nok(code)
		}
		if markdownLineEnding(code) {
			tk.Enter(TypeLineEnding)
			tk.Consume(code)
			tk.Exit(TypeLineEnding)
			return furtherStart
		}
		return factorySpace(tk, afterPrefix, TypeLinePrefix, tabSize+1)(code)
	}

	afterPrefix = func(code Code) State {
		if tail := lastEvent(tk); tail != nil &&
			tail.Token.Type == TypeLinePrefix &&
			len(tail.Context.SliceSerialize(tail.Token, true)) >= tabSize {
			return ok(code)
		}
		if markdownLineEnding(code) {
			return furtherStart(code)
		}
		return nok(code)
	}

	return furtherStart
}

// lastEvent returns the most recent event, if any.
func lastEvent(tk *Tokenizer) *Event {
	if len(tk.events) == 0 {
		return nil
	}
	return &tk.events[len(tk.events)-1]
}
