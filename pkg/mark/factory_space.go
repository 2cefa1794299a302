package mark

// factorySpace consumes an optional run of markdown spaces into a token of
// the given type, then hands off to ok. With max set, at most max-1 further
// codes are consumed after the first, which keeps indented-code detection at
// the caller.
func factorySpace(tk *Tokenizer, ok State, typ string, max int) State {
	limit := max - 1
	if max == 0 {
		limit = int(^uint(0) >> 1)
	}
	size := 0

	var prefix State
	prefix = func(code Code) State {
		if markdownSpace(code) && size < limit {
			size++
			tk.Consume(code)
			return prefix
		}
		tk.Exit(typ)
		return ok(code)
	}

	return func(code Code) State {
		if markdownSpace(code) {
			tk.Enter(typ)
			size++
			tk.Consume(code)
			return prefix
		}
		return ok(code)
	}
}

// FactorySpace is the exported form of factorySpace, for extension
// constructs.
func FactorySpace(tk *Tokenizer, ok State, typ string, max int) State {
	return factorySpace(tk, ok, typ, max)
}

// factoryWhitespace consumes any mix of spaces and line endings: spaces
// become whitespace tokens, line endings their own tokens.
func factoryWhitespace(tk *Tokenizer, ok State) State {
	seen := false

	var start State
	start = func(code Code) State {
		if markdownLineEnding(code) {
			tk.Enter(TypeLineEnding)
			tk.Consume(code)
			tk.Exit(TypeLineEnding)
			seen = true
			return start
		}
		if markdownSpace(code) {
			typ := TypeLineSuffix
			if seen {
				typ = TypeLinePrefix
			}
			return factorySpace(tk, start, typ, 0)(code)
		}
		return ok(code)
	}
	return start
}
