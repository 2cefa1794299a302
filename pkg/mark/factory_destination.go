package mark

// factoryDestination parses a link/definition destination, either enclosed
// (`<...>`) or raw with balanced parentheses up to max nesting.
func factoryDestination(tk *Tokenizer, ok, nok State, typ, literalType, literalMarkerType, rawType, stringType string, max int) State {
	limit := max
	if limit == 0 {
		limit = int(^uint(0) >> 1)
	}
	balance := 0

	var enclosedBefore, enclosed, enclosedEscape, raw, rawEscape State

	enclosedBefore = func(code Code) State {
		if code == '>' {
			tk.Enter(literalMarkerType)
			tk.Consume(code)
			tk.Exit(literalMarkerType)
			tk.Exit(literalType)
			tk.Exit(typ)
			return ok
		}
		tk.Enter(stringType)
		tk.enterChunk(TypeChunkString, ContentTypeString)
		return enclosed(code)
	}

	enclosed = func(code Code) State {
		if code == '>' {
			tk.Exit(TypeChunkString)
			tk.Exit(stringType)
			return enclosedBefore(code)
		}
		if code == CodeEOF || code == '<' || markdownLineEnding(code) {
			return nok(code)
		}
		tk.Consume(code)
		if code == '\\' {
			return enclosedEscape
		}
		return enclosed
	}

	enclosedEscape = func(code Code) State {
		switch code {
		case '<', '>', '\\':
			tk.Consume(code)
			return enclosed
		}
		return enclosed(code)
	}

	raw = func(code Code) State {
		if balance == 0 && (code == CodeEOF || code == ')' || markdownLineEndingOrSpace(code)) {
			tk.Exit(TypeChunkString)
			tk.Exit(stringType)
			tk.Exit(rawType)
			tk.Exit(typ)
			return ok(code)
		}
		if balance < limit && code == '(' {
			tk.Consume(code)
			balance++
			return raw
		}
		if code == ')' {
			tk.Consume(code)
			balance--
			return raw
		}
		if code == CodeEOF || code == ' ' || code == '(' || markdownLineEnding(code) || asciiControl(code) {
			return nok(code)
		}
		tk.Consume(code)
		if code == '\\' {
			return rawEscape
		}
		return raw
	}

	rawEscape = func(code Code) State {
		switch code {
		case '(', ')', '\\':
			tk.Consume(code)
			return raw
		}
		return raw(code)
	}

	return func(code Code) State {
		if code == '<' {
			tk.Enter(typ)
			tk.Enter(literalType)
			tk.Enter(literalMarkerType)
			tk.Consume(code)
			tk.Exit(literalMarkerType)
			return enclosedBefore
		}
		if code == CodeEOF || code == ')' || markdownLineEnding(code) || asciiControl(code) || code == ' ' {
			return nok(code)
		}
		tk.Enter(typ)
		tk.Enter(rawType)
		tk.Enter(stringType)
		tk.enterChunk(TypeChunkString, ContentTypeString)
		return raw(code)
	}
}
