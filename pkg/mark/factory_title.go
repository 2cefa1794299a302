package mark

// factoryTitle parses a title (`"..."`, `'...'`, or `(...)`), which may span
// multiple lines.
func factoryTitle(tk *Tokenizer, ok, nok State, typ, markerType, stringType string) State {
	var marker Code

	var begin, atBreak, inside, escape State

	begin = func(code Code) State {
		if code == marker {
			tk.Enter(markerType)
			tk.Consume(code)
			tk.Exit(markerType)
			tk.Exit(typ)
			return ok
		}
		tk.Enter(stringType)
		return atBreak(code)
	}

	atBreak = func(code Code) State {
		if code == marker {
			tk.Exit(stringType)
			return begin(marker)
		}
		if code == CodeEOF {
			return nok(code)
		}
		if markdownLineEnding(code) {
			tk.Enter(TypeLineEnding)
			tk.Consume(code)
			tk.Exit(TypeLineEnding)
			return factorySpace(tk, atBreak, TypeLinePrefix, 0)
		}
		tk.enterChunk(TypeChunkString, ContentTypeString)
		return inside(code)
	}

	inside = func(code Code) State {
		if code == marker || code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeChunkString)
			return atBreak(code)
		}
		tk.Consume(code)
		if code == '\\' {
			return escape
		}
		return inside
	}

	escape = func(code Code) State {
		if code == marker || code == '\\' {
			tk.Consume(code)
			return inside
		}
		return inside(code)
	}

	return func(code Code) State {
		switch code {
		case '"', '\'', '(':
			tk.Enter(typ)
			tk.Enter(markerType)
			tk.Consume(code)
			tk.Exit(markerType)
			if code == '(' {
				marker = ')'
			} else {
				marker = code
			}
			return begin
		}
		return nok(code)
	}
}
