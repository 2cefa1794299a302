package mark

const linkReferenceSizeMax = 999

// factoryLabel parses a label (`[...]`): used for definitions and reference
// links. A label must contain at least one non-whitespace character and at
// most 999 codes.
func factoryLabel(tk *Tokenizer, ok, nok State, typ, markerType, stringType string) State {
	size := 0
	seen := false

	var atBreak, labelInside, labelEscape State

	atBreak = func(code Code) State {
		if size > linkReferenceSizeMax ||
			code == CodeEOF || code == '[' ||
			(code == ']' && !seen) ||
			(code == '^' && size == 0 && tk.parser.Constructs.HiddenFootnoteSupport) {
			return nok(code)
		}
		if code == ']' {
			tk.Exit(stringType)
			tk.Enter(markerType)
			tk.Consume(code)
			tk.Exit(markerType)
			tk.Exit(typ)
			return ok
		}
		if markdownLineEnding(code) {
			tk.Enter(TypeLineEnding)
			tk.Consume(code)
			tk.Exit(TypeLineEnding)
			return atBreak
		}
		tk.enterChunk(TypeChunkString, ContentTypeString)
		return labelInside(code)
	}

	labelInside = func(code Code) State {
		if code == CodeEOF || code == '[' || code == ']' || markdownLineEnding(code) || size > linkReferenceSizeMax {
			tk.Exit(TypeChunkString)
			return atBreak(code)
		}
		tk.Consume(code)
		size++
		if !seen {
			seen = !markdownSpace(code)
		}
		if code == '\\' {
			return labelEscape
		}
		return labelInside
	}

	labelEscape = func(code Code) State {
		switch code {
		case '[', ']', '\\':
			tk.Consume(code)
			size++
			return labelInside
		}
		return labelInside(code)
	}

	return func(code Code) State {
		tk.Enter(typ)
		tk.Enter(markerType)
		tk.Consume(code)
		tk.Exit(markerType)
		tk.Enter(stringType)
		return atBreak
	}
}
