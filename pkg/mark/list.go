package mark

// list is filled in by init: its continuation refers back to it to match
// further items.
var list = &Construct{}

func init() {
	*list = Construct{
		Name:         "list",
		Tokenize:     tokenizeListStart,
		Continuation: &Construct{Tokenize: tokenizeListContinuation},
		Exit:         tokenizeListEnd,
	}
}

var listItemPrefixWhitespace = &Construct{Tokenize: tokenizeListItemPrefixWhitespace, Partial: true}

var listItemIndent = &Construct{Tokenize: tokenizeListItemIndent, Partial: true}

func tokenizeListStart(tk *Tokenizer, ok, nok State) State {
	initialSize := 0
	if tail := lastEvent(tk); tail != nil && tail.Token.Type == TypeLinePrefix {
		initialSize = len(tail.Context.SliceSerialize(tail.Token, true))
	}
	size := 0

	var inside, atMarker, onBlank, otherPrefix, endOfPrefix State

	inside = func(code Code) State {
		if asciiDigit(code) && size+1 < listItemValueSizeMax {
			size++
			tk.Consume(code)
			return inside
		}
		if (!tk.Interrupt || size < 2) &&
			((tk.ContainerState.Marker != 0 && code == tk.ContainerState.Marker) ||
				(tk.ContainerState.Marker == 0 && (code == ')' || code == '.'))) {
			tk.Exit(TypeListItemValue)
			return atMarker(code)
		}
		return nok(code)
	}

	atMarker = func(code Code) State {
		tk.Enter(TypeListItemMarker)
		tk.Consume(code)
		tk.Exit(TypeListItemMarker)
		if tk.ContainerState.Marker == 0 {
			tk.ContainerState.Marker = code
		}
		blankOK := onBlank
		if tk.Interrupt {
			// An item cannot start blank while interrupting.
			blankOK = nok
		}
		return tk.Check(BlankLine, blankOK, tk.Attempt(listItemPrefixWhitespace, endOfPrefix, otherPrefix))
	}

	onBlank = func(code Code) State {
		tk.ContainerState.InitialBlankLine = true
		initialSize++
		return endOfPrefix(code)
	}

	otherPrefix = func(code Code) State {
		if markdownSpace(code) {
			tk.Enter(TypeListItemPrefixWhitespace)
			tk.Consume(code)
			tk.Exit(TypeListItemPrefixWhitespace)
			return endOfPrefix
		}
		return nok(code)
	}

	endOfPrefix = func(code Code) State {
		tk.ContainerState.Size = initialSize +
			len(tk.SliceSerialize(tk.Exit(TypeListItemPrefix), true))
		return ok(code)
	}

	return func(code Code) State {
		kind := tk.ContainerState.Type
		if kind == "" {
			if code == '*' || code == '+' || code == '-' {
				kind = TypeListUnordered
			} else {
				kind = TypeListOrdered
			}
		}

		matches := false
		if kind == TypeListUnordered {
			matches = tk.ContainerState.Marker == 0 || code == tk.ContainerState.Marker
		} else {
			matches = asciiDigit(code)
		}

		if matches {
			if tk.ContainerState.Type == "" {
				tk.ContainerState.Type = kind
				tk.Enter(kind).Container = true
			}
			if kind == TypeListUnordered {
				tk.Enter(TypeListItemPrefix)
				if code == '*' || code == '-' {
					return tk.Check(thematicBreak, nok, atMarker)(code)
				}
				return atMarker(code)
			}
			if !tk.Interrupt || code == '1' {
				tk.Enter(TypeListItemPrefix)
				tk.Enter(TypeListItemValue)
				return inside(code)
			}
		}
		return nok(code)
	}
}

func tokenizeListContinuation(tk *Tokenizer, ok, nok State) State {
	tk.ContainerState.closeFlow = false

	var onBlank, notBlank, notInCurrentItem State

	onBlank = func(code Code) State {
		if tk.ContainerState.InitialBlankLine {
			tk.ContainerState.FurtherBlankLines = true
		}
		// Blank line: still consume at most the item's size.
		return factorySpace(tk, ok, TypeListItemIndent, tk.ContainerState.Size+1)(code)
	}

	notBlank = func(code Code) State {
		if tk.ContainerState.FurtherBlankLines || !markdownSpace(code) {
			tk.ContainerState.FurtherBlankLines = false
			tk.ContainerState.InitialBlankLine = false
			return notInCurrentItem(code)
		}
		tk.ContainerState.FurtherBlankLines = false
		tk.ContainerState.InitialBlankLine = false
		return tk.Attempt(listItemIndent, ok, notInCurrentItem)(code)
	}

	notInCurrentItem = func(code Code) State {
		// We do continue the list, but the current item's flow must close.
		tk.ContainerState.closeFlow = true
		tk.Interrupt = false
		max := tabSize
		if contains(tk.parser.Constructs.Disable, "codeIndented") {
			max = 0
		}
		return factorySpace(tk, tk.Attempt(list, ok, nok), TypeLinePrefix, max)(code)
	}

	return tk.Check(BlankLine, onBlank, notBlank)
}

func tokenizeListItemIndent(tk *Tokenizer, ok, nok State) State {
	afterPrefix := func(code Code) State {
		if tail := lastEvent(tk); tail != nil &&
			tail.Token.Type == TypeListItemIndent &&
			len(tail.Context.SliceSerialize(tail.Token, true)) == tk.ContainerState.Size {
			return ok(code)
		}
		return nok(code)
	}

	return factorySpace(tk, afterPrefix, TypeListItemIndent, tk.ContainerState.Size+1)
}

func tokenizeListEnd(tk *Tokenizer) {
	tk.Exit(tk.ContainerState.Type)
}

func tokenizeListItemPrefixWhitespace(tk *Tokenizer, ok, nok State) State {
	afterPrefix := func(code Code) State {
		tail := lastEvent(tk)
		if !markdownSpace(code) && tail != nil && tail.Token.Type == TypeListItemPrefixWhitespace {
			return ok(code)
		}
		return nok(code)
	}

	return factorySpace(tk, afterPrefix, TypeListItemPrefixWhitespace, tabSize+1)
}
