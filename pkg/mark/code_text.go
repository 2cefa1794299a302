package mark

var codeText = &Construct{
	Name:     "codeText",
	Tokenize: tokenizeCodeText,
	Resolve:  resolveCodeText,
	Previous: previousCodeText,
}

// resolveCodeText strips one leading and trailing padding space when both
// sides have one and the span holds data, then merges spaces and data into
// single data tokens per line.
func resolveCodeText(events []Event, _ *Tokenizer) []Event {
	tailExitIndex := len(events) - 4
	headEnterIndex := 3

	if (events[headEnterIndex].Token.Type == TypeLineEnding || events[headEnterIndex].Token.Type == TypeSpace) &&
		(events[tailExitIndex].Token.Type == TypeLineEnding || events[tailExitIndex].Token.Type == TypeSpace) {
		for index := headEnterIndex + 1; index < tailExitIndex; index++ {
			if events[index].Token.Type == TypeCodeTextData {
				events[headEnterIndex].Token.Type = TypeCodeTextPadding
				events[tailExitIndex].Token.Type = TypeCodeTextPadding
				headEnterIndex += 2
				tailExitIndex -= 2
				break
			}
		}
	}

	index := headEnterIndex - 1
	tailExitIndex++
	enter := -1
	for index < tailExitIndex {
		index++
		if enter < 0 {
			if index != tailExitIndex && events[index].Token.Type != TypeLineEnding {
				enter = index
			}
		} else if index == tailExitIndex || events[index].Token.Type == TypeLineEnding {
			events[enter].Token.Type = TypeCodeTextData
			if index != enter+2 {
				events[enter].Token.End = events[index-1].Token.End
				events = append(events[:enter+2], events[index:]...)
				tailExitIndex -= index - enter - 2
				index = enter + 2
			}
			enter = -1
		}
	}

	return events
}

func previousCodeText(tk *Tokenizer, code Code) bool {
	// A backtick may not follow another backtick unless that one was escaped.
	return code != '`' ||
		tk.events[len(tk.events)-1].Token.Type == TypeCharacterEscape
}

func tokenizeCodeText(tk *Tokenizer, ok, nok State) State {
	sizeOpen := 0
	size := 0
	var token *Token

	var sequenceOpen, between, data, sequenceClose State

	sequenceOpen = func(code Code) State {
		if code == '`' {
			tk.Consume(code)
			sizeOpen++
			return sequenceOpen
		}
		tk.Exit(TypeCodeTextSequence)
		return between(code)
	}

	between = func(code Code) State {
		if code == CodeEOF {
			return nok(code)
		}
		if code == ' ' {
			tk.Enter(TypeSpace)
			tk.Consume(code)
			tk.Exit(TypeSpace)
			return between
		}
		if code == '`' {
			token = tk.Enter(TypeCodeTextSequence)
			size = 0
			return sequenceClose(code)
		}
		if markdownLineEnding(code) {
			tk.Enter(TypeLineEnding)
			tk.Consume(code)
			tk.Exit(TypeLineEnding)
			return between
		}
		tk.Enter(TypeCodeTextData)
		return data(code)
	}

	data = func(code Code) State {
		if code == CodeEOF || code == ' ' || code == '`' || markdownLineEnding(code) {
			tk.Exit(TypeCodeTextData)
			return between(code)
		}
		tk.Consume(code)
		return data
	}

	sequenceClose = func(code Code) State {
		if code == '`' {
			tk.Consume(code)
			size++
			return sequenceClose
		}
		if size == sizeOpen {
			tk.Exit(TypeCodeTextSequence)
			tk.Exit(TypeCodeText)
			return ok(code)
		}
		// Not a closing sequence, so it is data.
		token.Type = TypeCodeTextData
		return data(code)
	}

	return func(code Code) State {
		tk.Enter(TypeCodeText)
		tk.Enter(TypeCodeTextSequence)
		return sequenceOpen(code)
	}
}
