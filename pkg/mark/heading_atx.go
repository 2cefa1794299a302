package mark

var headingAtx = &Construct{
	Name:     "headingAtx",
	Tokenize: tokenizeHeadingAtx,
	Resolve:  resolveHeadingAtx,
}

// resolveHeadingAtx wraps the heading's content in a single text token,
// discarding the opening and closing sequences and their padding.
func resolveHeadingAtx(events []Event, context *Tokenizer) []Event {
	contentEnd := len(events) - 2
	contentStart := 3

	// Prefix whitespace, part of the opening.
	if events[contentStart].Token.Type == TypeWhitespace {
		contentStart += 2
	}

	// Suffix whitespace, part of the closing.
	if contentEnd-2 > contentStart && events[contentEnd].Token.Type == TypeWhitespace {
		contentEnd -= 2
	}

	if events[contentEnd].Token.Type == TypeAtxHeadingSequence &&
		(contentStart == contentEnd-1 ||
			(contentEnd-4 > contentStart && events[contentEnd-2].Token.Type == TypeWhitespace)) {
		if contentStart+1 == contentEnd {
			contentEnd -= 2
		} else {
			contentEnd -= 4
		}
	}

	if contentEnd > contentStart {
		content := &Token{
			Type:  TypeAtxHeadingText,
			Start: events[contentStart].Token.Start,
			End:   events[contentEnd].Token.End,
		}
		text := &Token{
			Type:        TypeChunkText,
			Start:       events[contentStart].Token.Start,
			End:         events[contentEnd].Token.End,
			ContentType: ContentTypeText,
		}
		events = SpliceEvents(events, contentStart, contentEnd-contentStart+1, []Event{
			{Kind: Enter, Token: content, Context: context},
			{Kind: Enter, Token: text, Context: context},
			{Kind: Exit, Token: text, Context: context},
			{Kind: Exit, Token: content, Context: context},
		})
	}

	return events
}

func tokenizeHeadingAtx(tk *Tokenizer, ok, nok State) State {
	size := 0

	var sequenceOpen, atBreak, sequenceFurther, data State

	sequenceOpen = func(code Code) State {
		if code == '#' && size < atxHeadingOpeningFenceSizeMax {
			size++
			tk.Consume(code)
			return sequenceOpen
		}
		if code == CodeEOF || markdownLineEndingOrSpace(code) {
			tk.Exit(TypeAtxHeadingSequence)
			return atBreak(code)
		}
		return nok(code)
	}

	atBreak = func(code Code) State {
		if code == '#' {
			tk.Enter(TypeAtxHeadingSequence)
			return sequenceFurther(code)
		}
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeAtxHeading)
			return ok(code)
		}
		if markdownSpace(code) {
			return factorySpace(tk, atBreak, TypeWhitespace, 0)(code)
		}
		tk.Enter(TypeData)
		return data(code)
	}

	sequenceFurther = func(code Code) State {
		if code == '#' {
			tk.Consume(code)
			return sequenceFurther
		}
		tk.Exit(TypeAtxHeadingSequence)
		return atBreak(code)
	}

	data = func(code Code) State {
		if code == CodeEOF || code == '#' || markdownLineEndingOrSpace(code) {
			tk.Exit(TypeData)
			return atBreak(code)
		}
		tk.Consume(code)
		return data
	}

	return func(code Code) State {
		tk.Enter(TypeAtxHeading)
		tk.Enter(TypeAtxHeadingSequence)
		return sequenceOpen(code)
	}
}
