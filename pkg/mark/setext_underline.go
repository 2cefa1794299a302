package mark

var setextUnderline = &Construct{
	Name:      "setextUnderline",
	Tokenize:  tokenizeSetextUnderline,
	ResolveTo: resolveToSetextUnderline,
}

// resolveToSetextUnderline rewrites the preceding content/paragraph into a
// setext heading. Definitions inside the content stay content; only the
// trailing paragraph becomes the heading text.
func resolveToSetextUnderline(events []Event, context *Tokenizer) []Event {
	index := len(events)
	content := -1
	text := -1
	definition := -1

	for index > 0 {
		index--
		if events[index].Kind == Enter {
			if events[index].Token.Type == TypeContent {
				content = index
				break
			}
			if events[index].Token.Type == TypeParagraph {
				text = index
			}
		} else {
			if events[index].Token.Type == TypeContent {
				// Remove the content exit; a new one is added below.
				events = append(events[:index], events[index+1:]...)
			}
			if definition < 0 && events[index].Token.Type == TypeDefinition {
				definition = index
			}
		}
	}

	heading := &Token{
		Type:  TypeSetextHeading,
		Start: events[text].Token.Start,
		End:   events[len(events)-1].Token.End,
	}

	// Change the paragraph to setext heading text.
	events[text].Token.Type = TypeSetextHeadingText

	// If the content held definitions, keep the content but close it before
	// the heading starts.
	if definition >= 0 {
		events = SpliceEvents(events, text, 0, []Event{{Kind: Enter, Token: heading, Context: context}})
		events = SpliceEvents(events, definition+1, 0, []Event{{Kind: Exit, Token: events[content].Token, Context: context}})
		events[content].Token.End = events[definition].Token.End
	} else {
		events[content].Token = heading
	}

	return append(events, Event{Kind: Exit, Token: heading, Context: context})
}

func tokenizeSetextUnderline(tk *Tokenizer, ok, nok State) State {
	var marker Code

	var before, inside, after State

	before = func(code Code) State {
		tk.Enter(TypeSetextHeadingLineSequence)
		return inside(code)
	}

	inside = func(code Code) State {
		if code == marker {
			tk.Consume(code)
			return inside
		}
		tk.Exit(TypeSetextHeadingLineSequence)
		if markdownSpace(code) {
			return factorySpace(tk, after, TypeLineSuffix, 0)(code)
		}
		return after(code)
	}

	after = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeSetextHeadingLine)
			return ok(code)
		}
		return nok(code)
	}

	return func(code Code) State {
		index := len(tk.events)
		paragraph := false

		// Find what precedes the underline, skipping line endings, prefixes,
		// and content wrappers.
		for index > 0 {
			index--
			typ := tk.events[index].Token.Type
			if typ != TypeLineEnding && typ != TypeLinePrefix && typ != TypeContent {
				paragraph = typ == TypeParagraph
				break
			}
		}

		if !tk.parser.Lazy[tk.Now().Line] && (tk.Interrupt || paragraph) {
			tk.Enter(TypeSetextHeadingLine)
			marker = code
			return before(code)
		}
		return nok(code)
	}
}
