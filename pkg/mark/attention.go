package mark

var attention = &Construct{
	Name:       "attention",
	Tokenize:   tokenizeAttention,
	ResolveAll: resolveAllAttention,
}

// resolveAllAttention pairs attention sequences into emphasis and strong,
// per the CommonMark rules on delimiter runs, and degrades the leftovers to
// data.
func resolveAllAttention(events []Event, context *Tokenizer) []Event {
	for index := 0; index < len(events); index++ {
		if events[index].Kind != Enter ||
			events[index].Token.Type != TypeAttentionSequence ||
			!events[index].Token.Close {
			continue
		}

		for open := index - 1; open >= 0; open-- {
			if events[open].Kind != Exit ||
				events[open].Token.Type != TypeAttentionSequence ||
				!events[open].Token.Open ||
				context.SliceSerialize(events[open].Token, false)[0] != context.SliceSerialize(events[index].Token, false)[0] {
				continue
			}

			opener := events[open].Token
			closer := events[index].Token
			openSize := opener.End.Offset - opener.Start.Offset
			closeSize := closer.End.Offset - closer.Start.Offset

			// If the opening can close or the closing can open, and the
			// sizes are not both multiples of three while their sum is,
			// this pair does not match.
			if (opener.Close || closer.Open) &&
				openSize%3 != 0 &&
				(openSize+closeSize)%3 == 0 {
				continue
			}

			// Number of markers to take from each sequence.
			use := 1
			if openSize > 1 && closeSize > 1 {
				use = 2
			}

			start := MovePoint(opener.End, -use)
			end := MovePoint(closer.Start, use)

			sequenceType := TypeEmphasisSequence
			textType := TypeEmphasisText
			groupType := TypeEmphasis
			if use > 1 {
				sequenceType = TypeStrongSequence
				textType = TypeStrongText
				groupType = TypeStrong
			}

			openingSequence := &Token{Type: sequenceType, Start: start, End: opener.End}
			closingSequence := &Token{Type: sequenceType, Start: closer.Start, End: end}
			text := &Token{Type: textType, Start: opener.End, End: closer.Start}
			group := &Token{Type: groupType, Start: openingSequence.Start, End: closingSequence.End}

			opener.End = openingSequence.Start
			closer.Start = closingSequence.End

			var nextEvents []Event

			// Remaining markers in the opening sequence stay before.
			if opener.End.Offset-opener.Start.Offset > 0 {
				nextEvents = append(nextEvents,
					Event{Kind: Enter, Token: opener, Context: context},
					Event{Kind: Exit, Token: opener, Context: context},
				)
			}

			nextEvents = append(nextEvents,
				Event{Kind: Enter, Token: group, Context: context},
				Event{Kind: Enter, Token: openingSequence, Context: context},
				Event{Kind: Exit, Token: openingSequence, Context: context},
				Event{Kind: Enter, Token: text, Context: context},
			)

			between := make([]Event, index-(open+1))
			copy(between, events[open+1:index])
			nextEvents = append(nextEvents, ResolveAll(context.parser.Constructs.InsideSpan, between, context)...)

			nextEvents = append(nextEvents,
				Event{Kind: Exit, Token: text, Context: context},
				Event{Kind: Enter, Token: closingSequence, Context: context},
				Event{Kind: Exit, Token: closingSequence, Context: context},
				Event{Kind: Exit, Token: group, Context: context},
			)

			// Remaining markers in the closing sequence stay after.
			offset := 0
			if closer.End.Offset-closer.Start.Offset > 0 {
				offset = 2
				nextEvents = append(nextEvents,
					Event{Kind: Enter, Token: closer, Context: context},
					Event{Kind: Exit, Token: closer, Context: context},
				)
			}

			events = SpliceEvents(events, open-1, index-open+3, nextEvents)
			index = open + len(nextEvents) - offset - 2
			break
		}
	}

	// Remaining sequences never paired up.
	for index := range events {
		if events[index].Token.Type == TypeAttentionSequence {
			events[index].Token.Type = TypeData
		}
	}

	return events
}

func tokenizeAttention(tk *Tokenizer, ok, _ State) State {
	previous := tk.previous
	before := ClassifyCharacter(previous)
	var marker Code

	var inside State

	inside = func(code Code) State {
		if code == marker {
			tk.Consume(code)
			return inside
		}

		token := tk.Exit(TypeAttentionSequence)
		after := ClassifyCharacter(code)

		open := after == GroupOther ||
			(after == GroupPunctuation && before != GroupOther) ||
			containsCode(tk.parser.Constructs.AttentionMarkers, code)
		close := before == GroupOther ||
			(before == GroupPunctuation && after != GroupOther) ||
			containsCode(tk.parser.Constructs.AttentionMarkers, previous)

		if marker == '*' {
			token.Open = open
			token.Close = close
		} else {
			token.Open = open && (before != GroupOther || !close)
			token.Close = close && (after != GroupOther || !open)
		}
		return ok(code)
	}

	return func(code Code) State {
		marker = code
		tk.Enter(TypeAttentionSequence)
		return inside(code)
	}
}

// MovePoint shifts a point by a number of single-byte characters. Only safe
// for attention markers, which are ASCII.
func MovePoint(point Point, offset int) Point {
	point.Column += offset
	point.Offset += offset
	point.bufferIndex += offset
	return point
}

func containsCode(list []Code, code Code) bool {
	for _, c := range list {
		if c == code {
			return true
		}
	}
	return false
}
