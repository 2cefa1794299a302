package mark

// subtokenize runs one pass over the events, expanding every token with a
// content type into the events of the matching sub-tokenizer. It returns the
// rewritten events and whether the stream is fully resolved; a pass that
// expanded anything may have revealed deeper content, so callers loop.
func subtokenize(eventsIn []Event) ([]Event, bool) {
	jumps := map[int]int{}
	more := false
	events := NewSpliceBuffer(eventsIn)

	for index := 0; index < events.Length(); index++ {
		for {
			jump, ok := jumps[index]
			if !ok {
				break
			}
			index = jump
		}
		if index >= events.Length() {
			break
		}
		event := events.Get(index)

		// Mark the text inside the first content of a list item, for
		// constructs that only match there (task list items).
		if index > 0 && event.Token.Type == TypeChunkFlow &&
			events.Get(index-1).Token.Type == TypeListItemPrefix &&
			event.Token.contentTokenized != nil {
			subevents := event.Token.contentTokenized.events
			otherIndex := 0
			if otherIndex < len(subevents) && subevents[otherIndex].Token.Type == TypeLineEndingBlank {
				otherIndex += 2
			}
			if otherIndex < len(subevents) && subevents[otherIndex].Token.Type == TypeContent {
				for otherIndex++; otherIndex < len(subevents); otherIndex++ {
					if subevents[otherIndex].Token.Type == TypeContent {
						break
					}
					if subevents[otherIndex].Token.Type == TypeChunkText {
						subevents[otherIndex].Token.FirstContentOfListItem = true
						otherIndex++
					}
				}
			}
		}

		if event.Kind == Enter {
			if event.Token.ContentType != "" {
				for from, to := range subcontent(events, index) {
					jumps[from] = to
				}
				index = jumps[index]
				more = true
			}
		} else if event.Token.Container {
			// A container exit after trailing blank lines: move the exit
			// before them, and make all but the first line ending blank.
			otherIndex := index
			lineIndex := -1
			for otherIndex > 0 {
				otherIndex--
				otherEvent := events.Get(otherIndex)
				typ := otherEvent.Token.Type
				if typ == TypeLineEnding || typ == TypeLineEndingBlank {
					if otherEvent.Kind == Enter {
						if lineIndex >= 0 {
							events.Get(lineIndex).Token.Type = TypeLineEndingBlank
						}
						otherEvent.Token.Type = TypeLineEnding
						lineIndex = otherIndex
					}
				} else if typ == TypeLinePrefix || typ == TypeListItemIndent {
					// Move past.
				} else {
					break
				}
			}

			if lineIndex >= 0 {
				event.Token.End = events.Get(lineIndex).Token.Start

				parameters := events.Slice(lineIndex, index)
				parameters = append([]Event{event}, parameters...)
				events.Splice(lineIndex, index-lineIndex+1, parameters)
			}
		}
	}

	return events.Slice(0, events.Length()), !more
}

// subcontent tokenizes the chained tokens starting at the one entered at
// eventIndex and splices each token's share of the child events over its
// enter/exit pair. It returns jumps over the spliced-in regions.
func subcontent(events *SpliceBuffer[Event], eventIndex int) map[int]int {
	token := events.Get(eventIndex).Token
	context := events.Get(eventIndex).Context
	startPosition := eventIndex - 1
	var startPositions []int
	tokenizer := token.contentTokenized
	if tokenizer == nil {
		tokenizer = context.parser.tokenizerFor(token.ContentType, token.Start)
	}
	childEvents := &tokenizer.events
	var jumps [][2]int
	gaps := map[int]int{}
	var previous *Token
	current := token
	start := 0
	breaks := []int{start}

	// Feed the linked tokens, in order, to the sub-tokenizer.
	for current != nil {
		for {
			startPosition++
			if events.Get(startPosition).Token == current {
				break
			}
		}
		startPositions = append(startPositions, startPosition)

		if current.contentTokenized == nil {
			stream := context.SliceStream(current)
			if current.Next == nil {
				stream = append(stream, codeChunk(CodeEOF))
			}
			if previous != nil {
				tokenizer.DefineSkip(current.Start)
			}
			if current.FirstContentOfListItem {
				tokenizer.InFirstContentOfListItem = true
			}
			tokenizer.Write(stream)
			if current.FirstContentOfListItem {
				tokenizer.InFirstContentOfListItem = false
			}
		}

		previous = current
		current = current.Next
	}

	// Walk the child events to find where each linked token's share ends: a
	// void token spanning a line break marks the seam.
	current = token
	for index := 1; index < len(*childEvents); index++ {
		ev := (*childEvents)[index]
		prev := (*childEvents)[index-1]
		if ev.Kind == Exit && prev.Kind == Enter &&
			ev.Token.Type == prev.Token.Type &&
			ev.Token.Start.Line != ev.Token.End.Line {
			start = index + 1
			breaks = append(breaks, start)
			current.contentTokenized = nil
			current.Previous = nil
			current = current.Next
		}
	}

	if current != nil {
		// Lines ending at EOF leave one more token; its break is the end.
		current.contentTokenized = nil
		current.Previous = nil
	} else {
		breaks = breaks[:len(breaks)-1]
	}

	// Splice back to front so earlier indices stay valid.
	all := *childEvents
	tokenizer.events = nil
	for index := len(breaks) - 1; index >= 0; index-- {
		end := len(all)
		if index+1 < len(breaks) {
			end = breaks[index+1]
		}
		slice := all[breaks[index]:end]
		position := startPositions[len(startPositions)-1]
		startPositions = startPositions[:len(startPositions)-1]
		jumps = append(jumps, [2]int{position, position + len(slice) - 1})
		events.Splice(position, 2, slice)
	}

	// Jumps were collected back to front; offsets accumulate front to back.
	adjust := 0
	for index := len(jumps) - 1; index >= 0; index-- {
		gaps[adjust+jumps[index][0]] = adjust + jumps[index][1]
		adjust += jumps[index][1] - jumps[index][0] - 1
	}

	return gaps
}
