package mark

// textInitializer and stringInitializer parse inline content. They dispatch
// on the construct tables for their content type and collect everything else
// into data tokens.
var textInitializer = &Construct{
	Tokenize:   initializeText(func(p *Parser) ConstructRecord { return p.Constructs.Text }),
	ResolveAll: createResolver(resolveAllLineSuffixes),
}

var stringInitializer = &Construct{
	Tokenize:   initializeText(func(p *Parser) ConstructRecord { return p.Constructs.String }),
	ResolveAll: createResolver(nil),
}

// dataResolver merges adjacent data tokens inside media labels.
var dataResolver = &Construct{ResolveAll: createResolver(nil)}

func initializeText(pick func(p *Parser) ConstructRecord) func(tk *Tokenizer, ok, nok State) State {
	return func(tk *Tokenizer, _, _ State) State {
		constructs := pick(tk.parser)

		var start, notText, data State

		atBreak := func(code Code) bool {
			if code == CodeEOF {
				return true
			}
			for _, item := range constructs[code] {
				if item.Previous == nil || item.Previous(tk, tk.previous) {
					return true
				}
			}
			return false
		}

		text := tk.Attempt(constructs, func(code Code) State { return start(code) }, func(code Code) State { return notText(code) })

		start = func(code Code) State {
			if atBreak(code) {
				return text(code)
			}
			return notText(code)
		}

		notText = func(code Code) State {
			if code == CodeEOF {
				tk.Consume(code)
				return nil
			}
			tk.Enter(TypeData)
			tk.Consume(code)
			return data
		}

		data = func(code Code) State {
			if atBreak(code) {
				tk.Exit(TypeData)
				return text(code)
			}
			tk.Consume(code)
			return data
		}

		return start
	}
}

// createResolver merges adjacent data events, optionally chaining an extra
// resolver afterwards.
func createResolver(extra Resolver) Resolver {
	return func(events []Event, context *Tokenizer) []Event {
		enter := -1
		for index := 0; index <= len(events); index++ {
			if enter < 0 {
				if index < len(events) && events[index].Token.Type == TypeData {
					enter = index
				}
			} else if index == len(events) || events[index].Token.Type != TypeData {
				// Leave a lone data token alone.
				if index != enter+2 {
					events[enter].Token.End = events[index-1].Token.End
					events = append(events[:enter+2], events[index:]...)
					index = enter + 2
				}
				enter = -1
			}
		}
		if extra != nil {
			return extra(events, context)
		}
		return events
	}
}

// resolveAllLineSuffixes splits trailing spaces and tabs off the data token
// at the end of each line: two or more trailing spaces become a hard break,
// anything else becomes a line suffix.
func resolveAllLineSuffixes(events []Event, context *Tokenizer) []Event {
	for eventIndex := 1; eventIndex <= len(events); eventIndex++ {
		if (eventIndex != len(events) && events[eventIndex].Token.Type != TypeLineEnding) ||
			events[eventIndex-1].Token.Type != TypeData {
			continue
		}

		data := events[eventIndex-1].Token
		chunks := context.SliceStream(data)
		index := len(chunks)
		bufferIndex := -1
		size := 0
		tabs := false

	scan:
		for index > 0 {
			index--
			chunk := chunks[index]
			switch {
			case chunk.isText():
				bufferIndex = len(chunk.Value)
				for bufferIndex > 0 && chunk.Value[bufferIndex-1] == ' ' {
					size++
					bufferIndex--
				}
				if bufferIndex > 0 {
					break scan
				}
				bufferIndex = -1
			case chunk.Code == CodeHT:
				tabs = true
				size++
			case chunk.Code == CodeVS:
				// Virtual spaces do not count.
			default:
				index++
				break scan
			}
		}

		if size > 0 {
			typ := TypeHardBreakTrailing
			if eventIndex == len(events) || tabs || size < hardBreakPrefixSizeMin {
				typ = TypeLineSuffix
			}

			tokenBufferIndex := bufferIndex
			if index == 0 {
				tokenBufferIndex = data.Start.bufferIndex + bufferIndex
			}
			token := &Token{
				Type: typ,
				Start: Point{
					Line:        data.End.Line,
					Column:      data.End.Column - size,
					Offset:      data.End.Offset - size,
					index:       data.Start.index + index,
					bufferIndex: tokenBufferIndex,
				},
				End: data.End,
			}

			data.End = token.Start
			if data.Start.Offset == data.End.Offset {
				// The whole token was whitespace.
				*data = *token
			} else {
				events = SpliceEvents(events, eventIndex, 0, []Event{
					{Kind: Enter, Token: token, Context: context},
					{Kind: Exit, Token: token, Context: context},
				})
				eventIndex += 2
			}
		}
		eventIndex++
	}

	return events
}
