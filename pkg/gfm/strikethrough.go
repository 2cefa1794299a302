package gfm

import "github.com/yaklabco/keepmark/pkg/mark"

const (
	typeStrikethrough         = "strikethrough"
	typeStrikethroughSequence = "strikethroughSequence"
	typeStrikethroughTemp     = "strikethroughSequenceTemporary"
	typeStrikethroughText     = "strikethroughText"
)

var strikethrough = &mark.Construct{
	Name:       "strikethrough",
	Tokenize:   tokenizeStrikethrough,
	ResolveAll: resolveAllStrikethrough,
}

// StrikethroughSyntax adds `~~strikethrough~~` (and single-tilde runs, like
// GitHub). Runs pair like attention sequences.
func StrikethroughSyntax() mark.Extension {
	return mark.Extension{
		Text: mark.ConstructRecord{
			'~': {strikethrough},
		},
		InsideSpan:       []*mark.Construct{strikethrough},
		AttentionMarkers: []mark.Code{'~'},
	}
}

// StrikethroughHTML renders strikethrough as del elements.
func StrikethroughHTML() mark.HTMLExtension {
	return mark.HTMLExtension{
		Enter: map[string]mark.Handler{
			typeStrikethrough: func(c *mark.Compiler, _ *mark.Token) {
				c.Tag("<del>")
			},
		},
		Exit: map[string]mark.Handler{
			typeStrikethrough: func(c *mark.Compiler, _ *mark.Token) {
				c.Tag("</del>")
			},
		},
	}
}

func tokenizeStrikethrough(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	previous := tk.PreviousCode()
	events := tk.Events()
	size := 0

	var more mark.State
	more = func(code mark.Code) mark.State {
		before := mark.ClassifyCharacter(previous)

		if code == '~' {
			// A third marker ends the run.
			if size > 1 {
				return nok(code)
			}
			tk.Consume(code)
			size++
			return more
		}

		token := tk.Exit(typeStrikethroughTemp)
		after := mark.ClassifyCharacter(code)
		token.Open = after == mark.GroupOther ||
			(after == mark.GroupPunctuation && before != mark.GroupOther)
		token.Close = before == mark.GroupOther ||
			(before == mark.GroupPunctuation && after != mark.GroupOther)
		return ok(code)
	}

	return func(code mark.Code) mark.State {
		if previous == '~' &&
			events[len(events)-1].Token.Type != mark.TypeCharacterEscape {
			return nok(code)
		}
		tk.Enter(typeStrikethroughTemp)
		return more(code)
	}
}

func resolveAllStrikethrough(events []mark.Event, context *mark.Tokenizer) []mark.Event {
	for index := 0; index < len(events); index++ {
		if events[index].Kind != mark.Enter ||
			events[index].Token.Type != typeStrikethroughTemp ||
			!events[index].Token.Close {
			continue
		}

		for open := index - 1; open >= 0; open-- {
			if events[open].Kind != mark.Exit ||
				events[open].Token.Type != typeStrikethroughTemp ||
				!events[open].Token.Open ||
				events[index].Token.End.Offset-events[index].Token.Start.Offset !=
					events[open].Token.End.Offset-events[open].Token.Start.Offset {
				continue
			}

			events[index].Token.Type = typeStrikethroughSequence
			events[open].Token.Type = typeStrikethroughSequence

			span := &mark.Token{
				Type:  typeStrikethrough,
				Start: events[open].Token.Start,
				End:   events[index].Token.End,
			}
			text := &mark.Token{
				Type:  typeStrikethroughText,
				Start: events[open].Token.End,
				End:   events[index].Token.Start,
			}

			nextEvents := []mark.Event{
				{Kind: mark.Enter, Token: span, Context: context},
				{Kind: mark.Enter, Token: events[open].Token, Context: context},
				{Kind: mark.Exit, Token: events[open].Token, Context: context},
				{Kind: mark.Enter, Token: text, Context: context},
			}

			between := make([]mark.Event, index-open-1)
			copy(between, events[open+1:index])
			between = mark.ResolveAll(context.Parser().Constructs.InsideSpan, between, context)
			nextEvents = append(nextEvents, between...)

			nextEvents = append(nextEvents,
				mark.Event{Kind: mark.Exit, Token: text, Context: context},
				mark.Event{Kind: mark.Enter, Token: events[index].Token, Context: context},
				mark.Event{Kind: mark.Exit, Token: events[index].Token, Context: context},
				mark.Event{Kind: mark.Exit, Token: span, Context: context},
			)

			events = mark.SpliceEvents(events, open-1, index-open+3, nextEvents)
			index = open + len(nextEvents) - 2
			break
		}
	}

	for index := range events {
		if events[index].Token.Type == typeStrikethroughTemp {
			events[index].Token.Type = mark.TypeData
		}
	}

	return events
}
