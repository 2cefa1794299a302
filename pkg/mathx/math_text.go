package mathx

import "github.com/yaklabco/keepmark/pkg/mark"

const (
	typeMathText         = "mathText"
	typeMathTextData     = "mathTextData"
	typeMathTextPadding  = "mathTextPadding"
	typeMathTextSequence = "mathTextSequence"
)

func textConstruct(singleDollar bool) *mark.Construct {
	return &mark.Construct{
		Name: "mathText",
		Tokenize: func(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
			return tokenizeMathText(tk, ok, nok, singleDollar)
		},
		Resolve:  resolveMathText,
		Previous: previousMathText,
	}
}

// resolveMathText strips one leading and trailing padding space when both
// sides have one and the span holds data, then merges spaces and data into
// single data tokens per line.
func resolveMathText(events []mark.Event, _ *mark.Tokenizer) []mark.Event {
	tailExitIndex := len(events) - 4
	headEnterIndex := 3

	if (events[headEnterIndex].Token.Type == mark.TypeLineEnding || events[headEnterIndex].Token.Type == mark.TypeSpace) &&
		(events[tailExitIndex].Token.Type == mark.TypeLineEnding || events[tailExitIndex].Token.Type == mark.TypeSpace) {
		for index := headEnterIndex + 1; index < tailExitIndex; index++ {
			if events[index].Token.Type == typeMathTextData {
				events[headEnterIndex].Token.Type = typeMathTextPadding
				events[tailExitIndex].Token.Type = typeMathTextPadding
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
			if index != tailExitIndex && events[index].Token.Type != mark.TypeLineEnding {
				enter = index
			}
		} else if index == tailExitIndex || events[index].Token.Type == mark.TypeLineEnding {
			events[enter].Token.Type = typeMathTextData
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

func previousMathText(tk *mark.Tokenizer, code mark.Code) bool {
	// A dollar may not follow another dollar unless that one was escaped.
	return code != '$' ||
		tk.Events()[len(tk.Events())-1].Token.Type == mark.TypeCharacterEscape
}

func tokenizeMathText(tk *mark.Tokenizer, ok, nok mark.State, singleDollar bool) mark.State {
	sizeOpen := 0
	size := 0
	var token *mark.Token

	var sequenceOpen, between, data, sequenceClose mark.State

	sequenceOpen = func(code mark.Code) mark.State {
		if code == '$' {
			tk.Consume(code)
			sizeOpen++
			return sequenceOpen
		}
		if sizeOpen < 2 && !singleDollar {
			return nok(code)
		}
		tk.Exit(typeMathTextSequence)
		return between(code)
	}

	between = func(code mark.Code) mark.State {
		if code == mark.CodeEOF {
			return nok(code)
		}
		if code == ' ' {
			tk.Enter(mark.TypeSpace)
			tk.Consume(code)
			tk.Exit(mark.TypeSpace)
			return between
		}
		if code == '$' {
			token = tk.Enter(typeMathTextSequence)
			size = 0
			return sequenceClose(code)
		}
		if mark.MarkdownLineEnding(code) {
			tk.Enter(mark.TypeLineEnding)
			tk.Consume(code)
			tk.Exit(mark.TypeLineEnding)
			return between
		}
		tk.Enter(typeMathTextData)
		return data(code)
	}

	data = func(code mark.Code) mark.State {
		if code == mark.CodeEOF || code == ' ' || code == '$' || mark.MarkdownLineEnding(code) {
			tk.Exit(typeMathTextData)
			return between(code)
		}
		tk.Consume(code)
		return data
	}

	sequenceClose = func(code mark.Code) mark.State {
		if code == '$' {
			tk.Consume(code)
			size++
			return sequenceClose
		}
		if size == sizeOpen {
			tk.Exit(typeMathTextSequence)
			tk.Exit(typeMathText)
			return ok(code)
		}
		// Not a closing sequence, so it is data.
		token.Type = typeMathTextData
		return data(code)
	}

	return func(code mark.Code) mark.State {
		tk.Enter(typeMathText)
		tk.Enter(typeMathTextSequence)
		return sequenceOpen(code)
	}
}

func mathTextHTML() mark.HTMLExtension {
	return mark.HTMLExtension{
		Enter: map[string]mark.Handler{
			typeMathText: func(c *mark.Compiler, _ *mark.Token) {
				c.Tag(`<code class="language-math math-inline">`)
				c.Buffer()
			},
		},
		Exit: map[string]mark.Handler{
			typeMathTextData: func(c *mark.Compiler, token *mark.Token) {
				c.Raw(c.SliceSerialize(token))
			},
			typeMathText: func(c *mark.Compiler, _ *mark.Token) {
				value := c.Resume()
				c.Raw(c.Encode(value))
				c.Tag("</code>")
			},
		},
	}
}
