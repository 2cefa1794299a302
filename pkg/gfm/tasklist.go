package gfm

import "github.com/yaklabco/keepmark/pkg/mark"

const (
	typeTaskListCheck          = "taskListCheck"
	typeTaskListCheckMarker    = "taskListCheckMarker"
	typeTaskListCheckChecked   = "taskListCheckValueChecked"
	typeTaskListCheckUnchecked = "taskListCheckValueUnchecked"
)

var tasklistCheck = &mark.Construct{
	Name:     "tasklistCheck",
	Tokenize: tokenizeTasklistCheck,
}

// TaskListItemSyntax adds `[ ]` / `[x]` checks at the start of list items.
func TaskListItemSyntax() mark.Extension {
	return mark.Extension{
		Text: mark.ConstructRecord{
			'[': {tasklistCheck},
		},
	}
}

// TaskListItemHTML renders checks as disabled checkbox inputs.
func TaskListItemHTML() mark.HTMLExtension {
	return mark.HTMLExtension{
		Enter: map[string]mark.Handler{
			typeTaskListCheck: func(c *mark.Compiler, _ *mark.Token) {
				c.Tag(`<input type="checkbox" `)
			},
		},
		Exit: map[string]mark.Handler{
			typeTaskListCheck: func(c *mark.Compiler, _ *mark.Token) {
				c.Tag(`disabled="" />`)
			},
			typeTaskListCheckChecked: func(c *mark.Compiler, _ *mark.Token) {
				c.Tag(`checked="" `)
			},
		},
	}
}

func tokenizeTasklistCheck(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	var inside, close, after mark.State

	inside = func(code mark.Code) mark.State {
		if mark.MarkdownLineEndingOrSpace(code) {
			tk.Enter(typeTaskListCheckUnchecked)
			tk.Consume(code)
			tk.Exit(typeTaskListCheckUnchecked)
			return close
		}
		if code == 'x' || code == 'X' {
			tk.Enter(typeTaskListCheckChecked)
			tk.Consume(code)
			tk.Exit(typeTaskListCheckChecked)
			return close
		}
		return nok(code)
	}

	close = func(code mark.Code) mark.State {
		if code == ']' {
			tk.Enter(typeTaskListCheckMarker)
			tk.Consume(code)
			tk.Exit(typeTaskListCheckMarker)
			tk.Exit(typeTaskListCheck)
			return after
		}
		return nok(code)
	}

	after = func(code mark.Code) mark.State {
		if mark.MarkdownLineEnding(code) {
			return ok(code)
		}
		if mark.MarkdownSpace(code) {
			// Followed by whitespace only is not a check.
			return tk.Check(spaceThenNonSpace, ok, nok)(code)
		}
		return nok(code)
	}

	return func(code mark.Code) mark.State {
		// Exactly at the start of a list item, after nothing else.
		if tk.PreviousCode() != mark.CodeEOF || !tk.InFirstContentOfListItem {
			return nok(code)
		}
		tk.Enter(typeTaskListCheck)
		tk.Enter(typeTaskListCheckMarker)
		tk.Consume(code)
		tk.Exit(typeTaskListCheckMarker)
		return inside
	}
}

var spaceThenNonSpace = &mark.Construct{
	Tokenize: tokenizeSpaceThenNonSpace,
	Partial:  true,
}

func tokenizeSpaceThenNonSpace(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	return mark.FactorySpace(tk, func(code mark.Code) mark.State {
		if code == mark.CodeEOF {
			return nok(code)
		}
		return ok(code)
	}, mark.TypeWhitespace, 0)
}
