package mathx

import "github.com/yaklabco/keepmark/pkg/mark"

const (
	typeMathFlow              = "mathFlow"
	typeMathFlowFence         = "mathFlowFence"
	typeMathFlowFenceMeta     = "mathFlowFenceMeta"
	typeMathFlowFenceSequence = "mathFlowFenceSequence"
	typeMathFlowValue         = "mathFlowValue"
)

const tabSize = 4

var mathFlow = &mark.Construct{
	Name:     "mathFlow",
	Tokenize: tokenizeMathFlow,
	Concrete: true,
}

var mathNonLazyContinuation = &mark.Construct{
	Tokenize: tokenizeMathNonLazyContinuation,
	Partial:  true,
}

func tokenizeMathFlow(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	initialPrefix := 0
	sizeOpen := 0

	var sequenceOpen, metaBefore, meta, metaAfter mark.State
	var beforeNonLazyContinuation, contentStart, beforeContentChunk, contentChunk, after mark.State

	closeStart := &mark.Construct{Partial: true, Tokenize: func(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
		size := 0

		var beforeSequenceClose, sequenceClose, sequenceCloseAfter mark.State

		beforeSequenceClose = func(code mark.Code) mark.State {
			tk.Enter(typeMathFlowFence)
			if code == '$' {
				tk.Enter(typeMathFlowFenceSequence)
				return sequenceClose(code)
			}
			return nok(code)
		}

		sequenceClose = func(code mark.Code) mark.State {
			if code == '$' {
				size++
				tk.Consume(code)
				return sequenceClose
			}
			if size < sizeOpen {
				return nok(code)
			}
			tk.Exit(typeMathFlowFenceSequence)
			if mark.MarkdownSpace(code) {
				return mark.FactorySpace(tk, sequenceCloseAfter, mark.TypeWhitespace, 0)(code)
			}
			return sequenceCloseAfter(code)
		}

		sequenceCloseAfter = func(code mark.Code) mark.State {
			if code == mark.CodeEOF || mark.MarkdownLineEnding(code) {
				tk.Exit(typeMathFlowFence)
				return ok(code)
			}
			return nok(code)
		}

		return func(code mark.Code) mark.State {
			if mark.MarkdownSpace(code) {
				return mark.FactorySpace(tk, beforeSequenceClose, mark.TypeLinePrefix, tabSize)(code)
			}
			return beforeSequenceClose(code)
		}
	}}

	sequenceOpen = func(code mark.Code) mark.State {
		if code == '$' {
			tk.Consume(code)
			sizeOpen++
			return sequenceOpen
		}
		if sizeOpen < 2 {
			return nok(code)
		}
		tk.Exit(typeMathFlowFenceSequence)
		if mark.MarkdownSpace(code) {
			return mark.FactorySpace(tk, metaBefore, mark.TypeWhitespace, 0)(code)
		}
		return metaBefore(code)
	}

	metaBefore = func(code mark.Code) mark.State {
		if code == mark.CodeEOF || mark.MarkdownLineEnding(code) {
			return metaAfter(code)
		}
		tk.Enter(typeMathFlowFenceMeta)
		t := tk.Enter(mark.TypeChunkString)
		t.ContentType = mark.ContentTypeString
		return meta(code)
	}

	meta = func(code mark.Code) mark.State {
		if code == mark.CodeEOF || mark.MarkdownLineEnding(code) {
			tk.Exit(mark.TypeChunkString)
			tk.Exit(typeMathFlowFenceMeta)
			return metaAfter(code)
		}
		if code == '$' {
			return nok(code)
		}
		tk.Consume(code)
		return meta
	}

	metaAfter = func(code mark.Code) mark.State {
		tk.Exit(typeMathFlowFence)
		if tk.Interrupt {
			return ok(code)
		}
		return tk.Attempt(mathNonLazyContinuation, beforeNonLazyContinuation, after)(code)
	}

	beforeNonLazyContinuation = func(code mark.Code) mark.State {
		return tk.Attempt(closeStart, after, contentStart)(code)
	}

	contentStart = func(code mark.Code) mark.State {
		if initialPrefix > 0 && mark.MarkdownSpace(code) {
			return mark.FactorySpace(tk, beforeContentChunk, mark.TypeLinePrefix, initialPrefix+1)(code)
		}
		return beforeContentChunk(code)
	}

	beforeContentChunk = func(code mark.Code) mark.State {
		if code == mark.CodeEOF {
			return after(code)
		}
		if mark.MarkdownLineEnding(code) {
			return tk.Attempt(mathNonLazyContinuation, beforeNonLazyContinuation, after)(code)
		}
		tk.Enter(typeMathFlowValue)
		return contentChunk(code)
	}

	contentChunk = func(code mark.Code) mark.State {
		if code == mark.CodeEOF || mark.MarkdownLineEnding(code) {
			tk.Exit(typeMathFlowValue)
			return beforeContentChunk(code)
		}
		tk.Consume(code)
		return contentChunk
	}

	after = func(code mark.Code) mark.State {
		tk.Exit(typeMathFlow)
		return ok(code)
	}

	return func(code mark.Code) mark.State {
		events := tk.Events()
		if len(events) > 0 {
			if tail := events[len(events)-1]; tail.Token.Type == mark.TypeLinePrefix {
				initialPrefix = len(tail.Context.SliceSerialize(tail.Token, true))
			}
		}
		tk.Enter(typeMathFlow)
		tk.Enter(typeMathFlowFence)
		tk.Enter(typeMathFlowFenceSequence)
		return sequenceOpen(code)
	}
}

func tokenizeMathNonLazyContinuation(tk *mark.Tokenizer, ok, nok mark.State) mark.State {
	lineStart := func(code mark.Code) mark.State {
		if tk.Parser().Lazy[tk.Now().Line] {
			return nok(code)
		}
		return ok(code)
	}

	return func(code mark.Code) mark.State {
		if code == mark.CodeEOF {
			return ok(code)
		}
		tk.Enter(mark.TypeLineEnding)
		tk.Consume(code)
		tk.Exit(mark.TypeLineEnding)
		return lineStart
	}
}

func mathFlowHTML() mark.HTMLExtension {
	return mark.HTMLExtension{
		Enter: map[string]mark.Handler{
			typeMathFlow: func(c *mark.Compiler, _ *mark.Token) {
				c.LineEndingIfNeeded()
				c.Tag(`<pre><code class="language-math math-display">`)
			},
			typeMathFlowFenceMeta: func(c *mark.Compiler, _ *mark.Token) {
				c.Buffer()
			},
		},
		Exit: map[string]mark.Handler{
			typeMathFlowFence: func(c *mark.Compiler, _ *mark.Token) {
				// After the opening fence only.
				if c.GetExtra("mathFlowOpen") == nil {
					c.SetExtra("mathFlowOpen", true)
					c.SetSlurpOneLineEnding(true)
					c.Buffer()
				}
			},
			typeMathFlowFenceMeta: func(c *mark.Compiler, _ *mark.Token) {
				c.Resume()
			},
			typeMathFlowValue: func(c *mark.Compiler, token *mark.Token) {
				c.Raw(c.SliceSerialize(token))
				c.SetExtra("mathFlowData", true)
			},
			typeMathFlow: func(c *mark.Compiler, _ *mark.Token) {
				value := c.Resume()
				c.Raw(c.Encode(value))
				// A block left unclosed at EOF lacks the line ending before
				// its closing fence; the content still ends with one.
				if c.GetExtra("mathFlowData") != nil {
					c.LineEndingIfNeeded()
				}
				c.Tag("</code></pre>")
				c.SetExtra("mathFlowOpen", nil)
				c.SetExtra("mathFlowData", nil)
				c.SetSlurpOneLineEnding(false)
			},
		},
	}
}
