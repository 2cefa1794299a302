package mark

// content is the flow construct for anything that is not more clearly
// something else: paragraphs, setext headings, and definitions. Lines are
// collected into chained chunkContent tokens; a continuation lookahead checks
// whether the next line starts a different flow construct.
//
// Filled in by init: resolving runs the sub-tokenizers, which lead back here.
var content = &Construct{}

func init() {
	*content = Construct{Tokenize: tokenizeContentChunks, Resolve: resolveContent}
}

var contentContinuation = &Construct{Tokenize: tokenizeContentContinuation, Partial: true}

func resolveContent(events []Event, _ *Tokenizer) []Event {
	events, _ = subtokenize(events)
	return events
}

func tokenizeContentChunks(tk *Tokenizer, ok, _ State) State {
	var previous *Token

	var chunkInside, contentEnd, contentContinue State

	chunkInside = func(code Code) State {
		if code == CodeEOF {
			return contentEnd(code)
		}
		if markdownLineEnding(code) {
			return tk.Check(contentContinuation, contentContinue, contentEnd)(code)
		}
		tk.Consume(code)
		return chunkInside
	}

	contentEnd = func(code Code) State {
		tk.Exit(TypeChunkContent)
		tk.Exit(TypeContent)
		return ok(code)
	}

	contentContinue = func(code Code) State {
		tk.Consume(code)
		tk.Exit(TypeChunkContent)
		next := tk.enterChunk(TypeChunkContent, ContentTypeContent)
		next.Previous = previous
		previous.Next = next
		previous = next
		return chunkInside
	}

	return func(code Code) State {
		tk.Enter(TypeContent)
		previous = tk.enterChunk(TypeChunkContent, ContentTypeContent)
		return chunkInside(code)
	}
}

func tokenizeContentContinuation(tk *Tokenizer, ok, nok State) State {
	prefixed := func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return nok(code)
		}
		tail := lastEvent(tk)
		if !contains(tk.parser.Constructs.Disable, "codeIndented") &&
			tail != nil && tail.Token.Type == TypeLinePrefix &&
			len(tail.Context.SliceSerialize(tail.Token, true)) >= tabSize {
			return ok(code)
		}
		return tk.AttemptInterrupt(tk.parser.Constructs.Flow, nok, ok)(code)
	}

	return func(code Code) State {
		tk.Exit(TypeChunkContent)
		tk.Enter(TypeLineEnding)
		tk.Consume(code)
		tk.Exit(TypeLineEnding)
		return factorySpace(tk, prefixed, TypeLinePrefix, 0)
	}
}
