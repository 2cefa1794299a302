package mark

var codeFenced = &Construct{
	Name:     "codeFenced",
	Tokenize: tokenizeCodeFenced,
	Concrete: true,
}

var nonLazyContinuation = &Construct{Tokenize: tokenizeNonLazyContinuation, Partial: true}

func tokenizeCodeFenced(tk *Tokenizer, ok, nok State) State {
	initialPrefix := 0
	sizeOpen := 0
	var marker Code

	var sequenceOpen, infoBefore, info, metaBefore, meta State
	var atNonLazyBreak, contentBefore, contentStart, beforeContentChunk, contentChunk, after State

	closeStart := &Construct{Partial: true, Tokenize: func(tk *Tokenizer, ok, nok State) State {
		size := 0

		var start, beforeSequenceClose, sequenceClose, sequenceCloseAfter State

		start = func(code Code) State {
			tk.Enter(TypeCodeFencedFence)
			if markdownSpace(code) {
				return factorySpace(tk, beforeSequenceClose, TypeLinePrefix, tabSize)(code)
			}
			return beforeSequenceClose(code)
		}

		beforeSequenceClose = func(code Code) State {
			if code == marker {
				tk.Enter(TypeCodeFencedFenceSequence)
				return sequenceClose(code)
			}
			return nok(code)
		}

		sequenceClose = func(code Code) State {
			if code == marker {
				size++
				tk.Consume(code)
				return sequenceClose
			}
			if size >= sizeOpen {
				tk.Exit(TypeCodeFencedFenceSequence)
				if markdownSpace(code) {
					return factorySpace(tk, sequenceCloseAfter, TypeWhitespace, 0)(code)
				}
				return sequenceCloseAfter(code)
			}
			return nok(code)
		}

		sequenceCloseAfter = func(code Code) State {
			if code == CodeEOF || markdownLineEnding(code) {
				tk.Exit(TypeCodeFencedFence)
				return ok(code)
			}
			return nok(code)
		}

		return func(code Code) State {
			tk.Enter(TypeLineEnding)
			tk.Consume(code)
			tk.Exit(TypeLineEnding)
			return start
		}
	}}

	sequenceOpen = func(code Code) State {
		if code == marker {
			sizeOpen++
			tk.Consume(code)
			return sequenceOpen
		}
		if sizeOpen < codeFencedSequenceSizeMin {
			return nok(code)
		}
		tk.Exit(TypeCodeFencedFenceSequence)
		if markdownSpace(code) {
			return factorySpace(tk, infoBefore, TypeWhitespace, 0)(code)
		}
		return infoBefore(code)
	}

	infoBefore = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeCodeFencedFence)
			if tk.Interrupt {
				return ok(code)
			}
			return tk.Check(nonLazyContinuation, atNonLazyBreak, after)(code)
		}
		tk.Enter(TypeCodeFencedFenceInfo)
		tk.enterChunk(TypeChunkString, ContentTypeString)
		return info(code)
	}

	info = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeChunkString)
			tk.Exit(TypeCodeFencedFenceInfo)
			return infoBefore(code)
		}
		if markdownSpace(code) {
			tk.Exit(TypeChunkString)
			tk.Exit(TypeCodeFencedFenceInfo)
			return factorySpace(tk, metaBefore, TypeWhitespace, 0)(code)
		}
		if code == '`' && code == marker {
			return nok(code)
		}
		tk.Consume(code)
		return info
	}

	metaBefore = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return infoBefore(code)
		}
		tk.Enter(TypeCodeFencedFenceMeta)
		tk.enterChunk(TypeChunkString, ContentTypeString)
		return meta(code)
	}

	meta = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeChunkString)
			tk.Exit(TypeCodeFencedFenceMeta)
			return infoBefore(code)
		}
		if code == '`' && code == marker {
			return nok(code)
		}
		tk.Consume(code)
		return meta
	}

	atNonLazyBreak = func(code Code) State {
		return tk.Attempt(closeStart, after, contentBefore)(code)
	}

	contentBefore = func(code Code) State {
		tk.Enter(TypeLineEnding)
		tk.Consume(code)
		tk.Exit(TypeLineEnding)
		return contentStart
	}

	contentStart = func(code Code) State {
		if initialPrefix > 0 && markdownSpace(code) {
			return factorySpace(tk, beforeContentChunk, TypeLinePrefix, initialPrefix+1)(code)
		}
		return beforeContentChunk(code)
	}

	beforeContentChunk = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return tk.Check(nonLazyContinuation, atNonLazyBreak, after)(code)
		}
		tk.Enter(TypeCodeFlowValue)
		return contentChunk(code)
	}

	contentChunk = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeCodeFlowValue)
			return beforeContentChunk(code)
		}
		tk.Consume(code)
		return contentChunk
	}

	after = func(code Code) State {
		tk.Exit(TypeCodeFenced)
		return ok(code)
	}

	return func(code Code) State {
		if tail := lastEvent(tk); tail != nil && tail.Token.Type == TypeLinePrefix {
			initialPrefix = len(tail.Context.SliceSerialize(tail.Token, true))
		}
		marker = code
		tk.Enter(TypeCodeFenced)
		tk.Enter(TypeCodeFencedFence)
		tk.Enter(TypeCodeFencedFenceSequence)
		return sequenceOpen(code)
	}
}

func tokenizeNonLazyContinuation(tk *Tokenizer, ok, nok State) State {
	lineStart := func(code Code) State {
		if tk.parser.Lazy[tk.Now().Line] {
			return nok(code)
		}
		return ok(code)
	}

	return func(code Code) State {
		if code == CodeEOF {
			return nok(code)
		}
		tk.Enter(TypeLineEnding)
		tk.Consume(code)
		tk.Exit(TypeLineEnding)
		return lineStart
	}
}
