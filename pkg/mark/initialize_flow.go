package mark

// flowInitializer parses the blocks of the document: blank lines, leading
// indent, the flow constructs, and a content fallback.
var flowInitializer = &Construct{Tokenize: initializeFlow}

func initializeFlow(tk *Tokenizer, _, _ State) State {
	var initial, atBlankEnding, afterConstruct State

	initial = func(code Code) State {
		return tk.Attempt(BlankLine, atBlankEnding,
			tk.Attempt(tk.parser.Constructs.FlowInitial, afterConstruct,
				factorySpace(tk,
					tk.Attempt(tk.parser.Constructs.Flow, afterConstruct,
						tk.Attempt(content, afterConstruct, nil)),
					TypeLinePrefix, 0)))(code)
	}

	atBlankEnding = func(code Code) State {
		if code == CodeEOF {
			tk.Consume(code)
			return nil
		}
		tk.Enter(TypeLineEndingBlank)
		tk.Consume(code)
		tk.Exit(TypeLineEndingBlank)
		tk.currentConstruct = nil
		return initial
	}

	afterConstruct = func(code Code) State {
		if code == CodeEOF {
			tk.Consume(code)
			return nil
		}
		tk.Enter(TypeLineEnding)
		tk.Consume(code)
		tk.Exit(TypeLineEnding)
		tk.currentConstruct = nil
		return initial
	}

	return initial
}
