package mark

// contentInitializer parses the insides of content chunks: definitions first,
// then a paragraph of chained text chunks.
var contentInitializer = &Construct{Tokenize: initializeContent}

func initializeContent(tk *Tokenizer, _, _ State) State {
	var previous *Token

	var contentStart, afterContentStartConstruct, paragraphInitial, lineStart, data State

	contentStart = func(code Code) State {
		return tk.Attempt(tk.parser.Constructs.ContentInitial, afterContentStartConstruct, paragraphInitial)(code)
	}

	afterContentStartConstruct = func(code Code) State {
		if code == CodeEOF {
			tk.Consume(code)
			return nil
		}
		tk.Enter(TypeLineEnding)
		tk.Consume(code)
		tk.Exit(TypeLineEnding)
		return factorySpace(tk, contentStart, TypeLinePrefix, 0)
	}

	paragraphInitial = func(code Code) State {
		tk.Enter(TypeParagraph)
		return lineStart(code)
	}

	lineStart = func(code Code) State {
		token := tk.enterChunk(TypeChunkText, ContentTypeText)
		token.Previous = previous
		if previous != nil {
			previous.Next = token
		}
		previous = token
		return data(code)
	}

	data = func(code Code) State {
		if code == CodeEOF {
			tk.Exit(TypeChunkText)
			tk.Exit(TypeParagraph)
			tk.Consume(code)
			return nil
		}
		if markdownLineEnding(code) {
			tk.Consume(code)
			tk.Exit(TypeChunkText)
			return lineStart
		}
		tk.Consume(code)
		return data
	}

	return contentStart
}
