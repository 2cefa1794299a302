package mark

var definition = &Construct{Name: "definition", Tokenize: tokenizeDefinition}

var definitionTitleBefore = &Construct{Tokenize: tokenizeDefinitionTitleBefore, Partial: true}

func tokenizeDefinition(tk *Tokenizer, ok, nok State) State {
	var identifier string

	var labelAfter, markerAfter, destinationBefore, destinationAfter, after, afterWhitespace State

	labelAfter = func(code Code) State {
		label := tk.SliceSerialize(tk.events[len(tk.events)-1].Token, false)
		identifier = NormalizeIdentifier(label[1 : len(label)-1])

		if code == ':' {
			tk.Enter(TypeDefinitionMarker)
			tk.Consume(code)
			tk.Exit(TypeDefinitionMarker)
			return markerAfter
		}
		return nok(code)
	}

	markerAfter = func(code Code) State {
		if markdownLineEndingOrSpace(code) {
			return factoryWhitespace(tk, destinationBefore)(code)
		}
		return destinationBefore(code)
	}

	destinationBefore = func(code Code) State {
		return factoryDestination(tk, destinationAfter, nok,
			TypeDefinitionDestination,
			TypeDefinitionDestinationLiteral,
			TypeDefinitionDestinationLiteralMarker,
			TypeDefinitionDestinationRaw,
			TypeDefinitionDestinationString, 0)(code)
	}

	destinationAfter = func(code Code) State {
		return tk.Attempt(definitionTitleBefore, after, after)(code)
	}

	after = func(code Code) State {
		if markdownSpace(code) {
			return factorySpace(tk, afterWhitespace, TypeWhitespace, 0)(code)
		}
		return afterWhitespace(code)
	}

	afterWhitespace = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			tk.Exit(TypeDefinition)
			tk.parser.Defined = append(tk.parser.Defined, identifier)
			return ok(code)
		}
		return nok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeDefinition)
		return factoryLabel(tk, labelAfter, nok,
			TypeDefinitionLabel, TypeDefinitionLabelMarker, TypeDefinitionLabelString)(code)
	}
}

func tokenizeDefinitionTitleBefore(tk *Tokenizer, ok, nok State) State {
	var beforeMarker, titleAfter, titleAfterOptionalWhitespace State

	beforeMarker = func(code Code) State {
		return factoryTitle(tk, titleAfter, nok,
			TypeDefinitionTitle, TypeDefinitionTitleMarker, TypeDefinitionTitleString)(code)
	}

	titleAfter = func(code Code) State {
		if markdownSpace(code) {
			return factorySpace(tk, titleAfterOptionalWhitespace, TypeWhitespace, 0)(code)
		}
		return titleAfterOptionalWhitespace(code)
	}

	titleAfterOptionalWhitespace = func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return ok(code)
		}
		return nok(code)
	}

	return func(code Code) State {
		if markdownLineEndingOrSpace(code) {
			return factoryWhitespace(tk, beforeMarker)(code)
		}
		return nok(code)
	}
}
