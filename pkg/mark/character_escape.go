package mark

var characterEscape = &Construct{Name: "characterEscape", Tokenize: tokenizeCharacterEscape}

func tokenizeCharacterEscape(tk *Tokenizer, ok, nok State) State {
	inside := func(code Code) State {
		if asciiPunctuation(code) {
			tk.Enter(TypeCharacterEscapeValue)
			tk.Consume(code)
			tk.Exit(TypeCharacterEscapeValue)
			tk.Exit(TypeCharacterEscape)
			return ok
		}
		return nok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeCharacterEscape)
		tk.Enter(TypeEscapeMarker)
		tk.Consume(code)
		tk.Exit(TypeEscapeMarker)
		return inside
	}
}
