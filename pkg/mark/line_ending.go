package mark

// lineEnding is the text construct for a plain line ending: it eats the break
// plus any indent on the next line.
var lineEnding = &Construct{Name: "lineEnding", Tokenize: tokenizeLineEnding}

func tokenizeLineEnding(tk *Tokenizer, ok, _ State) State {
	return func(code Code) State {
		tk.Enter(TypeLineEnding)
		tk.Consume(code)
		tk.Exit(TypeLineEnding)
		return factorySpace(tk, ok, TypeLinePrefix, 0)
	}
}
