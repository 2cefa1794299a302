package mark

var labelStartLink = &Construct{
	Name:       "labelStartLink",
	Tokenize:   tokenizeLabelStartLink,
	ResolveAll: resolveAllLabelEnd,
}

func tokenizeLabelStartLink(tk *Tokenizer, ok, nok State) State {
	after := func(code Code) State {
		if code == '^' && tk.parser.Constructs.HiddenFootnoteSupport {
			return nok(code)
		}
		return ok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeLabelLink)
		tk.Enter(TypeLabelMarker)
		tk.Consume(code)
		tk.Exit(TypeLabelMarker)
		tk.Exit(TypeLabelLink)
		return after
	}
}
