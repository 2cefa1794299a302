package mark

var labelStartImage = &Construct{
	Name:       "labelStartImage",
	Tokenize:   tokenizeLabelStartImage,
	ResolveAll: resolveAllLabelEnd,
}

func tokenizeLabelStartImage(tk *Tokenizer, ok, nok State) State {
	open := func(code Code) State {
		if code == '[' {
			tk.Enter(TypeLabelMarker)
			tk.Consume(code)
			tk.Exit(TypeLabelMarker)
			tk.Exit(TypeLabelImage)
			return func(code Code) State {
				if code == '^' && tk.parser.Constructs.HiddenFootnoteSupport {
					return nok(code)
				}
				return ok(code)
			}
		}
		return nok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeLabelImage)
		tk.Enter(TypeLabelImageMarker)
		tk.Consume(code)
		tk.Exit(TypeLabelImageMarker)
		return open
	}
}
