package mark

var autolink = &Construct{Name: "autolink", Tokenize: tokenizeAutolink}

func tokenizeAutolink(tk *Tokenizer, ok, nok State) State {
	size := 0

	var open, schemeOrEmailAtext, schemeInsideOrEmailAtext, urlInside State
	var emailAtext, emailAtSignOrDot, emailLabel, emailValue State

	open = func(code Code) State {
		if asciiAlpha(code) {
			tk.Consume(code)
			return schemeOrEmailAtext
		}
		if code == '@' {
			return nok(code)
		}
		return emailAtext(code)
	}

	schemeOrEmailAtext = func(code Code) State {
		if code == '+' || code == '-' || code == '.' || asciiAlphanumeric(code) {
			size = 1
			return schemeInsideOrEmailAtext(code)
		}
		return emailAtext(code)
	}

	schemeInsideOrEmailAtext = func(code Code) State {
		if code == ':' {
			tk.Consume(code)
			size = 0
			return urlInside
		}
		if (code == '+' || code == '-' || code == '.' || asciiAlphanumeric(code)) && size < autolinkSchemeSizeMax {
			size++
			tk.Consume(code)
			return schemeInsideOrEmailAtext
		}
		size = 0
		return emailAtext(code)
	}

	urlInside = func(code Code) State {
		if code == '>' {
			tk.Exit(TypeAutolinkProtocol)
			tk.Enter(TypeAutolinkMarker)
			tk.Consume(code)
			tk.Exit(TypeAutolinkMarker)
			tk.Exit(TypeAutolink)
			return ok
		}
		// EOF, line endings, controls, space, or `<` end the URL.
		if code < 0 || code == ' ' || code == '<' || asciiControl(code) {
			return nok(code)
		}
		tk.Consume(code)
		return urlInside
	}

	emailAtext = func(code Code) State {
		if code == '@' {
			tk.Consume(code)
			return emailAtSignOrDot
		}
		if asciiAtext(code) {
			tk.Consume(code)
			return emailAtext
		}
		return nok(code)
	}

	emailAtSignOrDot = func(code Code) State {
		if asciiAlphanumeric(code) {
			return emailLabel(code)
		}
		return nok(code)
	}

	emailLabel = func(code Code) State {
		if code == '.' {
			tk.Consume(code)
			size = 0
			return emailAtSignOrDot
		}
		if code == '>' {
			tk.Exit(TypeAutolinkProtocol).Type = TypeAutolinkEmail
			tk.Enter(TypeAutolinkMarker)
			tk.Consume(code)
			tk.Exit(TypeAutolinkMarker)
			tk.Exit(TypeAutolink)
			return ok
		}
		return emailValue(code)
	}

	emailValue = func(code Code) State {
		if (code == '-' || asciiAlphanumeric(code)) && size < autolinkDomainSizeMax {
			size++
			next := emailLabel
			if code == '-' {
				next = emailValue
			}
			tk.Consume(code)
			return next
		}
		return nok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeAutolink)
		tk.Enter(TypeAutolinkMarker)
		tk.Consume(code)
		tk.Exit(TypeAutolinkMarker)
		tk.Enter(TypeAutolinkProtocol)
		return open
	}
}
