package mark

var characterReference = &Construct{Name: "characterReference", Tokenize: tokenizeCharacterReference}

type referenceKind int

const (
	referenceNamed referenceKind = iota
	referenceDecimal
	referenceHexadecimal
)

func tokenizeCharacterReference(tk *Tokenizer, ok, nok State) State {
	size := 0
	max := 0
	kind := referenceNamed

	var open, numeric, value State

	open = func(code Code) State {
		if code == '#' {
			tk.Enter(TypeCharacterReferenceMarkerNumeric)
			tk.Consume(code)
			tk.Exit(TypeCharacterReferenceMarkerNumeric)
			return numeric
		}
		tk.Enter(TypeCharacterReferenceValue)
		max = characterReferenceNamedSizeMax
		kind = referenceNamed
		return value(code)
	}

	numeric = func(code Code) State {
		if code == 'X' || code == 'x' {
			tk.Enter(TypeCharacterReferenceMarkerHexadecimal)
			tk.Consume(code)
			tk.Exit(TypeCharacterReferenceMarkerHexadecimal)
			tk.Enter(TypeCharacterReferenceValue)
			max = characterReferenceHexadecimalSizeMax
			kind = referenceHexadecimal
			return value
		}
		tk.Enter(TypeCharacterReferenceValue)
		max = characterReferenceDecimalSizeMax
		kind = referenceDecimal
		return value(code)
	}

	value = func(code Code) State {
		if code == ';' && size > 0 {
			token := tk.Exit(TypeCharacterReferenceValue)
			if kind == referenceNamed {
				if _, found := DecodeNamedCharacterReference(tk.SliceSerialize(token, false)); !found {
					return nok(code)
				}
			}
			tk.Enter(TypeCharacterReferenceMarker)
			tk.Consume(code)
			tk.Exit(TypeCharacterReferenceMarker)
			tk.Exit(TypeCharacterReference)
			return ok
		}

		test := asciiAlphanumeric
		switch kind {
		case referenceDecimal:
			test = asciiDigit
		case referenceHexadecimal:
			test = asciiHexDigit
		}
		if test(code) && size < max {
			size++
			tk.Consume(code)
			return value
		}
		return nok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeCharacterReference)
		tk.Enter(TypeCharacterReferenceMarker)
		tk.Consume(code)
		tk.Exit(TypeCharacterReferenceMarker)
		return open
	}
}
