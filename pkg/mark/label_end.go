package mark

var labelEnd = &Construct{
	Name:       "labelEnd",
	Tokenize:   tokenizeLabelEnd,
	ResolveTo:  resolveToLabelEnd,
	ResolveAll: resolveAllLabelEnd,
}

var resource = &Construct{Tokenize: tokenizeResource}
var referenceFull = &Construct{Tokenize: tokenizeReferenceFull}
var referenceCollapsed = &Construct{Tokenize: tokenizeReferenceCollapsed}

// resolveAllLabelEnd turns label starts and ends that never formed media
// into plain data, dropping their marker events.
func resolveAllLabelEnd(events []Event, _ *Tokenizer) []Event {
	for index := 0; index < len(events); index++ {
		token := events[index].Token
		if token.Type == TypeLabelImage || token.Type == TypeLabelLink || token.Type == TypeLabelEnd {
			remove := 2
			if token.Type == TypeLabelImage {
				remove = 4
			}
			events = append(events[:index+1], events[index+1+remove:]...)
			token.Type = TypeData
			index++
		}
	}
	return events
}

// resolveToLabelEnd rewrites everything from the matching label start through
// the label end (and its resource or reference) into a link or image.
func resolveToLabelEnd(events []Event, context *Tokenizer) []Event {
	index := len(events)
	offset := 0
	open := -1
	close := -1

	for index > 0 {
		index--
		token := events[index].Token
		if open >= 0 {
			// Another link, or inactive link label: we have been here before.
			if token.Type == TypeLink || (token.Type == TypeLabelLink && token.Inactive) {
				break
			}
			// Mark other link openings as inactive: no links in links.
			if events[index].Kind == Enter && token.Type == TypeLabelLink {
				token.Inactive = true
			}
		} else if close >= 0 {
			if events[index].Kind == Enter &&
				(token.Type == TypeLabelImage || token.Type == TypeLabelLink) &&
				!token.Balanced {
				open = index
				if token.Type != TypeLabelLink {
					offset = 2
					break
				}
			}
		} else if token.Type == TypeLabelEnd {
			close = index
		}
	}

	groupType := TypeImage
	if events[open].Token.Type == TypeLabelLink {
		groupType = TypeLink
	}
	group := &Token{
		Type:  groupType,
		Start: events[open].Token.Start,
		End:   events[len(events)-1].Token.End,
	}
	label := &Token{
		Type:  TypeLabel,
		Start: events[open].Token.Start,
		End:   events[close].Token.End,
	}
	text := &Token{
		Type:  TypeLabelText,
		Start: events[open+offset+2].Token.End,
		End:   events[close-2].Token.Start,
	}

	media := []Event{
		{Kind: Enter, Token: group, Context: context},
		{Kind: Enter, Token: label, Context: context},
	}

	// Opening marker(s).
	media = append(media, events[open+1:open+offset+3]...)
	media = append(media, Event{Kind: Enter, Token: text, Context: context})

	// Text between the markers gets its span constructs resolved now.
	between := make([]Event, close-3-(open+offset+4))
	copy(between, events[open+offset+4:close-3])
	media = append(media, ResolveAll(context.parser.Constructs.InsideSpan, between, context)...)

	media = append(media,
		Event{Kind: Exit, Token: text, Context: context},
		events[close-2],
		events[close-1],
		Event{Kind: Exit, Token: label, Context: context},
	)

	// Reference or resource.
	media = append(media, events[close+1:]...)
	media = append(media, Event{Kind: Exit, Token: group, Context: context})

	return SpliceEvents(events, open, len(events)-open, media)
}

func tokenizeLabelEnd(tk *Tokenizer, ok, nok State) State {
	var labelStart *Token
	defined := false

	index := len(tk.events)
	for index > 0 {
		index--
		token := tk.events[index].Token
		if (token.Type == TypeLabelImage || token.Type == TypeLabelLink) && !token.Balanced {
			labelStart = token
			break
		}
	}

	var after, referenceNotFull, labelEndOk, labelEndNok State

	after = func(code Code) State {
		// Resource: `[text](destination "title")`.
		if code == '(' {
			fallback := labelEndNok
			if defined {
				fallback = labelEndOk
			}
			return tk.Attempt(resource, labelEndOk, fallback)(code)
		}
		// Full (`[text][label]`) or collapsed (`[text][]`) reference.
		if code == '[' {
			fallback := labelEndNok
			if defined {
				fallback = referenceNotFull
			}
			return tk.Attempt(referenceFull, labelEndOk, fallback)(code)
		}
		// Shortcut reference: `[text]`.
		if defined {
			return labelEndOk(code)
		}
		return labelEndNok(code)
	}

	referenceNotFull = func(code Code) State {
		return tk.Attempt(referenceCollapsed, labelEndOk, labelEndNok)(code)
	}

	labelEndOk = func(code Code) State {
		return ok(code)
	}

	labelEndNok = func(code Code) State {
		labelStart.Balanced = true
		return nok(code)
	}

	return func(code Code) State {
		if labelStart == nil {
			return nok(code)
		}
		// An inactive start means we would wrap a link in a link.
		if labelStart.Inactive {
			return labelEndNok(code)
		}
		defined = contains(tk.parser.Defined, NormalizeIdentifier(
			tk.SliceSerialize(&Token{Start: labelStart.End, End: tk.Now()}, false)))
		tk.Enter(TypeLabelEnd)
		tk.Enter(TypeLabelMarker)
		tk.Consume(code)
		tk.Exit(TypeLabelMarker)
		tk.Exit(TypeLabelEnd)
		return after
	}
}

func tokenizeResource(tk *Tokenizer, ok, nok State) State {
	var resourceBefore, resourceOpen, destinationAfter, between, titleAfter, resourceEnd State

	resourceBefore = func(code Code) State {
		if markdownLineEndingOrSpace(code) {
			return factoryWhitespace(tk, resourceOpen)(code)
		}
		return resourceOpen(code)
	}

	resourceOpen = func(code Code) State {
		if code == ')' {
			return resourceEnd(code)
		}
		return factoryDestination(tk, destinationAfter, nok,
			TypeResourceDestination,
			TypeResourceDestinationLiteral,
			TypeResourceDestinationLiteralMarker,
			TypeResourceDestinationRaw,
			TypeResourceDestinationString,
			linkResourceDestinationBalanceMax)(code)
	}

	destinationAfter = func(code Code) State {
		if markdownLineEndingOrSpace(code) {
			return factoryWhitespace(tk, between)(code)
		}
		return resourceEnd(code)
	}

	between = func(code Code) State {
		if code == '"' || code == '\'' || code == '(' {
			return factoryTitle(tk, titleAfter, nok,
				TypeResourceTitle, TypeResourceTitleMarker, TypeResourceTitleString)(code)
		}
		return resourceEnd(code)
	}

	titleAfter = func(code Code) State {
		if markdownLineEndingOrSpace(code) {
			return factoryWhitespace(tk, resourceEnd)(code)
		}
		return resourceEnd(code)
	}

	resourceEnd = func(code Code) State {
		if code == ')' {
			tk.Enter(TypeResourceMarker)
			tk.Consume(code)
			tk.Exit(TypeResourceMarker)
			tk.Exit(TypeResource)
			return ok
		}
		return nok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeResource)
		tk.Enter(TypeResourceMarker)
		tk.Consume(code)
		tk.Exit(TypeResourceMarker)
		return resourceBefore
	}
}

func tokenizeReferenceFull(tk *Tokenizer, ok, nok State) State {
	afterLabel := func(code Code) State {
		label := tk.SliceSerialize(tk.events[len(tk.events)-1].Token, false)
		if contains(tk.parser.Defined, NormalizeIdentifier(label[1:len(label)-1])) {
			return ok(code)
		}
		return nok(code)
	}

	return func(code Code) State {
		return factoryLabel(tk, afterLabel, nok,
			TypeReference, TypeReferenceMarker, TypeReferenceString)(code)
	}
}

func tokenizeReferenceCollapsed(tk *Tokenizer, ok, nok State) State {
	open := func(code Code) State {
		if code == ']' {
			tk.Enter(TypeReferenceMarker)
			tk.Consume(code)
			tk.Exit(TypeReferenceMarker)
			tk.Exit(TypeReference)
			return ok
		}
		return nok(code)
	}

	return func(code Code) State {
		tk.Enter(TypeReference)
		tk.Enter(TypeReferenceMarker)
		tk.Consume(code)
		tk.Exit(TypeReferenceMarker)
		return open
	}
}
