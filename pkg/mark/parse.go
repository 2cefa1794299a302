package mark

// Constructs holds the construct tables a parser dispatches on, keyed by the
// code a construct starts with, plus the lists that resolvers and attention
// need. Extensions merge into a copy of the defaults.
type Constructs struct {
	Document       ConstructRecord
	ContentInitial ConstructRecord
	FlowInitial    ConstructRecord
	Flow           ConstructRecord
	String         ConstructRecord
	Text           ConstructRecord

	// InsideSpan is resolved over the text inside media and attention.
	InsideSpan []*Construct

	// AttentionMarkers can open or close attention even next to punctuation.
	AttentionMarkers []Code

	// Disable lists construct names that must not run.
	Disable []string

	// HiddenFootnoteSupport is turned on by footnote extensions so that core
	// label parsing leaves `[^` alone.
	HiddenFootnoteSupport bool
}

// Extension is a set of constructs to merge into the defaults. The zero
// value changes nothing.
type Extension struct {
	Document       ConstructRecord
	ContentInitial ConstructRecord
	FlowInitial    ConstructRecord
	Flow           ConstructRecord
	String         ConstructRecord
	Text           ConstructRecord

	InsideSpan       []*Construct
	AttentionMarkers []Code
	Disable          []string

	HiddenFootnoteSupport bool
}

// Parser ties the construct tables to the tokenizer factories and owns the
// cross-tokenizer state: defined identifiers and lazy lines.
type Parser struct {
	Constructs *Constructs

	// Defined records the normalized identifiers of parsed definitions.
	Defined []string

	// Lazy marks document lines that continue a container without its
	// markers.
	Lazy map[int]bool

	// Extra holds extension-defined parse state (footnote identifiers).
	Extra map[string]any
}

// NewParser creates a parser with the CommonMark constructs plus the given
// extensions, applied in order.
func NewParser(extensions ...Extension) *Parser {
	constructs := defaultConstructs()
	for _, extension := range extensions {
		constructs.merge(extension)
	}
	return &Parser{
		Constructs: constructs,
		Lazy:       map[int]bool{},
		Extra:      map[string]any{},
	}
}

// Document creates the outermost tokenizer.
func (p *Parser) Document(from Point) *Tokenizer {
	return newTokenizer(p, documentInitializer, from)
}

// Flow creates a tokenizer for block content.
func (p *Parser) Flow(from Point) *Tokenizer {
	return newTokenizer(p, flowInitializer, from)
}

// Content creates a tokenizer for definitions-then-paragraph content.
func (p *Parser) Content(from Point) *Tokenizer {
	return newTokenizer(p, contentInitializer, from)
}

// Text creates a tokenizer for rich inline content.
func (p *Parser) Text(from Point) *Tokenizer {
	return newTokenizer(p, textInitializer, from)
}

// String creates a tokenizer for restricted inline content (destinations,
// titles), where only character references and escapes apply.
func (p *Parser) String(from Point) *Tokenizer {
	return newTokenizer(p, stringInitializer, from)
}

// tokenizerFor creates the sub-tokenizer for a content type.
func (p *Parser) tokenizerFor(contentType ContentType, from Point) *Tokenizer {
	switch contentType {
	case ContentTypeDocument:
		return p.Document(from)
	case ContentTypeFlow:
		return p.Flow(from)
	case ContentTypeContent:
		return p.Content(from)
	case ContentTypeString:
		return p.String(from)
	default:
		return p.Text(from)
	}
}

func defaultConstructs() *Constructs {
	return &Constructs{
		Document: ConstructRecord{
			'*': {list},
			'+': {list},
			'-': {list},
			'0': {list}, '1': {list}, '2': {list}, '3': {list}, '4': {list},
			'5': {list}, '6': {list}, '7': {list}, '8': {list}, '9': {list},
			'>': {blockQuote},
		},
		ContentInitial: ConstructRecord{
			'[': {definition},
		},
		FlowInitial: ConstructRecord{
			CodeHT: {codeIndented},
			CodeVS: {codeIndented},
			' ':    {codeIndented},
		},
		Flow: ConstructRecord{
			'#': {headingAtx},
			'*': {thematicBreak},
			'-': {setextUnderline, thematicBreak},
			'<': {htmlFlow},
			'=': {setextUnderline},
			'_': {thematicBreak},
			'`': {codeFenced},
			'~': {codeFenced},
		},
		String: ConstructRecord{
			'&':  {characterReference},
			'\\': {characterEscape},
		},
		Text: ConstructRecord{
			CodeCR:   {lineEnding},
			CodeLF:   {lineEnding},
			CodeCRLF: {lineEnding},
			'!':      {labelStartImage},
			'&':      {characterReference},
			'*':      {attention},
			'<':      {autolink, htmlText},
			'[':      {labelStartLink},
			'\\':     {hardBreakEscape, characterEscape},
			']':      {labelEnd},
			'_':      {attention},
			'`':      {codeText},
		},
		InsideSpan:       []*Construct{attention, dataResolver},
		AttentionMarkers: []Code{'*', '_'},
	}
}

// merge folds an extension into the constructs, in place. New constructs for
// a code run before existing ones unless they ask to be added after.
func (c *Constructs) merge(extension Extension) {
	mergeRecord(&c.Document, extension.Document)
	mergeRecord(&c.ContentInitial, extension.ContentInitial)
	mergeRecord(&c.FlowInitial, extension.FlowInitial)
	mergeRecord(&c.Flow, extension.Flow)
	mergeRecord(&c.String, extension.String)
	mergeRecord(&c.Text, extension.Text)

	c.InsideSpan = append(c.InsideSpan, extension.InsideSpan...)
	c.AttentionMarkers = append(c.AttentionMarkers, extension.AttentionMarkers...)
	c.Disable = append(c.Disable, extension.Disable...)

	if extension.HiddenFootnoteSupport {
		c.HiddenFootnoteSupport = true
	}
}

func mergeRecord(into *ConstructRecord, from ConstructRecord) {
	if len(from) == 0 {
		return
	}
	if *into == nil {
		*into = ConstructRecord{}
	}
	for code, additions := range from {
		existing := (*into)[code]
		var before ConstructList
		for _, construct := range additions {
			if construct.Add == "after" {
				existing = append(existing, construct)
			} else {
				before = append(before, construct)
			}
		}
		(*into)[code] = append(before, existing...)
	}
}
