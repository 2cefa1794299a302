package mark

import (
	"strconv"
	"strings"
)

// CompileOptions configure the HTML compiler.
type CompileOptions struct {
	// AllowDangerousHTML passes raw HTML through instead of encoding it.
	AllowDangerousHTML bool

	// AllowDangerousProtocol skips the protocol filter on link and image
	// URLs.
	AllowDangerousProtocol bool

	// DefaultLineEnding is used for line endings the compiler adds itself.
	// When empty, the first line ending in the document wins, then "\n".
	DefaultLineEnding string

	// Extensions add or override token handlers.
	Extensions []HTMLExtension
}

// Handler compiles one token event.
type Handler func(c *Compiler, token *Token)

// HTMLExtension maps token types to handlers. Later extensions win over
// earlier ones and over the defaults.
type HTMLExtension struct {
	Enter map[string]Handler
	Exit  map[string]Handler

	// DocumentStart and DocumentEnd run before the first and after the last
	// event.
	DocumentStart func(c *Compiler)
	DocumentEnd   func(c *Compiler)
}

type mediaInfo struct {
	image          bool
	labelID        string
	label          string
	referenceID    string
	destination    string
	hasDestination bool
	title          string
}

// Compiler turns a resolved event stream into an HTML string. Extension
// handlers drive it through its exported methods.
type Compiler struct {
	options CompileOptions

	enter map[string]Handler
	exit  map[string]Handler
	start []func(c *Compiler)
	end   []func(c *Compiler)

	tags            bool
	definitions     map[string]*mediaInfo
	buffers         []*strings.Builder
	mediaStack      []*mediaInfo
	tightStack      []bool
	lineEndingStyle string

	context *Tokenizer // tokenizer of the event being handled

	lastWasTag          bool
	expectFirstItem     bool
	slurpOneLineEnding  bool
	slurpAllLineEndings bool
	inCodeText          bool
	ignoreEncode        bool
	headingRank         int
	fencesCount         int
	hasFencesCount      bool
	flowCodeSeenData    bool

	// Extra is scratch space for extensions.
	Extra map[string]any
}

// NewCompiler creates a compiler with the CommonMark handlers plus the given
// extensions.
func NewCompiler(options CompileOptions) *Compiler {
	c := &Compiler{
		options:         options,
		tags:            true,
		definitions:     map[string]*mediaInfo{},
		lineEndingStyle: options.DefaultLineEnding,
		Extra:           map[string]any{},
	}
	c.enter = map[string]Handler{}
	c.exit = map[string]Handler{}
	for typ, handler := range defaultEnterHandlers {
		c.enter[typ] = handler
	}
	for typ, handler := range defaultExitHandlers {
		c.exit[typ] = handler
	}
	for _, extension := range options.Extensions {
		for typ, handler := range extension.Enter {
			c.enter[typ] = handler
		}
		for typ, handler := range extension.Exit {
			c.exit[typ] = handler
		}
		if extension.DocumentStart != nil {
			c.start = append(c.start, extension.DocumentStart)
		}
		if extension.DocumentEnd != nil {
			c.end = append(c.end, extension.DocumentEnd)
		}
	}
	return c
}

// Compile renders the events. The stream must be postprocessed: no tokens
// with a content type may remain.
func (c *Compiler) Compile(events []Event) string {
	c.buffers = []*strings.Builder{{}}

	// Prepass: pick up the line ending style, decide list tightness, and
	// move definitions to the front so late definitions resolve early
	// references.
	var listStack []int
	start := 0
	var head, body []Event

	for index := range events {
		token := events[index].Token

		if c.lineEndingStyle == "" && (token.Type == TypeLineEnding || token.Type == TypeLineEndingBlank) {
			c.lineEndingStyle = events[index].Context.SliceSerialize(token, false)
		}

		if token.Type == TypeListOrdered || token.Type == TypeListUnordered {
			if events[index].Kind == Enter {
				listStack = append(listStack, index)
			} else {
				top := listStack[len(listStack)-1]
				listStack = listStack[:len(listStack)-1]
				prepareList(events[top:index])
			}
		}

		if token.Type == TypeDefinition {
			if events[index].Kind == Enter {
				body = append(body, events[start:index]...)
				start = index
			} else {
				head = append(head, events[start:index+1]...)
				start = index + 1
			}
		}
	}

	head = append(head, body...)
	head = append(head, events[start:]...)

	for _, hook := range c.start {
		hook(c)
	}

	for index := range head {
		var handler Handler
		if head[index].Kind == Enter {
			handler = c.enter[head[index].Token.Type]
		} else {
			handler = c.exit[head[index].Token.Type]
		}
		if handler != nil {
			c.context = head[index].Context
			handler(c, head[index].Token)
		}
	}

	for _, hook := range c.end {
		hook(c)
	}

	return c.buffers[0].String()
}

// prepareList decides whether a list is loose: a blank line at the top level
// of the list, not directly after an item marker, makes it loose.
func prepareList(slice []Event) {
	containerBalance := 0
	loose := false
	atMarker := false

	for index := 1; index < len(slice); index++ {
		event := slice[index]
		if event.Token.Container {
			atMarker = false
			if event.Kind == Enter {
				containerBalance++
			} else {
				containerBalance--
			}
			continue
		}
		switch event.Token.Type {
		case TypeListItemPrefix:
			if event.Kind == Exit {
				atMarker = true
			}
		case TypeLinePrefix:
			// Ignore.
		case TypeLineEndingBlank:
			if event.Kind == Enter && containerBalance == 0 {
				if atMarker {
					atMarker = false
				} else {
					loose = true
				}
			}
		default:
			atMarker = false
		}
	}

	slice[0].Token.loose = loose
}

// Options returns the compile options, for extension handlers.
func (c *Compiler) Options() CompileOptions { return c.options }

// SliceSerialize returns the source text of a token in the event being
// handled.
func (c *Compiler) SliceSerialize(token *Token) string {
	return c.context.SliceSerialize(token, false)
}

// Buffer starts capturing output, until Resume.
func (c *Compiler) Buffer() {
	c.buffers = append(c.buffers, &strings.Builder{})
}

// Resume stops capturing and returns what was captured.
func (c *Compiler) Resume() string {
	last := c.buffers[len(c.buffers)-1]
	c.buffers = c.buffers[:len(c.buffers)-1]
	return last.String()
}

// Tag writes HTML markup. It is dropped inside image alternative text.
func (c *Compiler) Tag(value string) {
	if !c.tags {
		return
	}
	c.lastWasTag = true
	c.buffers[len(c.buffers)-1].WriteString(value)
}

// Raw writes content.
func (c *Compiler) Raw(value string) {
	c.lastWasTag = false
	c.buffers[len(c.buffers)-1].WriteString(value)
}

// LineEnding writes a line ending in the document's style.
func (c *Compiler) LineEnding() {
	style := c.lineEndingStyle
	if style == "" {
		style = "\n"
	}
	c.Raw(style)
}

// LineEndingIfNeeded writes a line ending unless the output is at a line
// start already.
func (c *Compiler) LineEndingIfNeeded() {
	current := c.buffers[len(c.buffers)-1].String()
	if current == "" {
		return
	}
	switch current[len(current)-1] {
	case '\n', '\r':
		return
	}
	c.LineEnding()
}

// Encode escapes a value for HTML output, unless raw HTML is being passed
// through.
func (c *Compiler) Encode(value string) string {
	if c.ignoreEncode {
		return value
	}
	return encode(value)
}

// SetExtra stores extension state on the compiler.
func (c *Compiler) SetExtra(key string, value any) { c.Extra[key] = value }

// GetExtra fetches extension state.
func (c *Compiler) GetExtra(key string) any { return c.Extra[key] }

// PushTight opens a container level; list and block quote content checks the
// top to decide whether paragraphs keep their tags.
func (c *Compiler) PushTight(tight bool) {
	c.tightStack = append(c.tightStack, tight)
}

// PopTight closes a container level.
func (c *Compiler) PopTight() {
	c.tightStack = c.tightStack[:len(c.tightStack)-1]
}

// SetSlurpAllLineEndings controls whether line endings are swallowed, as
// inside tight list content.
func (c *Compiler) SetSlurpAllLineEndings(slurp bool) { c.slurpAllLineEndings = slurp }

// SetSlurpOneLineEnding makes the compiler swallow the next line ending.
func (c *Compiler) SetSlurpOneLineEnding(slurp bool) { c.slurpOneLineEnding = slurp }

func (c *Compiler) currentMedia() *mediaInfo {
	return c.mediaStack[len(c.mediaStack)-1]
}

var defaultEnterHandlers = map[string]Handler{
	TypeBlockQuote: func(c *Compiler, _ *Token) {
		c.tightStack = append(c.tightStack, false)
		c.LineEndingIfNeeded()
		c.Tag("<blockquote>")
	},
	TypeCodeFenced: func(c *Compiler, _ *Token) {
		c.LineEndingIfNeeded()
		c.Tag("<pre><code")
		c.fencesCount = 0
		c.hasFencesCount = true
	},
	TypeCodeFencedFenceInfo: enterBuffer,
	TypeCodeFencedFenceMeta: enterBuffer,
	TypeCodeIndented: func(c *Compiler, _ *Token) {
		c.LineEndingIfNeeded()
		c.Tag("<pre><code>")
	},
	TypeCodeText: func(c *Compiler, _ *Token) {
		c.inCodeText = true
		c.Tag("<code>")
	},
	TypeContent: func(c *Compiler, _ *Token) {
		c.slurpAllLineEndings = true
	},
	TypeDefinition: func(c *Compiler, _ *Token) {
		c.Buffer()
		c.mediaStack = append(c.mediaStack, &mediaInfo{})
	},
	TypeDefinitionDestinationString: func(c *Compiler, _ *Token) {
		c.Buffer()
		c.ignoreEncode = true
	},
	TypeDefinitionLabelString: enterBuffer,
	TypeDefinitionTitleString: enterBuffer,
	TypeEmphasis: func(c *Compiler, _ *Token) {
		c.Tag("<em>")
	},
	TypeHTMLFlow: func(c *Compiler, _ *Token) {
		c.LineEndingIfNeeded()
		if c.options.AllowDangerousHTML {
			c.ignoreEncode = true
		}
	},
	TypeHTMLText: func(c *Compiler, _ *Token) {
		if c.options.AllowDangerousHTML {
			c.ignoreEncode = true
		}
	},
	TypeImage: func(c *Compiler, _ *Token) {
		c.mediaStack = append(c.mediaStack, &mediaInfo{image: true})
		c.tags = false // Tags are not allowed in alternative text.
	},
	TypeLabel: enterBuffer,
	TypeLink: func(c *Compiler, _ *Token) {
		c.mediaStack = append(c.mediaStack, &mediaInfo{})
	},
	TypeListItemMarker: func(c *Compiler, _ *Token) {
		if c.expectFirstItem {
			c.Tag(">")
		} else {
			c.exitListItem()
		}
		c.LineEndingIfNeeded()
		c.Tag("<li>")
		c.expectFirstItem = false
		// No line ending when the item turns out empty.
		c.lastWasTag = false
	},
	TypeListItemValue: func(c *Compiler, token *Token) {
		if c.expectFirstItem {
			value, _ := strconv.Atoi(c.SliceSerialize(token))
			if value != 1 {
				c.Tag(` start="` + strconv.Itoa(value) + `"`)
			}
		}
	},
	TypeListOrdered: func(c *Compiler, token *Token) {
		c.tightStack = append(c.tightStack, !token.loose)
		c.LineEndingIfNeeded()
		c.Tag("<ol")
		c.expectFirstItem = true
	},
	TypeListUnordered: func(c *Compiler, token *Token) {
		c.tightStack = append(c.tightStack, !token.loose)
		c.LineEndingIfNeeded()
		c.Tag("<ul")
		c.expectFirstItem = true
	},
	TypeParagraph: func(c *Compiler, _ *Token) {
		if len(c.tightStack) == 0 || !c.tightStack[len(c.tightStack)-1] {
			c.LineEndingIfNeeded()
			c.Tag("<p>")
		}
		c.slurpAllLineEndings = false
	},
	TypeReference: enterBuffer,
	TypeResource: func(c *Compiler, _ *Token) {
		c.Buffer() // Swallow line endings in the resource.
		media := c.currentMedia()
		media.destination = ""
		media.hasDestination = true
	},
	TypeResourceDestinationString: func(c *Compiler, _ *Token) {
		c.Buffer()
		c.ignoreEncode = true
	},
	TypeResourceTitleString: enterBuffer,
	TypeSetextHeading: func(c *Compiler, _ *Token) {
		c.Buffer()
		c.slurpAllLineEndings = false
	},
	TypeStrong: func(c *Compiler, _ *Token) {
		c.Tag("<strong>")
	},
}

var defaultExitHandlers = map[string]Handler{
	TypeAtxHeading: func(c *Compiler, _ *Token) {
		c.Tag("</h" + strconv.Itoa(c.headingRank) + ">")
		c.headingRank = 0
	},
	TypeAtxHeadingSequence: func(c *Compiler, token *Token) {
		// Exit for further sequences.
		if c.headingRank != 0 {
			return
		}
		c.headingRank = len(c.SliceSerialize(token))
		c.LineEndingIfNeeded()
		c.Tag("<h" + strconv.Itoa(c.headingRank) + ">")
	},
	TypeAutolinkEmail: func(c *Compiler, token *Token) {
		uri := c.SliceSerialize(token)
		c.Tag(`<a href="` + SanitizeURI("mailto:"+uri, nil) + `">`)
		c.Raw(c.Encode(uri))
		c.Tag("</a>")
	},
	TypeAutolinkProtocol: func(c *Compiler, token *Token) {
		uri := c.SliceSerialize(token)
		protocol := ProtocolHref
		if c.options.AllowDangerousProtocol {
			protocol = nil
		}
		c.Tag(`<a href="` + SanitizeURI(uri, protocol) + `">`)
		c.Raw(c.Encode(uri))
		c.Tag("</a>")
	},
	TypeBlockQuote: func(c *Compiler, _ *Token) {
		c.tightStack = c.tightStack[:len(c.tightStack)-1]
		c.LineEndingIfNeeded()
		c.Tag("</blockquote>")
		c.slurpAllLineEndings = false
	},
	TypeCharacterEscapeValue: exitData,
	TypeCharacterReferenceMarkerHexadecimal: exitCharacterReferenceMarker,
	TypeCharacterReferenceMarkerNumeric:     exitCharacterReferenceMarker,
	TypeCharacterReferenceValue: func(c *Compiler, token *Token) {
		value := c.SliceSerialize(token)
		var result string
		switch c.Extra["characterReferenceType"] {
		case TypeCharacterReferenceMarkerNumeric:
			result = DecodeNumericCharacterReference(value, 10)
			delete(c.Extra, "characterReferenceType")
		case TypeCharacterReferenceMarkerHexadecimal:
			result = DecodeNumericCharacterReference(value, 16)
			delete(c.Extra, "characterReferenceType")
		default:
			result, _ = DecodeNamedCharacterReference(value)
		}
		c.Raw(c.Encode(result))
	},
	TypeCodeFenced:   exitFlowCode,
	TypeCodeIndented: exitFlowCode,
	TypeCodeFencedFence: func(c *Compiler, _ *Token) {
		if c.fencesCount == 0 {
			c.Tag(">")
			c.slurpOneLineEnding = true
		}
		c.fencesCount++
	},
	TypeCodeFencedFenceInfo: func(c *Compiler, _ *Token) {
		c.Tag(` class="language-` + c.Resume() + `"`)
	},
	TypeCodeFencedFenceMeta: exitResume,
	TypeCodeFlowValue: func(c *Compiler, token *Token) {
		c.Raw(c.Encode(c.SliceSerialize(token)))
		c.flowCodeSeenData = true
	},
	TypeCodeText: func(c *Compiler, _ *Token) {
		c.inCodeText = false
		c.Tag("</code>")
	},
	TypeCodeTextData: exitData,
	TypeData:         exitData,
	TypeDefinition: func(c *Compiler, _ *Token) {
		media := c.currentMedia()
		id := NormalizeIdentifier(media.labelID)
		c.Resume()
		if _, ok := c.definitions[id]; !ok {
			c.definitions[id] = media
		}
		c.mediaStack = c.mediaStack[:len(c.mediaStack)-1]
	},
	TypeDefinitionDestinationString: func(c *Compiler, _ *Token) {
		c.currentMedia().destination = c.Resume()
		c.currentMedia().hasDestination = true
		c.ignoreEncode = false
	},
	TypeDefinitionLabelString: func(c *Compiler, token *Token) {
		// Discard the rendered label; the source text is the identifier.
		c.Resume()
		c.currentMedia().labelID = c.SliceSerialize(token)
	},
	TypeDefinitionTitleString: func(c *Compiler, _ *Token) {
		c.currentMedia().title = c.Resume()
	},
	TypeEmphasis: func(c *Compiler, _ *Token) {
		c.Tag("</em>")
	},
	TypeHardBreakEscape:   exitHardBreak,
	TypeHardBreakTrailing: exitHardBreak,
	TypeHTMLFlow:          exitHTML,
	TypeHTMLFlowData:      exitData,
	TypeHTMLText:          exitHTML,
	TypeHTMLTextData:      exitData,
	TypeImage:             exitMedia,
	TypeLabel: func(c *Compiler, _ *Token) {
		c.currentMedia().label = c.Resume()
	},
	TypeLabelText: func(c *Compiler, token *Token) {
		c.currentMedia().labelID = c.SliceSerialize(token)
	},
	TypeLineEnding: func(c *Compiler, token *Token) {
		if c.slurpAllLineEndings {
			return
		}
		if c.slurpOneLineEnding {
			c.slurpOneLineEnding = false
			return
		}
		if c.inCodeText {
			c.Raw(" ")
			return
		}
		c.Raw(c.Encode(c.SliceSerialize(token)))
	},
	TypeLink: exitMedia,
	TypeListOrdered: func(c *Compiler, _ *Token) {
		c.exitListItem()
		c.tightStack = c.tightStack[:len(c.tightStack)-1]
		c.LineEnding()
		c.Tag("</ol>")
	},
	TypeListUnordered: func(c *Compiler, _ *Token) {
		c.exitListItem()
		c.tightStack = c.tightStack[:len(c.tightStack)-1]
		c.LineEnding()
		c.Tag("</ul>")
	},
	TypeParagraph: func(c *Compiler, _ *Token) {
		if len(c.tightStack) > 0 && c.tightStack[len(c.tightStack)-1] {
			c.slurpAllLineEndings = true
		} else {
			c.Tag("</p>")
		}
	},
	TypeReference: exitResume,
	TypeReferenceString: func(c *Compiler, token *Token) {
		c.currentMedia().referenceID = c.SliceSerialize(token)
	},
	TypeResource: exitResume,
	TypeResourceDestinationString: func(c *Compiler, _ *Token) {
		c.currentMedia().destination = c.Resume()
		c.ignoreEncode = false
	},
	TypeResourceTitleString: func(c *Compiler, _ *Token) {
		c.currentMedia().title = c.Resume()
	},
	TypeSetextHeading: func(c *Compiler, _ *Token) {
		value := c.Resume()
		c.LineEndingIfNeeded()
		c.Tag("<h" + strconv.Itoa(c.headingRank) + ">")
		c.Raw(value)
		c.Tag("</h" + strconv.Itoa(c.headingRank) + ">")
		c.slurpAllLineEndings = false
		c.headingRank = 0
	},
	TypeSetextHeadingLineSequence: func(c *Compiler, token *Token) {
		if c.SliceSerialize(token)[0] == '=' {
			c.headingRank = 1
		} else {
			c.headingRank = 2
		}
	},
	TypeSetextHeadingText: func(c *Compiler, _ *Token) {
		c.slurpAllLineEndings = true
	},
	TypeStrong: func(c *Compiler, _ *Token) {
		c.Tag("</strong>")
	},
	TypeThematicBreak: func(c *Compiler, _ *Token) {
		c.LineEndingIfNeeded()
		c.Tag("<hr />")
	},
}

func enterBuffer(c *Compiler, _ *Token) { c.Buffer() }

func exitResume(c *Compiler, _ *Token) { c.Resume() }

func exitData(c *Compiler, token *Token) {
	c.Raw(c.Encode(c.SliceSerialize(token)))
}

func exitHardBreak(c *Compiler, _ *Token) { c.Tag("<br />") }

func exitHTML(c *Compiler, _ *Token) { c.ignoreEncode = false }

func exitCharacterReferenceMarker(c *Compiler, token *Token) {
	c.Extra["characterReferenceType"] = token.Type
}

func exitFlowCode(c *Compiler, _ *Token) {
	// A fenced block left unclosed inside a container: the final line
	// ending belongs to the code.
	if c.hasFencesCount && c.fencesCount < 2 && len(c.tightStack) > 0 && !c.lastWasTag {
		c.LineEnding()
	}
	if c.flowCodeSeenData {
		c.LineEndingIfNeeded()
	}
	c.Tag("</code></pre>")
	if c.hasFencesCount && c.fencesCount < 2 {
		c.LineEndingIfNeeded()
	}
	c.flowCodeSeenData = false
	c.fencesCount = 0
	c.hasFencesCount = false
	c.slurpOneLineEnding = false
}

func (c *Compiler) exitListItem() {
	if c.lastWasTag && !c.slurpAllLineEndings {
		c.LineEndingIfNeeded()
	}
	c.Tag("</li>")
	c.slurpAllLineEndings = false
}

func exitMedia(c *Compiler, _ *Token) {
	index := len(c.mediaStack) - 1
	media := c.mediaStack[index]

	id := media.referenceID
	if id == "" {
		id = media.labelID
	}
	resolved := media
	if !media.hasDestination {
		resolved = c.definitions[NormalizeIdentifier(id)]
	}

	// Tags were disallowed while inside alternative text; allow them again
	// unless an image is still open further down.
	c.tags = true
	for index--; index >= 0; index-- {
		if c.mediaStack[index].image {
			c.tags = false
			break
		}
	}

	protocol := ProtocolHref
	if media.image {
		protocol = ProtocolSrc
	}
	if c.options.AllowDangerousProtocol {
		protocol = nil
	}

	destination := ""
	title := ""
	if resolved != nil {
		destination = resolved.destination
		title = resolved.title
	}

	if media.image {
		c.Tag(`<img src="` + SanitizeURI(destination, protocol) + `" alt="`)
		c.Raw(media.label)
		c.Tag(`"`)
	} else {
		c.Tag(`<a href="` + SanitizeURI(destination, protocol) + `"`)
	}
	if title != "" {
		c.Tag(` title="` + title + `"`)
	}
	if media.image {
		c.Tag(" />")
	} else {
		c.Tag(">")
		c.Raw(media.label)
		c.Tag("</a>")
	}

	c.mediaStack = c.mediaStack[:len(c.mediaStack)-1]
}
