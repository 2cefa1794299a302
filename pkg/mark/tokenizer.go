package mark

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// State is one step of a construct's state machine. It receives the current
// code and returns the next state. The driver loop feeds codes one at a time,
// so arbitrarily long documents never grow the call stack.
type State func(code Code) State

// Resolver rewrites a slice of events after tokenization.
type Resolver func(events []Event, context *Tokenizer) []Event

// Construct is a named state machine for one markdown rule.
type Construct struct {
	Name string

	// Tokenize returns the construct's initial state. It must eventually
	// call ok on success or nok on failure; attempts restore the tokenizer
	// on nok, so failing is cheap and side-effect free.
	Tokenize func(tk *Tokenizer, ok, nok State) State

	// Resolve rewrites just this construct's own consumed events.
	Resolve Resolver
	// ResolveTo rewrites the entire event stream; used when a later token
	// retroactively restructures earlier ones (label end forming a link).
	ResolveTo Resolver
	// ResolveAll runs once per tokenizer run, after end of input, across all
	// matched instances (attention pairing).
	ResolveAll Resolver

	// Previous, when set, guards dispatch on the previously consumed code.
	Previous func(tk *Tokenizer, code Code) bool

	// Continuation and Exit serve container constructs: Continuation is
	// attempted on every later line, Exit runs when the container closes.
	Continuation *Construct
	Exit         func(tk *Tokenizer)

	// Partial constructs are helpers, not document-level constructs; they do
	// not become the tokenizer's current construct.
	Partial bool
	// Concrete flow content (fenced code) cannot be pierced by new
	// containers.
	Concrete bool

	// Add controls merge order when this construct joins an existing
	// candidate list through an extension: "before" (default) or "after".
	Add string
}

// ConstructList is an ordered list of candidate constructs.
type ConstructList []*Construct

// ConstructRecord maps a code to the candidate constructs for it. Candidates
// under the specific code run first, in order, then candidates under CodeAny.
// Declaration order is load-bearing: the first construct to succeed wins.
type ConstructRecord map[Code]ConstructList

// Attemptable is anything that can supply candidate constructs for a code:
// a single *Construct, a ConstructList, or a ConstructRecord.
type Attemptable interface {
	candidates(code Code) ConstructList
}

func (c *Construct) candidates(Code) ConstructList { return ConstructList{c} }

func (l ConstructList) candidates(Code) ConstructList { return l }

func (r ConstructRecord) candidates(code Code) ConstructList {
	if code == CodeEOF {
		return nil
	}
	specific := r[code]
	wildcard := r[CodeAny]
	if len(wildcard) == 0 {
		return specific
	}
	out := make(ConstructList, 0, len(specific)+len(wildcard))
	out = append(out, specific...)
	out = append(out, wildcard...)
	return out
}

// ContainerState is the per-container mutable state shared between a
// container construct's opening, continuation, and exit.
type ContainerState struct {
	Open              bool
	Marker            Code
	Type              string
	Size              int
	InitialBlankLine  bool
	FurtherBlankLines bool

	closeFlow bool
}

// Tokenizer drives one construct state machine over a chunk stream and
// records the resulting events. It doubles as the context handed to
// constructs: entering and exiting tokens, consuming codes, and attempting
// sub-constructs all go through its methods.
type Tokenizer struct {
	parser     *Parser
	initialize *Construct

	state    State
	events   []Event
	stack    []*Token
	chunks   []Chunk
	point    Point
	previous Code
	consumed bool

	currentConstruct *Construct
	resolveAllList   []*Construct
	columnStart      map[int]int

	// ContainerState is owned by the document tokenizer while matching or
	// opening a container.
	ContainerState *ContainerState

	// Interrupt is set while a block construct is testing whether it may
	// interrupt an open paragraph.
	Interrupt bool

	// DynamicInterrupt is set by constructs that decide interruption
	// dynamically instead of through Interrupt (tables).
	DynamicInterrupt bool

	// InFirstContentOfListItem is set while sub-tokenizing the first
	// content chunk of a list item.
	InFirstContentOfListItem bool
}

// newTokenizer creates a tokenizer for the given initial construct, starting
// at from (or line 1, column 1 when zero).
func newTokenizer(parser *Parser, initialize *Construct, from Point) *Tokenizer {
	if from.Line == 0 {
		from = Point{Line: 1, Column: 1}
	}
	from.bufferIndex = -1
	from.index = 0
	tk := &Tokenizer{
		parser:      parser,
		initialize:  initialize,
		point:       from,
		previous:    CodeEOF,
		consumed:    true,
		columnStart: map[int]int{},
	}
	tk.state = initialize.Tokenize(tk, nil, nil)
	if initialize.ResolveAll != nil {
		tk.resolveAllList = append(tk.resolveAllList, initialize)
	}
	return tk
}

// Parser returns the shared parser this tokenizer belongs to.
func (tk *Tokenizer) Parser() *Parser { return tk.parser }

// Events returns the live event stream built so far.
func (tk *Tokenizer) Events() []Event { return tk.events }

// PreviousCode returns the last consumed code.
func (tk *Tokenizer) PreviousCode() Code { return tk.previous }

// CurrentConstruct returns the construct currently (or last) being matched.
func (tk *Tokenizer) CurrentConstruct() *Construct { return tk.currentConstruct }

// Write feeds chunks into the state machine and returns the fully resolved
// events once the end-of-input chunk has been written, or nil before that.
func (tk *Tokenizer) Write(chunks []Chunk) []Event {
	tk.chunks = append(tk.chunks, chunks...)
	tk.main()

	if len(tk.chunks) == 0 || tk.chunks[len(tk.chunks)-1] != codeChunk(CodeEOF) {
		// Exit if not done, resolvers might change the output.
		return nil
	}

	tk.addResult(tk.initialize, 0)
	tk.events = ResolveAll(tk.resolveAllList, tk.events, tk)
	return tk.events
}

// main runs the driver loop: feed one code at a time to the current state.
func (tk *Tokenizer) main() {
	for tk.point.index < len(tk.chunks) {
		chunk := tk.chunks[tk.point.index]
		if chunk.isText() {
			chunkIndex := tk.point.index
			if tk.point.bufferIndex < 0 {
				tk.point.bufferIndex = 0
			}
			for tk.point.index == chunkIndex && tk.point.bufferIndex < len(chunk.Value) {
				r, _ := utf8.DecodeRuneInString(chunk.Value[tk.point.bufferIndex:])
				tk.step(Code(r))
			}
		} else {
			tk.step(chunk.Code)
		}
	}
}

func (tk *Tokenizer) step(code Code) {
	tk.consumed = false
	tk.state = tk.state(code)
}

// Consume accepts the current code, advancing the point.
func (tk *Tokenizer) Consume(code Code) {
	if tk.consumed {
		panic("tokenizer: already consumed the current code")
	}
	if markdownLineEnding(code) {
		tk.point.Line++
		tk.point.Column = 1
		if code == CodeCRLF {
			tk.point.Offset += 2
		} else {
			tk.point.Offset++
		}
		tk.accountForPotentialSkip()
	} else if code != CodeVS {
		tk.point.Column++
		tk.point.Offset++
	}

	if tk.point.bufferIndex < 0 {
		tk.point.index++
	} else {
		tk.point.bufferIndex += utf8.RuneLen(rune(code))
		if tk.point.bufferIndex == len(tk.chunks[tk.point.index].Value) {
			tk.point.bufferIndex = -1
			tk.point.index++
		}
	}

	tk.previous = code
	tk.consumed = true
}

// Enter opens a token of the given type at the current point and records an
// enter event. The returned token may be adjusted by the caller before more
// events are emitted.
func (tk *Tokenizer) Enter(typ string) *Token {
	token := &Token{Type: typ, Start: tk.Now()}
	tk.events = append(tk.events, Event{Enter, token, tk})
	tk.stack = append(tk.stack, token)
	return token
}

// enterChunk opens a token whose span must later be re-tokenized with the
// sub-tokenizer for the given content type.
func (tk *Tokenizer) enterChunk(typ string, contentType ContentType) *Token {
	token := tk.Enter(typ)
	token.ContentType = contentType
	return token
}

// Exit closes the innermost open token, which must be of the given type, and
// records an exit event.
func (tk *Tokenizer) Exit(typ string) *Token {
	if len(tk.stack) == 0 {
		panic(fmt.Sprintf("tokenizer: cannot exit %q: no open tokens", typ))
	}
	token := tk.stack[len(tk.stack)-1]
	tk.stack = tk.stack[:len(tk.stack)-1]
	if token.Type != typ {
		panic(fmt.Sprintf("tokenizer: cannot exit %q: expected %q", typ, token.Type))
	}
	token.End = tk.Now()
	tk.events = append(tk.events, Event{Exit, token, tk})
	return token
}

// Now returns a copy of the current point.
func (tk *Tokenizer) Now() Point { return tk.point }

// DefineSkip tells the tokenizer the real starting column of the given line,
// so a child tokenizer fed partial lines tracks columns without re-consuming
// leading markers.
func (tk *Tokenizer) DefineSkip(point Point) {
	tk.columnStart[point.Line] = point.Column
	tk.accountForPotentialSkip()
}

func (tk *Tokenizer) accountForPotentialSkip() {
	if col, ok := tk.columnStart[tk.point.Line]; ok && tk.point.Column < 2 {
		tk.point.Column = col
		tk.point.Offset += col - 1
	}
}

// Attempt tries candidate constructs in order. The side effects (events,
// position) of the first construct to succeed are kept and ok is returned;
// a failing construct's side effects are discarded before the next candidate
// runs. When every candidate fails, nok is returned with the tokenizer
// restored.
func (tk *Tokenizer) Attempt(constructs Attemptable, ok, nok State) State {
	return tk.hook(constructs, ok, nok, hookAttempt)
}

// Check is a zero-side-effect lookahead: the tokenizer is restored no matter
// whether a candidate succeeded, and only the ok/nok outcome is kept.
func (tk *Tokenizer) Check(constructs Attemptable, ok, nok State) State {
	return tk.hook(constructs, ok, nok, hookCheck)
}

// AttemptInterrupt behaves like Check but flags the context as
// mid-interruption while the candidates run.
func (tk *Tokenizer) AttemptInterrupt(constructs Attemptable, ok, nok State) State {
	return tk.hook(constructs, ok, nok, hookInterrupt)
}

type hookKind uint8

const (
	hookAttempt hookKind = iota
	hookCheck
	hookInterrupt
)

func (tk *Tokenizer) hook(constructs Attemptable, returnState, bogusState State, kind hookKind) State {
	var (
		list             ConstructList
		constructIndex   int
		currentConstruct *Construct
		info             snapshot
	)

	var handleConstruct func(construct *Construct) State
	var ok, nok State

	ok = func(Code) State {
		tk.consumed = true
		if kind == hookAttempt {
			tk.addResult(currentConstruct, info.from)
		} else {
			info.restore(tk)
		}
		return returnState
	}

	nok = func(Code) State {
		tk.consumed = true
		info.restore(tk)
		constructIndex++
		if constructIndex < len(list) {
			return handleConstruct(list[constructIndex])
		}
		return bogusState
	}

	handleConstruct = func(construct *Construct) State {
		return func(code Code) State {
			info = tk.store()
			currentConstruct = construct
			if !construct.Partial {
				tk.currentConstruct = construct
			}
			if construct.Name != "" && contains(tk.parser.Constructs.Disable, construct.Name) {
				return nok(code)
			}
			if kind == hookInterrupt {
				tk.Interrupt = true
			}
			return construct.Tokenize(tk, ok, nok)(code)
		}
	}

	return func(code Code) State {
		list = constructs.candidates(code)
		constructIndex = 0
		if len(list) == 0 {
			return bogusState(code)
		}
		return handleConstruct(list[0])(code)
	}
}

// addResult applies a successful construct's resolvers and queues its
// ResolveAll for the end of the run.
func (tk *Tokenizer) addResult(construct *Construct, from int) {
	if construct.ResolveAll != nil && !containsConstruct(tk.resolveAllList, construct) {
		tk.resolveAllList = append(tk.resolveAllList, construct)
	}
	if construct.Resolve != nil {
		slice := make([]Event, len(tk.events)-from)
		copy(slice, tk.events[from:])
		tk.events = SpliceEvents(tk.events, from, len(tk.events)-from, construct.Resolve(slice, tk))
	}
	if construct.ResolveTo != nil {
		tk.events = construct.ResolveTo(tk.events, tk)
	}
}

// snapshot captures the restorable tokenizer state before an attempt.
type snapshot struct {
	point            Point
	previous         Code
	currentConstruct *Construct
	interrupt        bool
	from             int
	stack            []*Token
}

func (tk *Tokenizer) store() snapshot {
	stack := make([]*Token, len(tk.stack))
	copy(stack, tk.stack)
	return snapshot{
		point:            tk.point,
		previous:         tk.previous,
		currentConstruct: tk.currentConstruct,
		interrupt:        tk.Interrupt,
		from:             len(tk.events),
		stack:            stack,
	}
}

func (s snapshot) restore(tk *Tokenizer) {
	tk.point = s.point
	tk.previous = s.previous
	tk.currentConstruct = s.currentConstruct
	tk.Interrupt = s.interrupt
	tk.events = tk.events[:s.from]
	tk.stack = s.stack
	tk.accountForPotentialSkip()
}

// SliceStream returns the chunks covered by token.
func (tk *Tokenizer) SliceStream(token *Token) []Chunk {
	return sliceChunks(tk.chunks, token.Start, token.End)
}

// SliceSerialize returns the source text covered by token. With expandTabs,
// tabs serialize as spaces.
func (tk *Tokenizer) SliceSerialize(token *Token, expandTabs bool) string {
	return serializeChunks(tk.SliceStream(token), expandTabs)
}

func sliceChunks(chunks []Chunk, start, end Point) []Chunk {
	var view []Chunk
	if start.index == end.index {
		if end.bufferIndex < 0 {
			return nil
		}
		value := chunks[start.index].Value[start.bufferIndex:end.bufferIndex]
		if value == "" {
			return nil
		}
		return []Chunk{textChunk(value)}
	}
	view = append(view, chunks[start.index:end.index]...)
	if start.bufferIndex > -1 && len(view) > 0 {
		head := view[0]
		if head.isText() {
			view[0] = textChunk(head.Value[start.bufferIndex:])
		} else {
			view = view[1:]
		}
	}
	if end.bufferIndex > 0 {
		view = append(view, textChunk(chunks[end.index].Value[:end.bufferIndex]))
	}
	return view
}

func serializeChunks(chunks []Chunk, expandTabs bool) string {
	var sb strings.Builder
	atTab := false
	for _, chunk := range chunks {
		if chunk.isText() {
			sb.WriteString(chunk.Value)
			atTab = false
			continue
		}
		switch chunk.Code {
		case CodeCR:
			sb.WriteByte('\r')
		case CodeLF:
			sb.WriteByte('\n')
		case CodeCRLF:
			sb.WriteString("\r\n")
		case CodeHT:
			if expandTabs {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('\t')
			}
		case CodeVS:
			if !expandTabs && atTab {
				continue
			}
			sb.WriteByte(' ')
		default:
			sb.WriteRune(rune(chunk.Code))
		}
		atTab = chunk.Code == CodeHT
	}
	return sb.String()
}

// ResolveAll runs each construct's ResolveAll once, in first-registration
// order.
func ResolveAll(constructs []*Construct, events []Event, context *Tokenizer) []Event {
	for _, construct := range constructs {
		if construct.ResolveAll != nil {
			events = construct.ResolveAll(events, context)
		}
	}
	return events
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func containsConstruct(list []*Construct, c *Construct) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}
