package mark

// Point is a position in the source document.
//
// Line and Column are 1-based; Column accounts for expanded tabs. Offset is
// the 0-based absolute character index. The unexported fields locate the point
// inside the tokenizer's chunk stream so that token spans can be sliced in
// O(1) without searching.
type Point struct {
	Line   int
	Column int
	Offset int

	index       int // chunk index
	bufferIndex int // byte offset within a text chunk, -1 outside text chunks
}

// ContentType directs which sub-tokenizer must further parse a token's span.
type ContentType string

// Content types.
const (
	ContentTypeDocument ContentType = "document"
	ContentTypeFlow     ContentType = "flow"
	ContentTypeContent  ContentType = "content"
	ContentTypeText     ContentType = "text"
	ContentTypeString   ContentType = "string"
)

// Token is a named span of the source.
//
// Tokens are created by Tokenizer.Enter, finalized by Tokenizer.Exit, and may
// be mutated by resolvers (type reassignment, start/end adjustment) before the
// event stream reaches the compiler.
type Token struct {
	Type  string
	Start Point
	End   Point

	// ContentType, when set, marks the span as unresolved nested content.
	// Postprocess re-tokenizes such spans with the matching sub-tokenizer.
	ContentType ContentType

	// Previous and Next chain same-content-type chunks that are physically
	// split across lines, so nested content can be re-joined for
	// sub-tokenization without copying.
	Previous *Token
	Next     *Token

	// Open and Close record whether an attention run can open or close a
	// span. Extensions that pair delimiter runs use them too.
	Open  bool
	Close bool

	// Container marks container-opening tokens (block quotes, list items).
	Container bool

	// FirstContentOfListItem marks text chunks in the first content of a
	// list item, so constructs that only match there (task list items) can
	// tell.
	FirstContentOfListItem bool

	contentTokenized *Tokenizer // cached child tokenizer for linked chunks

	// Fields holds extension-defined token attributes (table alignment).
	// Nil until an extension stores something.
	Fields map[string]any

	// Label bookkeeping: a balanced label start can no longer form a link;
	// an inactive one is skipped so links cannot nest inside links.
	// Extensions with their own label starts (footnotes) share these.
	Balanced bool
	Inactive bool

	// List tightness, decided by the list construct's resolver.
	loose bool
}

// EventKind says whether an event opens or closes a token.
type EventKind uint8

// Event kinds.
const (
	Enter EventKind = iota + 1
	Exit
)

func (k EventKind) String() string {
	if k == Enter {
		return "enter"
	}
	return "exit"
}

// Event is one step of the flat event stream produced by tokenization: a
// token being entered or exited, plus the tokenizer it came from.
type Event struct {
	Kind    EventKind
	Token   *Token
	Context *Tokenizer
}
