package mark

// Postprocess expands nested content until no tokens with a content type
// remain. Call it on the document events before compiling.
func Postprocess(events []Event) []Event {
	for {
		var done bool
		events, done = subtokenize(events)
		if done {
			return events
		}
	}
}
