package section

const (
	// HeaderSize is the fixed size of the encapsulation header in bytes.
	HeaderSize = 4

	representationOffset = 0 // byte offset 0-1
	optionsOffset        = 2 // byte offset 2-3
)
