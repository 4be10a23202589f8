package settings

// Flags for the convenience of the implementers. None of them should be
// set to true in a release.

const (
	SHOW_LEXER       = false // Shows the tokens emitted by the lexer.
	SHOW_PARSER      = false // Shows the AST of each parsed chunk.
	SHOW_INITIALIZER = false // Traces the phases of initialization.
	SHOW_TESTS       = false // Says what the tests are doing.
)
