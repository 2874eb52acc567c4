package token

type Kind int

const (
	// EOF
	EOF Kind = iota
	INVALID

	// Trivia: never handed to the parser, recorded in the hidden channel
	WHITESPACE
	NEWLINE
	LINE_COMMENT
	BLOCK_COMMENT
	DIRECTIVE // #include, #define ...

	// Identifier
	ID

	// Literals
	INT_LITERAL
	LONG_LITERAL
	FLOAT_LITERAL  // 1.5f
	DOUBLE_LITERAL // 1.5, 1.5d
	CHAR_LITERAL
	STRING_LITERAL
	WEBCOLOR_LITERAL // #FF00AA

	// Keywords
	PACKAGE
	IMPORT
	CLASS
	INTERFACE
	EXTENDS
	IMPLEMENTS
	PUBLIC
	PROTECTED
	PRIVATE
	STATIC
	FINAL
	ABSTRACT
	NATIVE
	SYNCHRONIZED
	TRANSIENT
	VOLATILE
	STRICTFP
	CONST
	THROWS
	IF
	ELSE
	FOR
	WHILE
	DO
	SWITCH
	CASE
	DEFAULT
	BREAK
	CONTINUE
	RETURN
	THROW
	TRY
	CATCH
	FINALLY
	NEW
	THIS
	SUPER
	TRUE
	FALSE
	NULL
	INSTANCEOF

	// Types
	VOID
	BOOLEAN
	BYTE
	CHAR
	SHORT
	INT
	LONG
	FLOAT
	DOUBLE
	// Only a keyword when the color datatype is enabled
	COLOR

	// (
	OPEN_PAREN
	// )
	CLOSE_PAREN
	// {
	OPEN_CURLY
	// }
	CLOSE_CURLY
	// [
	OPEN_BRACKET
	// ]
	CLOSE_BRACKET
	// ;
	SEMICOLON
	// ,
	COMMA
	// .
	DOT
	// ...
	DOT_DOT_DOT
	// ->
	ARROW
	// :
	COLON
	// ::
	COLON_COLON
	// ?
	QUESTION
	// @
	AT

	// =
	EQUAL
	// ==
	EQUAL_EQUAL
	// !=
	BANG_EQUAL
	// !
	BANG
	// ~
	TILDE
	// >
	GREATER
	// >=
	GREATER_EQ
	// <
	LESS
	// <=
	LESS_EQ
	// +
	PLUS
	// ++
	PLUS_PLUS
	// -
	MINUS
	// --
	MINUS_MINUS
	// *
	STAR
	// /
	SLASH
	// %
	PERCENT
	// &
	AMPERSAND
	// &&
	AND_AND
	// |
	PIPE
	// ||
	OR_OR
	// ^
	CARET
	// <<
	SHIFT_LEFT
	// >>
	SHIFT_RIGHT
	// >>>
	USHIFT_RIGHT

	PLUS_EQUAL
	MINUS_EQUAL
	STAR_EQUAL
	SLASH_EQUAL
	PERCENT_EQUAL
	AMPERSAND_EQUAL
	PIPE_EQUAL
	CARET_EQUAL
	SHIFT_LEFT_EQUAL
	SHIFT_RIGHT_EQUAL
	USHIFT_RIGHT_EQUAL

	kindCount
)

var kindNames = [...]string{
	EOF:              "EOF",
	INVALID:          "INVALID",
	WHITESPACE:       "WHITESPACE",
	NEWLINE:          "NEWLINE",
	LINE_COMMENT:     "LINE_COMMENT",
	BLOCK_COMMENT:    "BLOCK_COMMENT",
	DIRECTIVE:        "DIRECTIVE",
	ID:               "IDENTIFIER",
	INT_LITERAL:      "INT_LITERAL",
	LONG_LITERAL:     "LONG_LITERAL",
	FLOAT_LITERAL:    "FLOAT_LITERAL",
	DOUBLE_LITERAL:   "DOUBLE_LITERAL",
	CHAR_LITERAL:     "CHAR_LITERAL",
	STRING_LITERAL:   "STRING_LITERAL",
	WEBCOLOR_LITERAL: "WEBCOLOR_LITERAL",

	PACKAGE:      "package",
	IMPORT:       "import",
	CLASS:        "class",
	INTERFACE:    "interface",
	EXTENDS:      "extends",
	IMPLEMENTS:   "implements",
	PUBLIC:       "public",
	PROTECTED:    "protected",
	PRIVATE:      "private",
	STATIC:       "static",
	FINAL:        "final",
	ABSTRACT:     "abstract",
	NATIVE:       "native",
	SYNCHRONIZED: "synchronized",
	TRANSIENT:    "transient",
	VOLATILE:     "volatile",
	STRICTFP:     "strictfp",
	CONST:        "const",
	THROWS:       "throws",
	IF:           "if",
	ELSE:         "else",
	FOR:          "for",
	WHILE:        "while",
	DO:           "do",
	SWITCH:       "switch",
	CASE:         "case",
	DEFAULT:      "default",
	BREAK:        "break",
	CONTINUE:     "continue",
	RETURN:       "return",
	THROW:        "throw",
	TRY:          "try",
	CATCH:        "catch",
	FINALLY:      "finally",
	NEW:          "new",
	THIS:         "this",
	SUPER:        "super",
	TRUE:         "true",
	FALSE:        "false",
	NULL:         "null",
	INSTANCEOF:   "instanceof",

	VOID:    "void",
	BOOLEAN: "boolean",
	BYTE:    "byte",
	CHAR:    "char",
	SHORT:   "short",
	INT:     "int",
	LONG:    "long",
	FLOAT:   "float",
	DOUBLE:  "double",
	COLOR:   "color",

	OPEN_PAREN:    "(",
	CLOSE_PAREN:   ")",
	OPEN_CURLY:    "{",
	CLOSE_CURLY:   "}",
	OPEN_BRACKET:  "[",
	CLOSE_BRACKET: "]",
	SEMICOLON:     ";",
	COMMA:         ",",
	DOT:           ".",
	DOT_DOT_DOT:   "...",
	ARROW:         "->",
	COLON:         ":",
	COLON_COLON:   "::",
	QUESTION:      "?",
	AT:            "@",

	EQUAL:        "=",
	EQUAL_EQUAL:  "==",
	BANG_EQUAL:   "!=",
	BANG:         "!",
	TILDE:        "~",
	GREATER:      ">",
	GREATER_EQ:   ">=",
	LESS:         "<",
	LESS_EQ:      "<=",
	PLUS:         "+",
	PLUS_PLUS:    "++",
	MINUS:        "-",
	MINUS_MINUS:  "--",
	STAR:         "*",
	SLASH:        "/",
	PERCENT:      "%",
	AMPERSAND:    "&",
	AND_AND:      "&&",
	PIPE:         "|",
	OR_OR:        "||",
	CARET:        "^",
	SHIFT_LEFT:   "<<",
	SHIFT_RIGHT:  ">>",
	USHIFT_RIGHT: ">>>",

	PLUS_EQUAL:         "+=",
	MINUS_EQUAL:        "-=",
	STAR_EQUAL:         "*=",
	SLASH_EQUAL:        "/=",
	PERCENT_EQUAL:      "%=",
	AMPERSAND_EQUAL:    "&=",
	PIPE_EQUAL:         "|=",
	CARET_EQUAL:        "^=",
	SHIFT_LEFT_EQUAL:   "<<=",
	SHIFT_RIGHT_EQUAL:  ">>=",
	USHIFT_RIGHT_EQUAL: ">>>=",
}

var KEYWORDS map[string]Kind = func() map[string]Kind {
	keywords := make(map[string]Kind)
	for kind := PACKAGE; kind <= COLOR; kind++ {
		keywords[kindNames[kind]] = kind
	}
	return keywords
}()

func (kind Kind) String() string {
	if kind < 0 || kind >= kindCount {
		return "UNKNOWN"
	}
	return kindNames[kind]
}

func (kind Kind) IsTrivia() bool {
	return kind >= WHITESPACE && kind <= DIRECTIVE
}

func (kind Kind) IsKeyword() bool {
	return kind >= PACKAGE && kind <= COLOR
}

func (kind Kind) IsLiteral() bool {
	return kind >= INT_LITERAL && kind <= WEBCOLOR_LITERAL
}

// Primitive types that also work as constructor casts: int(x)
func (kind Kind) IsBuiltinType() bool {
	return kind >= VOID && kind <= COLOR
}

func (kind Kind) IsModifier() bool {
	switch kind {
	case PUBLIC, PROTECTED, PRIVATE, STATIC, FINAL, ABSTRACT, NATIVE,
		SYNCHRONIZED, TRANSIENT, VOLATILE, STRICTFP, CONST:
		return true
	}
	return false
}

func (kind Kind) IsAssignment() bool {
	return kind == EQUAL || (kind >= PLUS_EQUAL && kind <= USHIFT_RIGHT_EQUAL)
}
