// Package ast defines the syntax tree shared by the sketch parser and the C
// declaration parser.
package ast

type NodeKind int

const (
	KIND_INVALID NodeKind = iota
	KIND_ROOT

	DECL_START // declaration node start delimiter

	KIND_PACKAGE_DEF
	KIND_IMPORT
	KIND_CLASS_DEF
	KIND_INTERFACE_DEF
	KIND_METHOD_DEF
	KIND_CTOR_DEF
	KIND_VARIABLE_DEF
	KIND_PARAMETER_DEF
	KIND_STATIC_INIT
	KIND_INSTANCE_INIT
	KIND_EMPTY_FIELD

	DECL_END // declaration node end delimiter

	// Pieces of declarations and statements
	KIND_MODIFIERS
	KIND_MODIFIER
	KIND_TYPE
	KIND_BUILTIN_TYPE
	KIND_TYPE_PREFIX // unsigned, signed
	KIND_ARRAY_DECLARATOR
	KIND_POINTER // * or & after a type
	KIND_EXTENDS_CLAUSE
	KIND_IMPLEMENTS_CLAUSE
	KIND_OBJBLOCK
	KIND_PARAMETERS
	KIND_THROWS
	KIND_INITIALIZER
	KIND_ARRAY_INIT
	KIND_ELIST
	KIND_FOR_INIT
	KIND_FOR_CONDITION
	KIND_FOR_ITERATOR
	KIND_ELSE
	KIND_DO_WHILE_COND
	KIND_CASE_GROUP
	KIND_CASE
	KIND_DEFAULT
	KIND_CATCH
	KIND_FINALLY
	KIND_STAR // import wildcard
	KIND_SEMI // lone ';', retyped to EMPTY_STAT or EMPTY_FIELD by sema

	STMT_START // statement node start delimiter

	KIND_SLIST
	KIND_IF
	KIND_FOR
	KIND_WHILE
	KIND_DO
	KIND_SWITCH
	KIND_BREAK
	KIND_CONTINUE
	KIND_RETURN
	KIND_THROW
	KIND_TRY
	KIND_SYNCHRONIZED
	KIND_LABELED_STAT
	KIND_EXPR_STAT
	KIND_EMPTY_STAT

	STMT_END // statement node end delimiter

	EXPR_START // expression node start delimiter

	KIND_ASSIGN_EXPR
	KIND_TERNARY_EXPR
	KIND_BINARY_EXPR
	KIND_INSTANCEOF
	KIND_UNARY_EXPR
	KIND_POSTFIX_EXPR
	KIND_TYPECAST
	KIND_CONSTRUCTOR_CAST
	KIND_PAREN_EXPR
	KIND_METHOD_CALL
	KIND_INDEX_OP
	KIND_DOT
	KIND_ARROW
	KIND_NEW
	KIND_IDENT
	KIND_THIS
	KIND_SUPER
	KIND_CLASS_KEYWORD // Foo.class
	KIND_NULL_LITERAL
	KIND_BOOL_LITERAL
	KIND_INT_LITERAL
	KIND_LONG_LITERAL
	KIND_FLOAT_LITERAL
	KIND_DOUBLE_LITERAL
	KIND_CHAR_LITERAL
	KIND_STRING_LITERAL
	KIND_WEBCOLOR_LITERAL

	EXPR_END // expression node end delimiter

	CDECL_START // C declaration node start delimiter

	KIND_C_TRANSLATION_UNIT
	KIND_C_DECLARATION
	KIND_C_FUNCTION_DEF
	KIND_C_DECL_SPECS
	KIND_C_SPECIFIER
	KIND_C_TYPEDEF_NAME
	KIND_C_STRUCT
	KIND_C_ENUM
	KIND_C_ENUMERATOR
	KIND_C_INIT_DECL
	KIND_C_DECLARATOR
	KIND_C_POINTER
	KIND_C_ARRAY_SUFFIX
	KIND_C_PARAM_LIST
	KIND_C_PARAM_DECL
	KIND_C_IDENT_LIST // K&R parameter names
	KIND_C_ELLIPSIS
	KIND_C_INITIALIZER
	KIND_C_COMPOUND

	CDECL_END // C declaration node end delimiter

	kindCount
)

var kindNames = [...]string{
	KIND_INVALID:           "INVALID",
	KIND_ROOT:              "ROOT",
	DECL_START:             "DECL_START",
	KIND_PACKAGE_DEF:       "PACKAGE_DEF",
	KIND_IMPORT:            "IMPORT",
	KIND_CLASS_DEF:         "CLASS_DEF",
	KIND_INTERFACE_DEF:     "INTERFACE_DEF",
	KIND_METHOD_DEF:        "METHOD_DEF",
	KIND_CTOR_DEF:          "CTOR_DEF",
	KIND_VARIABLE_DEF:      "VARIABLE_DEF",
	KIND_PARAMETER_DEF:     "PARAMETER_DEF",
	KIND_STATIC_INIT:       "STATIC_INIT",
	KIND_INSTANCE_INIT:     "INSTANCE_INIT",
	KIND_EMPTY_FIELD:       "EMPTY_FIELD",
	DECL_END:               "DECL_END",
	KIND_MODIFIERS:         "MODIFIERS",
	KIND_MODIFIER:          "MODIFIER",
	KIND_TYPE:              "TYPE",
	KIND_BUILTIN_TYPE:      "BUILTIN_TYPE",
	KIND_TYPE_PREFIX:       "TYPE_PREFIX",
	KIND_ARRAY_DECLARATOR:  "ARRAY_DECLARATOR",
	KIND_POINTER:           "POINTER",
	KIND_EXTENDS_CLAUSE:    "EXTENDS_CLAUSE",
	KIND_IMPLEMENTS_CLAUSE: "IMPLEMENTS_CLAUSE",
	KIND_OBJBLOCK:          "OBJBLOCK",
	KIND_PARAMETERS:        "PARAMETERS",
	KIND_THROWS:            "THROWS",
	KIND_INITIALIZER:       "INITIALIZER",
	KIND_ARRAY_INIT:        "ARRAY_INIT",
	KIND_ELIST:             "ELIST",
	KIND_FOR_INIT:          "FOR_INIT",
	KIND_FOR_CONDITION:     "FOR_CONDITION",
	KIND_FOR_ITERATOR:      "FOR_ITERATOR",
	KIND_ELSE:              "ELSE",
	KIND_DO_WHILE_COND:     "DO_WHILE_COND",
	KIND_CASE_GROUP:        "CASE_GROUP",
	KIND_CASE:              "CASE",
	KIND_DEFAULT:           "DEFAULT",
	KIND_CATCH:             "CATCH",
	KIND_FINALLY:           "FINALLY",
	KIND_STAR:              "STAR",
	KIND_SEMI:              "SEMI",
	STMT_START:             "STMT_START",
	KIND_SLIST:             "SLIST",
	KIND_IF:                "IF",
	KIND_FOR:               "FOR",
	KIND_WHILE:             "WHILE",
	KIND_DO:                "DO",
	KIND_SWITCH:            "SWITCH",
	KIND_BREAK:             "BREAK",
	KIND_CONTINUE:          "CONTINUE",
	KIND_RETURN:            "RETURN",
	KIND_THROW:             "THROW",
	KIND_TRY:               "TRY",
	KIND_SYNCHRONIZED:      "SYNCHRONIZED",
	KIND_LABELED_STAT:      "LABELED_STAT",
	KIND_EXPR_STAT:         "EXPR_STAT",
	KIND_EMPTY_STAT:        "EMPTY_STAT",
	STMT_END:               "STMT_END",
	EXPR_START:             "EXPR_START",
	KIND_ASSIGN_EXPR:       "ASSIGN_EXPR",
	KIND_TERNARY_EXPR:      "TERNARY_EXPR",
	KIND_BINARY_EXPR:       "BINARY_EXPR",
	KIND_INSTANCEOF:        "INSTANCEOF",
	KIND_UNARY_EXPR:        "UNARY_EXPR",
	KIND_POSTFIX_EXPR:      "POSTFIX_EXPR",
	KIND_TYPECAST:          "TYPECAST",
	KIND_CONSTRUCTOR_CAST:  "CONSTRUCTOR_CAST",
	KIND_PAREN_EXPR:        "PAREN_EXPR",
	KIND_METHOD_CALL:       "METHOD_CALL",
	KIND_INDEX_OP:          "INDEX_OP",
	KIND_DOT:               "DOT",
	KIND_ARROW:             "ARROW",
	KIND_NEW:               "NEW",
	KIND_IDENT:             "IDENT",
	KIND_THIS:              "THIS",
	KIND_SUPER:             "SUPER",
	KIND_CLASS_KEYWORD:     "CLASS_KEYWORD",
	KIND_NULL_LITERAL:      "NULL_LITERAL",
	KIND_BOOL_LITERAL:      "BOOL_LITERAL",
	KIND_INT_LITERAL:       "INT_LITERAL",
	KIND_LONG_LITERAL:      "LONG_LITERAL",
	KIND_FLOAT_LITERAL:     "FLOAT_LITERAL",
	KIND_DOUBLE_LITERAL:    "DOUBLE_LITERAL",
	KIND_CHAR_LITERAL:      "CHAR_LITERAL",
	KIND_STRING_LITERAL:    "STRING_LITERAL",
	KIND_WEBCOLOR_LITERAL:  "WEBCOLOR_LITERAL",
	EXPR_END:               "EXPR_END",

	CDECL_START:             "CDECL_START",
	KIND_C_TRANSLATION_UNIT: "C_TRANSLATION_UNIT",
	KIND_C_DECLARATION:      "C_DECLARATION",
	KIND_C_FUNCTION_DEF:     "C_FUNCTION_DEF",
	KIND_C_DECL_SPECS:       "C_DECL_SPECS",
	KIND_C_SPECIFIER:        "C_SPECIFIER",
	KIND_C_TYPEDEF_NAME:     "C_TYPEDEF_NAME",
	KIND_C_STRUCT:           "C_STRUCT",
	KIND_C_ENUM:             "C_ENUM",
	KIND_C_ENUMERATOR:       "C_ENUMERATOR",
	KIND_C_INIT_DECL:        "C_INIT_DECL",
	KIND_C_DECLARATOR:       "C_DECLARATOR",
	KIND_C_POINTER:          "C_POINTER",
	KIND_C_ARRAY_SUFFIX:     "C_ARRAY_SUFFIX",
	KIND_C_PARAM_LIST:       "C_PARAM_LIST",
	KIND_C_PARAM_DECL:       "C_PARAM_DECL",
	KIND_C_IDENT_LIST:       "C_IDENT_LIST",
	KIND_C_ELLIPSIS:         "C_ELLIPSIS",
	KIND_C_INITIALIZER:      "C_INITIALIZER",
	KIND_C_COMPOUND:         "C_COMPOUND",
	CDECL_END:               "CDECL_END",
}

func (kind NodeKind) String() string {
	if kind < 0 || kind >= kindCount {
		return "UNKNOWN"
	}
	return kindNames[kind]
}

func (kind NodeKind) IsDecl() bool {
	return kind > DECL_START && kind < DECL_END
}

func (kind NodeKind) IsStmt() bool {
	return kind > STMT_START && kind < STMT_END
}

func (kind NodeKind) IsExpr() bool {
	return kind > EXPR_START && kind < EXPR_END
}

func (kind NodeKind) IsCDecl() bool {
	return kind > CDECL_START && kind < CDECL_END
}

func (kind NodeKind) IsLiteral() bool {
	return kind >= KIND_NULL_LITERAL && kind <= KIND_WEBCOLOR_LITERAL
}
