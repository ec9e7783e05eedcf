// Package model defines the intermediate representation for parsed Go types
// and for the code derived from template unions.
package model

import "go/token"

// TypeKind represents the category of a parsed type declaration.
type TypeKind string

const (
	KindStruct    TypeKind = "struct"
	KindInterface TypeKind = "interface"
	KindTypeSet   TypeKind = "typeset" // interface with type terms, e.g. ~int | string
	KindNamed     TypeKind = "named"
	KindAlias     TypeKind = "alias"
)

// Package represents the parsed Go files of one package directory.
type Package struct {
	Name    string   // Package name
	Dir     string   // Package directory
	Files   []string // Parsed file paths, sorted
	Types   []Type   // All type definitions, in declaration order
	Imports []Import // Imports of all files, deduplicated by path
}

// Import represents a Go import statement.
type Import struct {
	Alias string // Optional alias (empty if none)
	Path  string // Import path
}

// Type represents a Go type definition.
type Type struct {
	Name       string         // Type name (e.g., "Page")
	Kind       TypeKind       // Type category
	Pos        token.Position // Position of the type name
	KeywordPos token.Position // Position of the struct/interface keyword, if any
	Doc        string         // Documentation comment without directives
	Directives []Directive    // //name:args comment lines from the doc comment
	TypeParams []TypeParam    // Type parameters, in order
	Fields     []Field        // Fields (for structs)
	Underlying string         // Underlying type source (for named types)
	Methods    []Method       // Methods declared on the type or its pointer
	Markers    []string       // Unexported niladic methods required by an interface
	IsExported bool           // Whether the type is exported
}

// TypeParam is one type parameter of a generic type.
type TypeParam struct {
	Name       string // Parameter name
	Constraint string // Constraint source text (e.g., "fmt.Stringer")
}

// Field represents a struct field.
type Field struct {
	Name       string         // Field name (type name for embedded fields)
	Type       string         // Field type source text
	Pos        token.Position // Position of the field
	IsEmbedded bool           // Whether this is an embedded field
}

// Method represents a method declared in the package.
type Method struct {
	Name    string // Method name
	Pointer bool   // Whether the receiver is a pointer
}

// Directive is a comment line of the form //prefix:name or //prefix:name(args).
type Directive struct {
	Text string         // Text after the leading "//"
	Pos  token.Position // Position of the comment
}

// Shape is the field shape of a union variant.
type Shape string

const (
	ShapeUnit    Shape = "unit"    // struct{}
	ShapeNamed   Shape = "named"   // struct with fields
	ShapeUnnamed Shape = "unnamed" // defined non-struct type, one positional value
)

// TemplateSpec is the opaque payload of a template annotation.
type TemplateSpec struct {
	Args string         // Verbatim argument list, without the parentheses
	Pos  token.Position // Position of the annotation
}

// Union is a sealed interface selected for derivation.
type Union struct {
	Name       string
	Pos        token.Position
	Marker     string // Unexported marker method implemented by every variant
	TypeParams []TypeParam
	Directives []Directive
	Variants   []Variant
}

// Variant is one alternative of a union.
type Variant struct {
	Name       string
	Index      int // Declaration order within the union
	Pos        token.Position
	Shape      Shape
	Fields     []Field // Named fields, or one positional field for ShapeUnnamed
	Pointer    bool    // Marker method has a pointer receiver
	TypeParams []TypeParam
	Directives []Directive
}

// AuxType is the auxiliary type generated for one variant.
type AuxType struct {
	Name       string // e.g. _Page_1_Detail
	Variant    *Variant
	Fields     []AuxField
	Phantom    string // Phantom marker field type, e.g. [0]*Page[T]
	Spec       TemplateSpec
	IsDefault  bool
	TypeParams []TypeParam // Same as the union's
}

// AuxField is one reference field of an auxiliary type.
type AuxField struct {
	Name   string // Original field name, or _0, _1... for positional fields
	Type   string // Pointer type, e.g. *uint32
	Source string // Original field name, or "" for the positional value
}

// EntryPoint is one rendering entry point of the templating capability.
type EntryPoint struct {
	Method  string   // Method called on the auxiliary value
	Func    string   // Generated dispatch function name
	Params  []string // Extra parameters, e.g. "w io.Writer"
	Args    []string // Extra arguments forwarded unchanged, e.g. "w"
	Results string   // Result list, e.g. "(string, error)"
	Zero    string   // Zero results returned with an error, e.g. `"", `
}

// Dispatch is the type switch generated for one entry point.
type Dispatch struct {
	Entry    EntryPoint
	Cases    []Case
	BindSelf bool // Whether any case reads the switched value
}

// Case is one type switch case of a dispatch.
type Case struct {
	Type     string    // Case type, e.g. *Detail[T]
	Guard    bool      // Whether the case must guard against a nil pointer
	Bindings []Binding // Temporaries bound from the variant value
	Literal  string    // Auxiliary value construction, e.g. _Page_1_Detail[T]{Some: _0}
}

// Binding is one temporary bound inside a dispatch case.
type Binding struct {
	Name string // e.g. _0
	Expr string // e.g. &self.Some
}

// Facade is the union-level code emitted around the dispatches.
type Facade struct {
	Union        *Union
	TypeParams   string // e.g. [T fmt.Stringer], empty for non-generic unions
	TypeArgs     string // e.g. [T], empty for non-generic unions
	Dispatches   []Dispatch
	Default      *AuxType
	Receivers    []Receiver
	AssertValues bool // Emit var _ render.Template assertions
}

// Receiver is a variant that receives the facade methods.
type Receiver struct {
	Type string // Receiver type, e.g. Detail[T] or *Detail[T]
	Zero string // Expression of the receiver type used in assertions
}

// Expansion is the complete derived output for one union.
type Expansion struct {
	Union  *Union
	Aux    []AuxType
	Facade Facade
}
