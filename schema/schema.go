// Package schema compiles YAML schema documents into dynamic codecs.
//
// A document declares named struct types whose fields are type expressions:
//
//	types:
//	  - name: Results
//	    fields:
//	      - { name: win, type: u8 }
//	      - { name: totalWin, type: u16 }
//	      - { name: losses, type: i32 }
//
// Expressions are primitives (u8 … u128, i8 … i128, f32, f64, bool), string,
// string<N>, bytes, bytes<N>, option<T>, coption<T>, array<T, N>, vec<T>,
// enum<T> or the name of a declared type. Compiled codecs work on dynamic
// values: numbers as their exact Go type, structs as codec.Args, options as
// nil or the present value, arrays and vectors as []any and enums as
// codec.DataEnum[any].
package schema

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// Document is the YAML form of a schema.
type Document struct {
	Types []TypeDecl `yaml:"types"`
}

// TypeDecl declares a named struct type.
type TypeDecl struct {
	Name   string      `yaml:"name"`
	Fields []FieldDecl `yaml:"fields"`
}

// FieldDecl declares one struct field.
type FieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Optional fields may be omitted when writing; their zero value is
	// encoded instead.
	Optional bool `yaml:"optional"`
}

type fieldDef struct {
	name     string
	expr     Expr
	optional bool
}

// Schema is a validated set of type declarations. It is safe for concurrent use.
type Schema struct {
	decls   map[string][]fieldDef
	order   []string
	mu      sync.Mutex
	structs map[string]codec.Codec[any]
}

// Load reads and parses a schema file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindNotFound, err, "read schema "+path)
	}
	return Parse(data)
}

// Parse decodes a YAML document and checks every declaration. Names must be
// unique, field types must parse and refer to known types, and no type may
// contain itself.
func Parse(data []byte) (*Schema, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindInvalidData, err, "decode schema")
	}
	return New(doc)
}

// New validates doc.
func New(doc Document) (*Schema, error) {
	s := &Schema{
		decls:   make(map[string][]fieldDef, len(doc.Types)),
		structs: make(map[string]codec.Codec[any]),
	}
	for _, t := range doc.Types {
		if t.Name == "" {
			return nil, invalid(nil, "type without a name")
		}
		if _, dup := s.decls[t.Name]; dup {
			return nil, invalid([]string{t.Name}, "duplicate type")
		}
		if _, builtin := builtins[t.Name]; builtin || constructors[t.Name] {
			return nil, invalid([]string{t.Name}, "type name shadows a built-in type")
		}

		fields := make([]fieldDef, 0, len(t.Fields))
		seen := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			if f.Name == "" {
				return nil, invalid([]string{t.Name}, "field without a name")
			}
			if seen[f.Name] {
				return nil, invalid([]string{t.Name, f.Name}, "duplicate field")
			}
			seen[f.Name] = true
			e, err := ParseExpr(f.Type)
			if err != nil {
				return nil, errors.AtPath(errors.AtPath(err, f.Name), t.Name)
			}
			fields = append(fields, fieldDef{name: f.Name, expr: e, optional: f.Optional})
		}
		s.decls[t.Name] = fields
		s.order = append(s.order, t.Name)
	}

	for _, name := range s.order {
		if err := s.check(Expr{Name: name}, nil, nil); err != nil {
			return nil, err
		}
	}
	for _, name := range s.order {
		if _, err := s.compileStruct(name); err != nil {
			return nil, errors.AtPath(err, name)
		}
	}
	return s, nil
}

// Types returns the declared type names in declaration order.
func (s *Schema) Types() []string {
	return append([]string(nil), s.order...)
}

// Codec compiles a type expression.
func (s *Schema) Codec(expr string) (codec.Codec[any], error) {
	e, err := ParseExpr(expr)
	if err != nil {
		return nil, err
	}
	if err := s.check(e, nil, nil); err != nil {
		return nil, err
	}
	return s.compile(e)
}

func invalid(path []string, format string, args ...any) error {
	return errors.New(errors.PhaseSchema, errors.KindInvalidData).
		Path(path...).
		Detail(format, args...).
		Build()
}

// check validates e: arity, known names, and the absence of cycles through
// struct declarations.
func (s *Schema) check(e Expr, path []string, visiting []string) error {
	if _, ok := builtins[e.Name]; ok {
		if len(e.Params) > 0 || (e.HasLen && !sized[e.Name]) {
			return invalid(path, "%s takes no arguments", e.Name)
		}
		return nil
	}

	if constructors[e.Name] {
		wantLen := e.Name == "array"
		if len(e.Params) != 1 || e.HasLen != wantLen {
			if wantLen {
				return invalid(path, "%s needs a type and a length", e)
			}
			return invalid(path, "%s needs exactly one type argument", e)
		}
		return s.check(e.Params[0], path, visiting)
	}

	fields, ok := s.decls[e.Name]
	if !ok {
		return errors.New(errors.PhaseSchema, errors.KindNotFound).
			Path(path...).
			Detail("unknown type %q", e.Name).
			Build()
	}
	if len(e.Params) > 0 || e.HasLen {
		return invalid(path, "%s takes no arguments", e.Name)
	}
	for _, v := range visiting {
		if v == e.Name {
			return invalid(path, "type %s contains itself", e.Name)
		}
	}
	visiting = append(visiting, e.Name)
	for _, f := range fields {
		if err := s.check(f.expr, append(append([]string{}, path...), f.name), visiting); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) compile(e Expr) (codec.Codec[any], error) {
	if c, ok := builtins[e.Name]; ok {
		if e.HasLen {
			return sizedBuiltin(e.Name, e.Len), nil
		}
		return c, nil
	}
	if constructors[e.Name] {
		inner, err := s.compile(e.Params[0])
		if err != nil {
			return nil, err
		}
		return compose(e, inner)
	}
	return s.compileStruct(e.Name)
}

func (s *Schema) compileStruct(name string) (codec.Codec[any], error) {
	s.mu.Lock()
	c, ok := s.structs[name]
	s.mu.Unlock()
	if ok {
		return c, nil
	}

	defs := s.decls[name]
	fields := make([]codec.Field, 0, len(defs))
	for _, f := range defs {
		fc, err := s.compile(f.expr)
		if err != nil {
			return nil, errors.AtPath(err, f.name)
		}
		if f.optional {
			fields = append(fields, codec.OptionalField(f.name, fc))
		} else {
			fields = append(fields, codec.NewField(f.name, fc))
		}
	}
	c = codec.Convert(codec.NewArgsStruct(name, fields),
		func(a codec.Args) (any, error) { return a, nil },
		toArgs,
	)

	s.mu.Lock()
	if prev, ok := s.structs[name]; ok {
		c = prev
	} else {
		s.structs[name] = c
	}
	s.mu.Unlock()
	return c, nil
}

func toArgs(v any) (codec.Args, error) {
	switch a := v.(type) {
	case codec.Args:
		return a, nil
	case map[string]any:
		return codec.Args(a), nil
	default:
		return nil, fmt.Errorf("struct value must be a map, got %T", v)
	}
}
