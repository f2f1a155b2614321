package codec

import (
	"fmt"

	"github.com/wippyai/borsh/errors"
)

// Args holds struct field values keyed by field name. It is the input of
// struct constructors and the loose write input of NewArgsStruct.
type Args map[string]any

type structCore[V any] struct {
	description string
	fields      []Field
	construct   func(Args) (V, error)
	args        func(V) Args
}

// values orders the write input by field declaration. Required fields must
// be present; absent optional fields take the zero value of their type.
func (s *structCore[V]) values(args Args) ([]any, error) {
	out := make([]any, len(s.fields))
	for i, f := range s.fields {
		v, ok := args[f.name]
		if !ok {
			if !f.optional {
				return nil, errors.FieldMissing(errors.PhaseEncode, []string{s.description}, f.name)
			}
			v = f.codec.zero()
		}
		out[i] = v
	}
	return out, nil
}

func (s *structCore[V]) fixArgs(args Args) (*FixedStruct[V], error) {
	vals, err := s.values(args)
	if err != nil {
		return nil, err
	}
	fixed := make([]fixedField, len(s.fields))
	for i, f := range s.fields {
		ff, err := f.codec.fixFromValue(vals[i])
		if err != nil {
			return nil, errors.AtPath(err, f.name)
		}
		fixed[i] = ff
	}
	return newFixedStruct(s, fixed), nil
}

func (s *structCore[V]) shape(fixed []fixedField) []FieldShape {
	out := make([]FieldShape, len(s.fields))
	for i, f := range s.fields {
		fs := FieldShape{Name: f.name, Optional: f.optional}
		if fixed != nil {
			fs.Shape = fixed[i].shape()
		} else {
			fs.Shape = f.codec.shape()
		}
		out[i] = fs
	}
	return out
}

// NewStruct returns a codec for an ordered aggregate of fields. construct
// builds the decoded value from field values; args extracts field values
// from a value being written. The result is a *FixedStruct when every field
// codec is fixed and a *FixableStruct otherwise.
//
// NewStruct panics on duplicate field names.
func NewStruct[V any](description string, fields []Field, construct func(Args) (V, error), args func(V) Args) Codec[V] {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.name]; dup {
			panic(fmt.Sprintf("codec: duplicate field %q in struct %s", f.name, description))
		}
		seen[f.name] = struct{}{}
	}

	core := &structCore[V]{
		description: description,
		fields:      fields,
		construct:   construct,
		args:        args,
	}

	fixed := make([]fixedField, len(fields))
	for i, f := range fields {
		ff, ok := f.codec.fixed()
		if !ok {
			return &FixableStruct[V]{core: core}
		}
		fixed[i] = ff
	}
	return newFixedStruct(core, fixed)
}

// NewArgsStruct returns a struct codec whose values are Args maps. It is
// the loose input form: required fields must be present when writing and
// optional ones may be omitted.
func NewArgsStruct(description string, fields []Field) Codec[Args] {
	return NewStruct(description, fields,
		func(a Args) (Args, error) { return a, nil },
		func(a Args) Args { return a },
	)
}

// FixedStruct is a struct codec whose fields all have a static size.
type FixedStruct[V any] struct {
	core   *structCore[V]
	fields []fixedField
	size   int
}

func newFixedStruct[V any](core *structCore[V], fields []fixedField) *FixedStruct[V] {
	size := 0
	for _, f := range fields {
		size += f.byteSize()
	}
	return &FixedStruct[V]{core: core, fields: fields, size: size}
}

func (s *FixedStruct[V]) ByteSize() int { return s.size }

func (s *FixedStruct[V]) Description() string {
	return fmt.Sprintf("%s[%d]", s.core.description, s.size)
}

func (s *FixedStruct[V]) Shape() Shape {
	return Shape{
		Family:      FamilyStruct,
		Description: s.core.description,
		Fixed:       true,
		ByteSize:    s.size,
		Fields:      s.core.shape(s.fields),
	}
}

// Fields returns the declared fields in order.
func (s *FixedStruct[V]) Fields() []Field { return s.core.fields }

func (s *FixedStruct[V]) Write(buf []byte, offset int, v V) error {
	return s.WriteArgs(buf, offset, s.core.args(v))
}

// WriteArgs encodes field values given by name.
func (s *FixedStruct[V]) WriteArgs(buf []byte, offset int, args Args) error {
	vals, err := s.core.values(args)
	if err != nil {
		return err
	}
	if err := checkRange(errors.PhaseEncode, buf, offset, s.size, s.Description()); err != nil {
		return err
	}
	cursor := offset
	for i, f := range s.fields {
		if err := f.write(buf, cursor, vals[i]); err != nil {
			return errors.AtPath(err, s.core.fields[i].name)
		}
		cursor += f.byteSize()
	}
	return nil
}

func (s *FixedStruct[V]) Read(buf []byte, offset int) (V, error) {
	var zero V
	if err := checkRange(errors.PhaseDecode, buf, offset, s.size, s.Description()); err != nil {
		return zero, err
	}
	args := make(Args, len(s.fields))
	cursor := offset
	for i, f := range s.fields {
		v, err := f.read(buf, cursor)
		if err != nil {
			return zero, errors.AtPath(err, s.core.fields[i].name)
		}
		args[s.core.fields[i].name] = v
		cursor += f.byteSize()
	}
	v, err := s.core.construct(args)
	if err != nil {
		return zero, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(s.core.description).
			Detail("construct value").
			Cause(err).
			Build()
	}
	return v, nil
}

// FixableStruct is a struct codec with at least one fixable field.
type FixableStruct[V any] struct {
	core *structCore[V]
}

func (s *FixableStruct[V]) Description() string { return s.core.description }

func (s *FixableStruct[V]) Shape() Shape {
	return Shape{Family: FamilyStruct, Description: s.core.description, Fields: s.core.shape(nil)}
}

// Fields returns the declared fields in order.
func (s *FixableStruct[V]) Fields() []Field { return s.core.fields }

func (s *FixableStruct[V]) FixFromValue(v V) (Fixed[V], error) {
	f, err := s.core.fixArgs(s.core.args(v))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// FixFromArgs resolves every field against the given field values.
func (s *FixableStruct[V]) FixFromArgs(args Args) (*FixedStruct[V], error) {
	return s.core.fixArgs(args)
}

func (s *FixableStruct[V]) FixFromBytes(buf []byte, offset int) (Fixed[V], error) {
	fixed := make([]fixedField, len(s.core.fields))
	cursor := offset
	for i, f := range s.core.fields {
		ff, err := f.codec.fixFromBytes(buf, cursor)
		if err != nil {
			return nil, errors.AtPath(err, f.name)
		}
		fixed[i] = ff
		cursor += ff.byteSize()
	}
	return newFixedStruct(s.core, fixed), nil
}

func (s *FixableStruct[V]) Write(buf []byte, offset int, v V) error {
	return writeFixable[V](s, buf, offset, v)
}

// WriteArgs resolves against args and encodes them.
func (s *FixableStruct[V]) WriteArgs(buf []byte, offset int, args Args) error {
	f, err := s.core.fixArgs(args)
	if err != nil {
		return err
	}
	return f.WriteArgs(buf, offset, args)
}

func (s *FixableStruct[V]) Read(buf []byte, offset int) (V, error) {
	return readFixable[V](s, buf, offset)
}
