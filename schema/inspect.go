package schema

import (
	"encoding/binary"
	"strconv"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// Span locates one node of a decoded value in the input bytes.
type Span struct {
	Value       any // set for leaves only
	Path        string
	Description string
	Depth       int
	Offset      int
	Size        int
	Leaf        bool
}

// Inspect decodes expr at offset and returns one span per node of the type
// tree in pre-order: the value itself first, then its children.
func (s *Schema) Inspect(expr string, buf []byte, offset int) ([]Span, error) {
	e, err := ParseExpr(expr)
	if err != nil {
		return nil, err
	}
	if err := s.check(e, nil, nil); err != nil {
		return nil, err
	}
	var spans []Span
	if _, err := s.inspect(e, buf, offset, "", 0, &spans); err != nil {
		return nil, err
	}
	return spans, nil
}

func joinPath(path, segment string) string {
	if path == "" || segment[0] == '[' {
		return path + segment
	}
	return path + "." + segment
}

func (s *Schema) inspect(e Expr, buf []byte, offset int, path string, depth int, spans *[]Span) (int, error) {
	c, err := s.compile(e)
	if err != nil {
		return 0, err
	}
	f, err := codec.FixFromBytes(c, buf, offset)
	if err != nil {
		return 0, err
	}
	size := f.ByteSize()

	// Reading every node rejects malformed tags before children are walked.
	v, err := f.Read(buf, offset)
	if err != nil {
		return 0, err
	}

	_, leaf := builtins[e.Name]
	span := Span{
		Path:        path,
		Description: f.Description(),
		Depth:       depth,
		Offset:      offset,
		Size:        size,
		Leaf:        leaf,
	}
	if leaf {
		span.Value = v
	}
	*spans = append(*spans, span)
	if leaf {
		return size, nil
	}

	child := func(e Expr, at int, segment string) (int, error) {
		n, err := s.inspect(e, buf, at, joinPath(path, segment), depth+1, spans)
		if err != nil {
			return 0, errors.AtPath(err, segment)
		}
		return n, nil
	}

	switch e.Name {
	case "option":
		if buf[offset] == codec.TagSome {
			_, err = child(e.Params[0], offset+1, "some")
		}
	case "coption":
		if buf[offset] == codec.TagSome {
			_, err = child(e.Params[0], offset+4, "some")
		}
	case "enum":
		_, err = child(e.Params[0], offset+1, "data")
	case "array", "vec":
		n, cursor := e.Len, offset
		if e.Name == "vec" {
			n = int(binary.LittleEndian.Uint32(buf[offset:]))
			cursor += 4
		}
		for i := 0; i < n && err == nil; i++ {
			var m int
			m, err = child(e.Params[0], cursor, "["+strconv.Itoa(i)+"]")
			cursor += m
		}
	default:
		cursor := offset
		for _, fd := range s.decls[e.Name] {
			var m int
			if m, err = child(fd.expr, cursor, fd.name); err != nil {
				break
			}
			cursor += m
		}
	}
	if err != nil {
		return 0, err
	}
	return size, nil
}
