package codec

import (
	"fmt"

	"github.com/wippyai/borsh/errors"
)

// DataEnum is a one byte kind paired with a payload. The kind is carried
// through uninterpreted; every kind shares the same payload codec.
type DataEnum[D any] struct {
	Kind uint8
	Data D
}

// NewDataEnum returns the fixed codec [kind: u8][payload].
func NewDataEnum[D any](payload Fixed[D]) Fixed[DataEnum[D]] {
	return &dataEnumFixed[D]{payload: payload}
}

type dataEnumFixed[D any] struct {
	payload Fixed[D]
}

func (c *dataEnumFixed[D]) ByteSize() int { return 1 + c.payload.ByteSize() }

func (c *dataEnumFixed[D]) Description() string {
	return fmt.Sprintf("DataEnum<%s>", c.payload.Description())
}

func (c *dataEnumFixed[D]) Shape() Shape {
	return Shape{
		Family:      FamilyDataEnum,
		Description: c.Description(),
		Fixed:       true,
		ByteSize:    c.ByteSize(),
		Elem:        elemShape(c.payload),
	}
}

func (c *dataEnumFixed[D]) Write(buf []byte, offset int, v DataEnum[D]) error {
	if err := checkRange(errors.PhaseEncode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return err
	}
	if err := U8.Write(buf, offset, v.Kind); err != nil {
		return err
	}
	return errors.AtPath(c.payload.Write(buf, offset+1, v.Data), "data")
}

func (c *dataEnumFixed[D]) Read(buf []byte, offset int) (DataEnum[D], error) {
	if err := checkRange(errors.PhaseDecode, buf, offset, c.ByteSize(), c.Description()); err != nil {
		return DataEnum[D]{}, err
	}
	kind, err := U8.Read(buf, offset)
	if err != nil {
		return DataEnum[D]{}, err
	}
	data, err := c.payload.Read(buf, offset+1)
	if err != nil {
		return DataEnum[D]{}, errors.AtPath(err, "data")
	}
	return DataEnum[D]{Kind: kind, Data: data}, nil
}

// DataEnumOf returns a data enum codec over payload. The result is fixed when
// payload is fixed and fixable otherwise.
func DataEnumOf[D any](payload Codec[D]) Codec[DataEnum[D]] {
	if f, ok := payload.(Fixed[D]); ok {
		return NewDataEnum(f)
	}
	return &dataEnumCodec[D]{payload: payload}
}

type dataEnumCodec[D any] struct {
	payload Codec[D]
}

func (c *dataEnumCodec[D]) Description() string {
	return fmt.Sprintf("DataEnum<%s>", c.payload.Description())
}

func (c *dataEnumCodec[D]) Shape() Shape {
	return Shape{Family: FamilyDataEnum, Description: c.Description(), Elem: elemShape(c.payload)}
}

func (c *dataEnumCodec[D]) FixFromBytes(buf []byte, offset int) (Fixed[DataEnum[D]], error) {
	if err := checkRange(errors.PhaseResolve, buf, offset, 1, c.Description()); err != nil {
		return nil, err
	}
	payload, err := FixFromBytes(c.payload, buf, offset+1)
	if err != nil {
		return nil, errors.AtPath(err, "data")
	}
	return NewDataEnum(payload), nil
}

func (c *dataEnumCodec[D]) FixFromValue(v DataEnum[D]) (Fixed[DataEnum[D]], error) {
	payload, err := FixFromValue(c.payload, v.Data)
	if err != nil {
		return nil, errors.AtPath(err, "data")
	}
	return NewDataEnum(payload), nil
}

func (c *dataEnumCodec[D]) Write(buf []byte, offset int, v DataEnum[D]) error {
	return writeFixable[DataEnum[D]](c, buf, offset, v)
}

func (c *dataEnumCodec[D]) Read(buf []byte, offset int) (DataEnum[D], error) {
	return readFixable[DataEnum[D]](c, buf, offset)
}
