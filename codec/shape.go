package codec

// Family is the stable key of a codec family. The registry package maps
// families to documentation metadata.
type Family string

const (
	FamilyU8                    Family = "u8"
	FamilyU16                   Family = "u16"
	FamilyU32                   Family = "u32"
	FamilyU64                   Family = "u64"
	FamilyU128                  Family = "u128"
	FamilyI8                    Family = "i8"
	FamilyI16                   Family = "i16"
	FamilyI32                   Family = "i32"
	FamilyI64                   Family = "i64"
	FamilyI128                  Family = "i128"
	FamilyF32                   Family = "f32"
	FamilyF64                   Family = "f64"
	FamilyBool                  Family = "bool"
	FamilyString                Family = "string"
	FamilyFixedSizeString       Family = "fixedSizeString"
	FamilyBytes                 Family = "bytes"
	FamilyFixedSizeBytes        Family = "fixedSizeBytes"
	FamilyOption                Family = "option"
	FamilyCOption               Family = "coption"
	FamilyDataEnum              Family = "dataEnum"
	FamilyUniformFixedSizeArray Family = "uniformFixedSizeArray"
	FamilyVec                   Family = "vec"
	FamilyStruct                Family = "struct"
	FamilyUnknown               Family = "unknown"
)

// Shape describes a codec tree for tooling. It never affects encoding.
type Shape struct {
	Family      Family
	Description string
	Fixed       bool
	ByteSize    int // valid when Fixed
	Len         int // element count for arrays, byte count for fixed strings/bytes
	Elem        *Shape
	Fields      []FieldShape
}

// FieldShape is one named member of a struct shape.
type FieldShape struct {
	Name     string
	Optional bool
	Shape    Shape
}

// Shaper is implemented by every codec in this package.
type Shaper interface {
	Shape() Shape
}

// ShapeOf returns the shape of c. Codecs that do not implement Shaper are
// reported as FamilyUnknown.
func ShapeOf(c interface{ Description() string }) Shape {
	if s, ok := c.(Shaper); ok {
		return s.Shape()
	}
	return Shape{Family: FamilyUnknown, Description: c.Description()}
}

func elemShape(c interface{ Description() string }) *Shape {
	s := ShapeOf(c)
	return &s
}
