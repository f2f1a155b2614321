// Package codec provides Borsh-compatible binary codecs built by composition.
//
// A codec is described once and used in both directions. Every codec is one
// of two shapes:
//
//	Fixed    - encoded size is known up front (numbers, fixed arrays of fixed
//	           elements, structs of fixed fields)
//	Fixable  - encoded size depends on the value or on the bytes already
//	           encoded (options, strings, vectors, anything containing them)
//
// A Fixable codec is resolved into a Fixed one before use:
//
//	FixFromValue(c, v)          write path: plan the layout of v before any
//	                            buffer exists
//	FixFromBytes(c, buf, off)   read path: let the bytes at off describe
//	                            their own layout (tags, length prefixes)
//
// Both paths go through the same recursive resolution step, so a value and
// its encoding always resolve to codecs of the same ByteSize.
//
// # Wire Format
//
//	Type               Encoding
//	──────────────────────────────────────────────────────────────
//	u8..u128, i8..i128 little-endian, two's complement
//	f32/f64            IEEE 754 little-endian
//	bool               1 byte, 0 or 1
//	Option<T>          tag (0 absent, 1 present) + T when present
//	COption<T>         4 byte tag + T (payload space always reserved)
//	DataEnum<T>        kind u8 + T
//	Array<T>(N)        N encodings of T, no prefix
//	Vec<T>             u32 count + encodings of T
//	string/bytes       u32 length + bytes
//	struct             field encodings in declared order, no padding
//
// # Encoding Flow
//
//	results := codec.NewStruct("Results", []codec.Field{
//		codec.NewField("win", codec.U8),
//		codec.NewField("totalWin", codec.U16),
//		codec.NewField("losses", codec.I32),
//	}, newResults, resultsArgs)
//
//	buf, err := codec.Encode(results, Results{Win: 20, TotalWin: 1200, Losses: -455})
//	v, err := codec.Decode(results, buf)
//
// # Thread Safety
//
// Codecs are immutable after construction and safe for concurrent use. The
// buffer passed to Write belongs to the caller.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[resolve] malformed_tag at Results.bonus: codec COption<u8> - unexpected tag byte 7
//	[encode] out_of_bounds at Results: codec Results[7] - range [4, 11) out of bounds (length 8)
package codec
