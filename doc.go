// Package borsh provides Borsh compatible binary codecs for Go.
//
// Borsh is a deterministic, little-endian, length-prefixed binary format.
// Codecs in this module come in two kinds: fixed codecs know their byte size
// up front, fixable codecs (strings, vectors, options, and composites built
// over them) must first be resolved into a fixed codec, either from the
// bytes they are about to read or from the value they are about to write.
//
// # Architecture Overview
//
//	borsh/          Root package with the linear Memory and Allocator interfaces
//	├── codec/      Codec contract, resolution engine and all built-in codecs
//	├── errors/     Structured error types with phase, kind and field path
//	├── registry/   Codec family table and WIT type conversion
//	├── schema/     YAML schema documents compiled into dynamic codecs
//	├── linear/     Transfers through WebAssembly linear memory (wazero)
//	├── store/      Pebble tables of encoded records
//	└── cmd/borsh/  Command line inspector
//
// # Quick Start
//
// Declare a struct codec and encode a value:
//
//	results := codec.NewStruct("Results",
//	    []codec.Field{
//	        codec.NewField("win", codec.U8),
//	        codec.NewField("totalWin", codec.U16),
//	        codec.NewField("losses", codec.I32),
//	    },
//	    func(a codec.Args) (Results, error) { ... },
//	    func(r Results) codec.Args { ... },
//	)
//
//	buf, err := codec.Encode(results, Results{Win: 20, TotalWin: 1200, Losses: -455})
//
// Fixable codecs are used the same way; the helpers resolve them first:
//
//	names := codec.Vec(codec.Utf8String)
//	buf, err := codec.Encode(names, []string{"a", "bc"})
//	got, err := codec.Decode(names, buf)
//
// # Errors
//
// All failures are *errors.Error values carrying the phase (resolve, encode,
// decode, ...), a kind such as malformed_tag or out_of_bounds, and the path
// of struct fields and array indices leading to the failing codec:
//
//	if errors.IsKind(err, errors.KindMalformedTag) { ... }
//
// # Thread Safety
//
// Codecs are immutable after construction and safe for concurrent use.
// linear.BumpAllocator and store.DB serialize their own state.
package borsh
