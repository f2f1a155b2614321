package codec

import (
	"math/big"

	"github.com/wippyai/borsh/errors"
)

const wideSize = 16

var (
	wideModulus = new(big.Int).Lsh(big.NewInt(1), 128)
	wideMaxU    = new(big.Int).Sub(wideModulus, big.NewInt(1))
	wideMaxI    = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	wideMinI    = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// U128 and I128 encode 128-bit integers held in *big.Int, two's complement
// little-endian.
var (
	U128 Fixed[*big.Int] = &wideInt{family: FamilyU128}
	I128 Fixed[*big.Int] = &wideInt{family: FamilyI128, signed: true}
)

type wideInt struct {
	family Family
	signed bool
}

func (w *wideInt) ByteSize() int       { return wideSize }
func (w *wideInt) Description() string { return string(w.family) }

func (w *wideInt) Shape() Shape {
	return Shape{Family: w.family, Description: string(w.family), Fixed: true, ByteSize: wideSize}
}

func (w *wideInt) inRange(v *big.Int) bool {
	if w.signed {
		return v.Cmp(wideMinI) >= 0 && v.Cmp(wideMaxI) <= 0
	}
	return v.Sign() >= 0 && v.Cmp(wideMaxU) <= 0
}

func (w *wideInt) Write(buf []byte, offset int, v *big.Int) error {
	desc := string(w.family)
	if v == nil {
		return errors.ShapeMismatch(errors.PhaseEncode, nil, desc, "nil integer")
	}
	if !w.inRange(v) {
		return errors.Overflow(errors.PhaseEncode, nil, v.String(), desc)
	}
	if err := checkRange(errors.PhaseEncode, buf, offset, wideSize, desc); err != nil {
		return err
	}

	u := v
	if v.Sign() < 0 {
		u = new(big.Int).Add(v, wideModulus)
	}
	var be [wideSize]byte
	u.FillBytes(be[:])
	for i := 0; i < wideSize; i++ {
		buf[offset+i] = be[wideSize-1-i]
	}
	return nil
}

func (w *wideInt) Read(buf []byte, offset int) (*big.Int, error) {
	if err := checkRange(errors.PhaseDecode, buf, offset, wideSize, string(w.family)); err != nil {
		return nil, err
	}
	var be [wideSize]byte
	for i := 0; i < wideSize; i++ {
		be[i] = buf[offset+wideSize-1-i]
	}
	v := new(big.Int).SetBytes(be[:])
	if w.signed && be[0]&0x80 != 0 {
		v.Sub(v, wideModulus)
	}
	return v, nil
}
