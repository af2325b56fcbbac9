package u128

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
)

var errOverflow = errors.New("value overflows Uint128")

type Uint128 bin.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	} else if i.Sign() < 0 {
		return errors.New("value cannot be negative")
	} else if i.BitLen() > 128 {
		return errOverflow
	}
	u.Lo = i.Uint64()
	u.Hi = i.Rsh(i, 64).Uint64()
	u.Endianness = binary.LittleEndian
	return nil
}

// FromString parses a base-10 integer into a little-endian Uint128.
func FromString(num string) (bin.Uint128, error) {
	var u Uint128
	if _, err := fmt.Sscan(num, &u); err != nil {
		return bin.Uint128{}, fmt.Errorf("parse %q: %w", num, err)
	}
	return bin.Uint128(u), nil
}

func MustFromString(num string) bin.Uint128 {
	u, err := FromString(num)
	if err != nil {
		panic(err)
	}
	return u
}

// FromBig converts v into a little-endian Uint128. Negative values and values
// wider than 128 bits are rejected.
func FromBig(v *big.Int) (bin.Uint128, error) {
	if v.Sign() < 0 {
		return bin.Uint128{}, errors.New("value cannot be negative")
	}
	if v.BitLen() > 128 {
		return bin.Uint128{}, errOverflow
	}
	return bin.Uint128{
		Lo:         new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0))).Uint64(),
		Hi:         new(big.Int).Rsh(v, 64).Uint64(),
		Endianness: binary.LittleEndian,
	}, nil
}

func MustFromBig(v *big.Int) bin.Uint128 {
	u, err := FromBig(v)
	if err != nil {
		panic(err)
	}
	return u
}

func ToBig(v bin.Uint128) *big.Int {
	return v.BigInt()
}
