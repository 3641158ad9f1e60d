// Package encoding defines the binary row format the key-value executor
// persists: a flavor byte, four big-endian position keys, and four
// length-prefixed display strings.
package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/aleksaelezovic/quadstore/pkg/quad"
)

const (
	// flavor byte + 4 position keys + 4 string length prefixes
	fixedHeaderSize = 1 + 4*8
	lenPrefixSize   = 4
)

// EncodeID renders a quadruple id as the 8-byte big-endian key used by
// the KV executor, preserving lexicographic order.
func EncodeID(id quad.ID) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// DecodeID reads an 8-byte big-endian quadruple id.
func DecodeID(buf []byte) (quad.ID, error) {
	if len(buf) != 8 {
		return 0, fmt.Errorf("invalid id key length: %d", len(buf))
	}
	return quad.ID(binary.BigEndian.Uint64(buf)), nil
}

// EncodeRow serializes a row. The id itself is not stored in the value;
// it is the key.
func EncodeRow(r quad.Row) []byte {
	strs := [4]string{r.Context, r.Subject, r.Predicate, r.Object}

	size := fixedHeaderSize
	for _, s := range strs {
		size += lenPrefixSize + len(s)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, byte(r.Flavor))
	buf = binary.BigEndian.AppendUint64(buf, r.ContextKey)
	buf = binary.BigEndian.AppendUint64(buf, r.SubjectKey)
	buf = binary.BigEndian.AppendUint64(buf, r.PredicateKey)
	buf = binary.BigEndian.AppendUint64(buf, r.ObjectKey)
	for _, s := range strs {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(s))) // #nosec G115 - term strings never approach 4GiB
		buf = append(buf, s...)
	}
	return buf
}

// DecodeRow deserializes a row stored under the given id.
func DecodeRow(id quad.ID, buf []byte) (quad.Row, error) {
	var r quad.Row
	if len(buf) < fixedHeaderSize {
		return r, fmt.Errorf("row value truncated: %d bytes", len(buf))
	}

	r.ID = id
	r.Flavor = quad.Flavor(buf[0])
	if !r.Flavor.Valid() {
		return r, fmt.Errorf("row %d carries invalid flavor byte %d", id, buf[0])
	}
	r.ContextKey = binary.BigEndian.Uint64(buf[1:9])
	r.SubjectKey = binary.BigEndian.Uint64(buf[9:17])
	r.PredicateKey = binary.BigEndian.Uint64(buf[17:25])
	r.ObjectKey = binary.BigEndian.Uint64(buf[25:33])

	rest := buf[33:]
	strs := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		if len(rest) < lenPrefixSize {
			return r, fmt.Errorf("row value truncated in string %d", i)
		}
		n := binary.BigEndian.Uint32(rest[:lenPrefixSize])
		rest = rest[lenPrefixSize:]
		if uint32(len(rest)) < n {
			return r, fmt.Errorf("row value truncated in string %d", i)
		}
		strs = append(strs, string(rest[:n]))
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return r, fmt.Errorf("row value has %d trailing bytes", len(rest))
	}

	r.Context, r.Subject, r.Predicate, r.Object = strs[0], strs[1], strs[2], strs[3]
	return r, nil
}
