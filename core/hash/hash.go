package hash

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/zeebo/blake3"
)

// DigestLengthBytes is the length of a Sum output.
const DigestLengthBytes = 32

// BytesWithDomain is a byte string tagged with a domain label, so that two
// writes of the same bytes under different labels never collide in the
// transcript.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

// WriteTo implements io.WriterTo so that BytesWithDomain satisfies
// WriterToWithDomain.
func (bwd BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bwd.Bytes)
	return int64(n), err
}

// Domain implements WriterToWithDomain.
func (bwd BytesWithDomain) Domain() string {
	return bwd.TheDomain
}

// WriterToWithDomain lets a type control its own transcript encoding.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns the label separating this type within the hash.
	Domain() string
}

// Hash is a domain-separated transcript hash over BLAKE3. It is used for
// key identifiers and announcement identifiers; the signature challenge
// hash is fixed by the scheme and never goes through here.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash and writes any initial data into it.
func New(initialData ...WriterToWithDomain) *Hash {
	hash := &Hash{h: blake3.New()}
	_, _ = hash.h.WriteString("DLC-BLAKE3")
	for _, d := range initialData {
		_ = hash.WriteAny(d)
	}
	return hash
}

// Digest returns a reader for an arbitrary amount of output bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a digest of everything written so far. The hash state is
// not consumed.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny writes data into the transcript, tagging each item with a
// domain derived from its type.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var toBeWritten BytesWithDomain
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			if t == nil {
				return errors.New("hash.WriteAny: nil []byte")
			}
			toBeWritten = BytesWithDomain{"[]byte", t}
		case *big.Int:
			if t == nil {
				return errors.New("hash.WriteAny: nil *big.Int")
			}
			b, _ := t.GobEncode()
			toBeWritten = BytesWithDomain{"big.Int", b}
		case WriterToWithDomain:
			buf := new(bytes.Buffer)
			if _, err := t.WriteTo(buf); err != nil {
				return fmt.Errorf("hash.WriteAny: %s: %w", reflect.TypeOf(t).String(), err)
			}
			toBeWritten = BytesWithDomain{t.Domain(), buf.Bytes()}
		case encoding.BinaryMarshaler:
			name := reflect.TypeOf(t).String()
			b, err := t.MarshalBinary()
			if err != nil {
				return fmt.Errorf("hash.WriteAny: %s: %w", name, err)
			}
			toBeWritten = BytesWithDomain{name, b}
		default:
			return fmt.Errorf("hash.WriteAny: unsupported type %T", d)
		}

		hash.writeBytesWithDomain(toBeWritten)
	}
	return nil
}

func (hash *Hash) writeBytesWithDomain(toBeWritten BytesWithDomain) {
	var sizeBuf [8]byte

	// Write out `(<domain_size><domain><data_size><data>)` so that each
	// domain separated piece of data is distinguished from its neighbors.

	_, _ = hash.h.WriteString("(")
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(toBeWritten.TheDomain)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.WriteString(toBeWritten.TheDomain)
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(toBeWritten.Bytes)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.Write(toBeWritten.Bytes)
	_, _ = hash.h.WriteString(")")
}

// Clone returns an independent copy of the hash with the same state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}
