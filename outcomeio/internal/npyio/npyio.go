// Package npyio writes one-dimensional arrays in the numpy .npy format
// and bundles them into .npz archives.
package npyio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zip"
)

var order = binary.LittleEndian

// WriteInt64 writes v as a .npy array of little-endian int64.
func WriteInt64(w io.Writer, v []int64) error {
	if err := writeHeader(w, "<i8", len(v)); err != nil {
		return err
	}

	var buf [8]byte
	for _, x := range v {
		order.PutUint64(buf[:], uint64(x))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}

	return nil
}

// WriteFloat64 writes v as a .npy array of little-endian float64.
func WriteFloat64(w io.Writer, v []float64) error {
	if err := writeHeader(w, "<f8", len(v)); err != nil {
		return err
	}

	var buf [8]byte
	for _, x := range v {
		order.PutUint64(buf[:], math.Float64bits(x))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}

	return nil
}

// The header format follows github.com/sbinet/npyio.
var magic = [6]byte{'\x93', 'N', 'U', 'M', 'P', 'Y'}

const (
	majorVersion = byte(2)
	minorVersion = byte(0)
)

func writeHeader(w io.Writer, descr string, numElements int) error {
	if err := binary.Write(w, order, magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, order, majorVersion); err != nil {
		return err
	}
	if err := binary.Write(w, order, minorVersion); err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf,
		"{'descr': '%s', 'fortran_order': False, 'shape': (%d,), }",
		descr, numElements)

	// magic + version + 4-byte header length, then the header dict
	// padded with spaces and terminated by '\n' to a multiple of 16.
	preamble := len(magic) + 2 + 4
	padding := (16 - (preamble+buf.Len()+1)%16) % 16
	buf.Write(bytes.Repeat([]byte{'\x20'}, padding))
	buf.WriteByte('\n')

	buflen := int64(buf.Len())
	if err := binary.Write(w, order, uint32(buflen)); err != nil {
		return err
	}

	if n, err := io.Copy(w, buf); err != nil {
		return err
	} else if n < buflen {
		return io.ErrShortWrite
	}

	return nil
}

// MakeNPZ writes an .npz archive to output with one entry per
// named .npy stream.
func MakeNPZ(npyFiles map[string]io.Reader, output string) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	b := bufio.NewWriter(f)
	z := zip.NewWriter(b)
	for name, r := range npyFiles {
		w, err := z.Create(name + ".npy")
		if err != nil {
			return err
		}

		if _, err := io.Copy(w, r); err != nil {
			return err
		}
	}

	if err := z.Close(); err != nil {
		return err
	}

	if err := b.Flush(); err != nil {
		return err
	}

	return f.Close()
}
