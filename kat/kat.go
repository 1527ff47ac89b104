// Package kat implements the binary known-answer-test record format:
// one fixed-layout record per (level, seed, message, keypair,
// signature-or-ciphertext) tuple, written by cmd/clwekat (which does
// not read records back; ReadRecord/ReadAll decode the same layout).
// Grounded on original_source/linux/sign/generate_kat_vectors.cpp's
// field ordering, reimplemented with encoding/binary rather than
// ported verbatim since the original writes raw C structs.
package kat

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Record is one known-answer-test entry. Level is a caller-defined
// parameter-set identifier (e.g. 512/768/1024 for mlkem, 44/65/87 for
// mldsa); Sig holds either a signature or a ciphertext depending on
// which scheme produced the record, and Sk/Pk hold the corresponding
// encoded keys.
type Record struct {
	Level uint32
	Seed  [32]byte
	Msg   []byte
	Pk    []byte
	Sk    []byte
	Sig   []byte
}

func writeChunk(w io.Writer, b []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readChunk(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Write encodes r to w as
// u32 level; seed[32]; u32 msg_len; msg; u32 pk_len; pk; u32 sk_len; sk; u32 sig_len; sig
// in little-endian byte order.
func (r *Record) Write(w io.Writer) error {
	var levelBuf [4]byte
	binary.LittleEndian.PutUint32(levelBuf[:], r.Level)
	if _, err := w.Write(levelBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(r.Seed[:]); err != nil {
		return err
	}
	for _, chunk := range [][]byte{r.Msg, r.Pk, r.Sk, r.Sig} {
		if err := writeChunk(w, chunk); err != nil {
			return err
		}
	}
	return nil
}

// ReadRecord decodes one Record from r, following the layout Write
// produces. Returns io.EOF when r is exhausted between records.
func ReadRecord(r io.Reader) (*Record, error) {
	rec := &Record{}
	var levelBuf [4]byte
	if _, err := io.ReadFull(r, levelBuf[:]); err != nil {
		return nil, err
	}
	rec.Level = binary.LittleEndian.Uint32(levelBuf[:])
	if _, err := io.ReadFull(r, rec.Seed[:]); err != nil {
		return nil, err
	}
	var err error
	if rec.Msg, err = readChunk(r); err != nil {
		return nil, err
	}
	if rec.Pk, err = readChunk(r); err != nil {
		return nil, err
	}
	if rec.Sk, err = readChunk(r); err != nil {
		return nil, err
	}
	if rec.Sig, err = readChunk(r); err != nil {
		return nil, err
	}
	return rec, nil
}

// WriteAll writes every record in recs to w.
func WriteAll(w io.Writer, recs []*Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		if err := r.Write(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadAll reads records from r until EOF.
func ReadAll(r io.Reader) ([]*Record, error) {
	br := bufio.NewReader(r)
	var recs []*Record
	for {
		rec, err := ReadRecord(br)
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}
