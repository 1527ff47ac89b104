// Command clwekat generates known-answer-test vectors for the mlkem
// and mldsa packages, writing them in the binary format package kat
// implements; it does not read or check existing vectors. Grounded on
// original_source/linux/sign/generate_kat_vectors.cpp and
// original_source/windows/sign/generate_all_kat_vectors.cpp's
// generate-then-verify shape, reimplemented as ambient test tooling
// rather than core functionality (spec.md §1 names KAT-blob file I/O
// as an external collaborator, not a core concern).
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kr/pretty"

	"clwe/kat"
	"clwe/mldsa"
	"clwe/mlkem"
)

func main() {
	var (
		scheme  = flag.String("scheme", "mlkem", "scheme to generate vectors for: mlkem or mldsa")
		level   = flag.String("level", "768", "parameter level (mlkem: 512/768/1024, mldsa: 44/65/87)")
		count   = flag.Int("count", 10, "number of vectors to generate")
		out     = flag.String("out", "", "output file path (required)")
		verbose = flag.Bool("verbose", false, "pretty-print every generated record")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *out == "" {
		logger.Error("missing required -out flag")
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Error("create output file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	var recs []*kat.Record
	switch *scheme {
	case "mlkem":
		recs, err = generateKEMVectors(*level, *count)
	case "mldsa":
		recs, err = generateSignVectors(*level, *count)
	default:
		err = fmt.Errorf("unknown scheme %q", *scheme)
	}
	if err != nil {
		logger.Error("generate vectors", "error", err)
		os.Exit(1)
	}

	if *verbose {
		for _, r := range recs {
			pretty.Println(r)
		}
	}

	if err := kat.WriteAll(f, recs); err != nil {
		logger.Error("write vectors", "error", err)
		os.Exit(1)
	}
	logger.Info("wrote vectors", "count", len(recs), "scheme", *scheme, "level", *level, "path", *out)
}

func kemForLevel(level string) (*mlkem.KEM, uint32, error) {
	switch level {
	case "512":
		return mlkem.NewKEM512Scheme(), 512, nil
	case "768":
		return mlkem.NewKEM768Scheme(), 768, nil
	case "1024":
		return mlkem.NewKEM1024Scheme(), 1024, nil
	default:
		return nil, 0, fmt.Errorf("unknown mlkem level %q", level)
	}
}

func signerForLevel(level string) (*mldsa.Signer, uint32, error) {
	switch level {
	case "44":
		return mldsa.NewSigner44(), 44, nil
	case "65":
		return mldsa.NewSigner65(), 65, nil
	case "87":
		return mldsa.NewSigner87(), 87, nil
	default:
		return nil, 0, fmt.Errorf("unknown mldsa level %q", level)
	}
}

func generateKEMVectors(level string, count int) ([]*kat.Record, error) {
	k, levelID, err := kemForLevel(level)
	if err != nil {
		return nil, err
	}
	recs := make([]*kat.Record, 0, count)
	for i := 0; i < count; i++ {
		pub, priv, err := k.Keygen(rand.Reader)
		if err != nil {
			return nil, err
		}
		ct, ss, err := k.Encapsulate(rand.Reader, pub)
		if err != nil {
			return nil, err
		}
		rec := &kat.Record{
			Level: levelID,
			Msg:   ss,
			Pk:    pub.Bytes(),
			Sk:    priv.Bytes(),
			Sig:   ct,
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func generateSignVectors(level string, count int) ([]*kat.Record, error) {
	s, levelID, err := signerForLevel(level)
	if err != nil {
		return nil, err
	}
	recs := make([]*kat.Record, 0, count)
	for i := 0; i < count; i++ {
		pub, priv, err := s.Keygen(rand.Reader)
		if err != nil {
			return nil, err
		}
		msg := make([]byte, 32)
		if _, err := rand.Read(msg); err != nil {
			return nil, err
		}
		sig, err := s.Sign(rand.Reader, priv, msg, nil)
		if err != nil {
			return nil, err
		}
		rec := &kat.Record{
			Level: levelID,
			Msg:   msg,
			Pk:    pub.Bytes(),
			Sk:    priv.Bytes(),
			Sig:   sig,
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
