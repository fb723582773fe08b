/*
 * compress.go, part of moleview.
 *
 *
 * Copyright 2026 The moleview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chem

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Compression suffixes understood by the readers and writers.
const (
	gzipSuffix = ".gz"
	zstdSuffix = ".zst"
)

//stripCompression returns name without a compression suffix, and the suffix
//that was removed, if any.
func stripCompression(name string) (string, string) {
	lower := strings.ToLower(name)
	for _, suf := range []string{gzipSuffix, zstdSuffix, ".zstd"} {
		if strings.HasSuffix(lower, suf) {
			c := suf
			if c == ".zstd" {
				c = zstdSuffix
			}
			return name[:len(name)-len(suf)], c
		}
	}
	return name, ""
}

//Format returns the structure format of the file name, guessed from its
//extension, looking through a compression suffix. It returns "xyz", "pdb"
//or the empty string if the format is not known.
func Format(name string) string {
	base, _ := stripCompression(name)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".xyz":
		return "xyz"
	case ".pdb", ".ent":
		return "pdb"
	}
	return ""
}

//closers closes a stack of closers, last opened first.
type closers []io.Closer

func (c closers) Close() error {
	var first error
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type readCloser struct {
	io.Reader
	closers
}

type writeCloser struct {
	io.Writer
	closers
}

//zstdCloser adapts the Close method of a zstd.Decoder, which returns nothing.
type zstdCloser struct{ *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//openStructure opens name for reading, decompressing it if its name
//ends in .gz or .zst.
func openStructure(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	_, comp := stripCompression(name)
	switch comp {
	case gzipSuffix:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return readCloser{gz, closers{f, gz}}, nil
	case zstdSuffix:
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return readCloser{dec, closers{f, zstdCloser{dec}}}, nil
	}
	return f, nil
}

//createStructure creates name for writing, compressing the output if the name
//ends in .gz or .zst. The returned WriteCloser must be closed to flush the
//compressed stream.
func createStructure(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	_, comp := stripCompression(name)
	switch comp {
	case gzipSuffix:
		gz := gzip.NewWriter(f)
		return writeCloser{gz, closers{f, gz}}, nil
	case zstdSuffix:
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, err
		}
		return writeCloser{enc, closers{f, enc}}, nil
	}
	return f, nil
}
