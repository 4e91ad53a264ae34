// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Parse parses a program in text form: base 10 integers separated by commas.
// White space around the program and around each value is ignored.
func Parse(s string) ([]Cell, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(ErrParseProgram, "empty program")
	}
	toks := strings.Split(s, ",")
	prog := make([]Cell, len(toks))
	for n, t := range toks {
		v, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrParseProgram, "value #%d %q", n, t)
		}
		prog[n] = Cell(v)
	}
	return prog, nil
}

// Format returns the text form of a program.
func Format(prog []Cell) string {
	var b strings.Builder
	for n, v := range prog {
		if n > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	return b.String()
}

// Load loads a program in text form from file fileName. Files compressed with
// zstd are decompressed transparently.
func Load(fileName string) ([]Cell, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(err, "Load")
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, errors.Wrapf(err, "Load %v", fileName)
		}
	}
	prog, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "Load %v", fileName)
	}
	return prog, nil
}

// Save saves a program in text form to file fileName, compressed with zstd if
// compress is true.
func Save(fileName string, prog []Cell, compress bool) error {
	data := []byte(Format(prog) + "\n")
	if compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return errors.Wrap(err, "Save")
		}
		data = enc.EncodeAll(data, nil)
		if err = enc.Close(); err != nil {
			return errors.Wrap(err, "Save")
		}
	}
	return errors.Wrap(os.WriteFile(fileName, data, 0o644), "Save")
}
