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

package store_test

import (
	"path/filepath"
	"testing"

	"github.com/db47h/intcode/store"
	"github.com/db47h/intcode/vm"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	quine = []vm.Cell{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	large = []vm.Cell{104, 1125899906842624, 99}
	add   = []vm.Cell{1, 0, 0, 0, 99}
)

func open(t *testing.T, backend string) store.Store {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	path := filepath.Join(t.TempDir(), "programs")
	s, err := store.Open(backend, path, store.Logger(logger))
	require.NoError(t, err)
	return s
}

func TestID(t *testing.T) {
	id := store.Fingerprint(quine)
	assert.Equal(t, id, store.Fingerprint(append([]vm.Cell(nil), quine...)))
	assert.NotEqual(t, id, store.Fingerprint(large))
	p, err := store.ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, p)

	for _, s := range []string{"", "0OIl", "abc"} {
		_, err = store.ParseID(s)
		assert.ErrorIs(t, err, store.ErrInvalidID, s)
	}
}

func TestOpen_unknown(t *testing.T) {
	_, err := store.Open("nope", t.TempDir())
	assert.ErrorIs(t, err, store.ErrBackend)
}

func TestStore(t *testing.T) {
	for _, backend := range []string{"bolt", "badger"} {
		t.Run(backend, func(t *testing.T) {
			s := open(t, backend)
			defer s.Close()

			qid, err := s.Put("quine", quine)
			require.NoError(t, err)
			assert.Equal(t, store.Fingerprint(quine), qid)
			lid, err := s.Put("", large)
			require.NoError(t, err)
			aid, err := s.Put("add", add)
			require.NoError(t, err)

			p, err := s.Get(qid)
			require.NoError(t, err)
			assert.Equal(t, quine, p.Cells)
			assert.Equal(t, "quine", p.Name)
			assert.Equal(t, len(quine), p.Size)

			p, err = s.Lookup("add")
			require.NoError(t, err)
			assert.Equal(t, aid, p.ID)
			p, err = s.Lookup(lid.String())
			require.NoError(t, err)
			assert.Equal(t, large, p.Cells)
			_, err = s.Lookup("missing")
			assert.ErrorIs(t, err, store.ErrNotFound)

			// names are unique
			_, err = s.Put("add", quine)
			assert.ErrorIs(t, err, store.ErrNameTaken)
			// putting the same program again keeps its name
			_, err = s.Put("", quine)
			require.NoError(t, err)
			// renaming
			_, err = s.Put("self", quine)
			require.NoError(t, err)
			_, err = s.Lookup("quine")
			assert.ErrorIs(t, err, store.ErrNotFound)

			l, err := s.List()
			require.NoError(t, err)
			assert.Equal(t, []store.Entry{
				{ID: lid, Name: "", Size: len(large)},
				{ID: aid, Name: "add", Size: len(add)},
				{ID: qid, Name: "self", Size: len(quine)},
			}, l)

			require.NoError(t, s.Delete(aid))
			assert.ErrorIs(t, s.Delete(aid), store.ErrNotFound)
			_, err = s.Lookup("add")
			assert.ErrorIs(t, err, store.ErrNotFound)
			// the name is free again
			_, err = s.Put("add", quine)
			require.NoError(t, err)

			_, err = s.Put("empty", nil)
			assert.ErrorIs(t, err, store.ErrEmpty)

			require.NoError(t, s.Close())
			require.NoError(t, s.Close())
			_, err = s.Get(qid)
			assert.ErrorIs(t, err, store.ErrClosed)
		})
	}
}

func TestStore_reopen(t *testing.T) {
	for _, backend := range []string{"bolt", "badger"} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "programs")
			s, err := store.Open(backend, path)
			require.NoError(t, err)
			id, err := s.Put("quine", quine)
			require.NoError(t, err)
			require.NoError(t, s.Close())

			s, err = store.Open(backend, path)
			require.NoError(t, err)
			defer s.Close()
			p, err := s.Lookup("quine")
			require.NoError(t, err)
			assert.Equal(t, id, p.ID)
			assert.Equal(t, quine, p.Cells)

			// the stored program runs
			var out vm.Log
			i, err := vm.New(p.Cells, vm.Output(&out))
			require.NoError(t, err)
			require.NoError(t, i.Run())
			assert.Equal(t, quine, []vm.Cell(out))
		})
	}
}
