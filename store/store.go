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

// Package store implements a library of Intcode programs, persisted in an
// embedded key/value database.
//
// Programs are identified by the blake3 hash of their canonical text form
// (see vm.Format), rendered in base58, and may be given a unique name.
// Two backends are available: "bolt", a single file bbolt database, and
// "badger", a badger database directory.
package store

import (
	"bytes"
	"encoding/gob"
	"sort"
	"sync/atomic"

	"github.com/db47h/intcode/vm"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/blake3"
)

// Errors returned by a Store.
var (
	ErrNotFound  = errors.New("program not found")
	ErrNameTaken = errors.New("name already in use by another program")
	ErrInvalidID = errors.New("invalid program id")
	ErrClosed    = errors.New("store closed")
	ErrBackend   = errors.New("unknown store backend")
	ErrEmpty     = errors.New("empty program")
)

// IDSize is the size in bytes of a program ID.
const IDSize = 32

// ID identifies a program.
type ID [IDSize]byte

// Fingerprint returns the ID of the given program.
func Fingerprint(cells []vm.Cell) ID {
	return ID(blake3.Sum256([]byte(vm.Format(cells))))
}

// ParseID parses the base58 form of an ID.
func ParseID(s string) (ID, error) {
	var id ID
	data, err := base58.Decode(s)
	if err != nil || len(data) != IDSize {
		return id, errors.Wrapf(ErrInvalidID, "%q", s)
	}
	copy(id[:], data)
	return id, nil
}

// String returns the base58 form of the ID.
func (id ID) String() string {
	return base58.Encode(id[:])
}

// Entry describes a program in the library.
type Entry struct {
	ID   ID
	Name string
	Size int // number of cells
}

// Program is a program from the library.
type Program struct {
	Entry
	Cells []vm.Cell
}

// Store is a program library.
type Store interface {
	// Put adds a program to the library and returns its ID. If name is not
	// empty, it is bound to the program, replacing any previous name of the
	// same program.
	Put(name string, cells []vm.Cell) (ID, error)
	// Get returns the program with the given ID.
	Get(id ID) (*Program, error)
	// Lookup returns the program with the given name or ID.
	Lookup(nameOrID string) (*Program, error)
	// List returns all programs in the library, sorted by name then ID.
	List() ([]Entry, error)
	// Delete removes a program and its name from the library.
	Delete(id ID) error
	// Close closes the underlying database.
	Close() error
}

// Table names.
const (
	tablePrograms = "programs"
	tableNames    = "names"
)

var tables = [...]string{tablePrograms, tableNames}

// txn is a database transaction.
type txn interface {
	// get returns nil if the key does not exist.
	get(table string, key []byte) ([]byte, error)
	put(table string, key, value []byte) error
	del(table string, key []byte) error
	each(table string, fn func(k, v []byte) error) error
}

type backend interface {
	view(fn func(txn) error) error
	update(fn func(txn) error) error
	close() error
}

type record struct {
	Name  string
	Cells []vm.Cell
}

func encode(r *record) ([]byte, error) {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(r); err != nil {
		return nil, errors.Wrap(err, "encode program")
	}
	return b.Bytes(), nil
}

func decode(data []byte) (*record, error) {
	var r record
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&r); err != nil {
		return nil, errors.Wrap(err, "decode program")
	}
	return &r, nil
}

type config struct {
	log logrus.FieldLogger
}

// Option configures Open.
type Option func(*config)

// Logger sets the logger of the store. The default is the logrus standard
// logger.
func Logger(l logrus.FieldLogger) Option {
	return func(c *config) { c.log = l }
}

// Open opens the library at path with the given backend kind, "bolt" or
// "badger", creating it if necessary.
func Open(kind, path string, opts ...Option) (Store, error) {
	c := config{log: logrus.StandardLogger()}
	for _, o := range opts {
		o(&c)
	}
	log := c.log.WithFields(logrus.Fields{"backend": kind, "path": path})
	var (
		b   backend
		err error
	)
	switch kind {
	case "bolt":
		b, err = openBolt(path)
	case "badger":
		b, err = openBadger(path, log)
	default:
		return nil, errors.Wrap(ErrBackend, kind)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store", kind)
	}
	log.Debug("store opened")
	return &db{b: b, log: log}, nil
}

type db struct {
	b      backend
	log    logrus.FieldLogger
	closed atomic.Bool
}

func (d *db) Put(name string, cells []vm.Cell) (ID, error) {
	if d.closed.Load() {
		return ID{}, ErrClosed
	}
	if len(cells) == 0 {
		return ID{}, ErrEmpty
	}
	id := Fingerprint(cells)
	err := d.b.update(func(tx txn) error {
		data, err := tx.get(tablePrograms, id[:])
		if err != nil {
			return err
		}
		r := &record{Cells: cells}
		if data != nil {
			if r, err = decode(data); err != nil {
				return err
			}
		}
		if name == "" || name == r.Name {
			if data != nil {
				return nil
			}
		} else {
			other, err := tx.get(tableNames, []byte(name))
			if err != nil {
				return err
			}
			if other != nil && !bytes.Equal(other, id[:]) {
				return errors.Wrap(ErrNameTaken, name)
			}
			if r.Name != "" {
				if err = tx.del(tableNames, []byte(r.Name)); err != nil {
					return err
				}
			}
			if err = tx.put(tableNames, []byte(name), id[:]); err != nil {
				return err
			}
			r.Name = name
		}
		if data, err = encode(r); err != nil {
			return err
		}
		return tx.put(tablePrograms, id[:], data)
	})
	if err != nil {
		return ID{}, err
	}
	d.log.WithFields(logrus.Fields{"id": id, "name": name}).Debug("program stored")
	return id, nil
}

func (d *db) Get(id ID) (*Program, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	var p *Program
	err := d.b.view(func(tx txn) error {
		data, err := tx.get(tablePrograms, id[:])
		if err != nil {
			return err
		}
		if data == nil {
			return errors.Wrap(ErrNotFound, id.String())
		}
		r, err := decode(data)
		if err != nil {
			return err
		}
		p = &Program{Entry{id, r.Name, len(r.Cells)}, r.Cells}
		return nil
	})
	return p, err
}

func (d *db) Lookup(nameOrID string) (*Program, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	var id ID
	err := d.b.view(func(tx txn) error {
		data, err := tx.get(tableNames, []byte(nameOrID))
		if err != nil || data == nil {
			return err
		}
		copy(id[:], data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if id == (ID{}) {
		if id, err = ParseID(nameOrID); err != nil {
			return nil, errors.Wrap(ErrNotFound, nameOrID)
		}
	}
	return d.Get(id)
}

func (d *db) List() ([]Entry, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	var l []Entry
	err := d.b.view(func(tx txn) error {
		return tx.each(tablePrograms, func(k, v []byte) error {
			r, err := decode(v)
			if err != nil {
				return err
			}
			var id ID
			copy(id[:], k)
			l = append(l, Entry{id, r.Name, len(r.Cells)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(l, func(i, j int) bool {
		if l[i].Name != l[j].Name {
			return l[i].Name < l[j].Name
		}
		return bytes.Compare(l[i].ID[:], l[j].ID[:]) < 0
	})
	return l, nil
}

func (d *db) Delete(id ID) error {
	if d.closed.Load() {
		return ErrClosed
	}
	return d.b.update(func(tx txn) error {
		data, err := tx.get(tablePrograms, id[:])
		if err != nil {
			return err
		}
		if data == nil {
			return errors.Wrap(ErrNotFound, id.String())
		}
		r, err := decode(data)
		if err != nil {
			return err
		}
		if r.Name != "" {
			if err = tx.del(tableNames, []byte(r.Name)); err != nil {
				return err
			}
		}
		return tx.del(tablePrograms, id[:])
	})
}

func (d *db) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	return d.b.close()
}
