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

package store

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// badgerLogger demotes badger info messages to debug level.
type badgerLogger struct {
	logrus.FieldLogger
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Debugf(format, args...)
}

type badgerBackend struct {
	db *badger.DB
}

func openBadger(path string, log logrus.FieldLogger) (backend, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{log})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerBackend{db}, nil
}

// tables are mapped to key prefixes.
func tableKey(table string, key []byte) []byte {
	k := make([]byte, 0, len(table)+1+len(key))
	k = append(k, table...)
	k = append(k, '/')
	return append(k, key...)
}

type badgerTxn struct {
	txn *badger.Txn
}

func (t badgerTxn) get(table string, key []byte) ([]byte, error) {
	item, err := t.txn.Get(tableKey(table, key))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (t badgerTxn) put(table string, key, value []byte) error {
	return t.txn.Set(tableKey(table, key), value)
}

func (t badgerTxn) del(table string, key []byte) error {
	return t.txn.Delete(tableKey(table, key))
}

func (t badgerTxn) each(table string, fn func(k, v []byte) error) error {
	prefix := tableKey(table, nil)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := t.txn.NewIterator(opts)
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		err := item.Value(func(v []byte) error {
			return fn(item.Key()[len(prefix):], v)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *badgerBackend) view(fn func(txn) error) error {
	return b.db.View(func(tx *badger.Txn) error { return fn(badgerTxn{tx}) })
}

func (b *badgerBackend) update(fn func(txn) error) error {
	return b.db.Update(func(tx *badger.Txn) error { return fn(badgerTxn{tx}) })
}

func (b *badgerBackend) close() error {
	return b.db.Close()
}
