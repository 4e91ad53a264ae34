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
	"time"

	bolt "go.etcd.io/bbolt"
)

type boltBackend struct {
	db *bolt.DB
}

func openBolt(path string) (backend, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range tables {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &boltBackend{db}, nil
}

type boltTxn struct {
	tx *bolt.Tx
}

func (t boltTxn) get(table string, key []byte) ([]byte, error) {
	v := t.tx.Bucket([]byte(table)).Get(key)
	if v == nil {
		return nil, nil
	}
	// v is only valid for the lifetime of the transaction
	return append([]byte(nil), v...), nil
}

func (t boltTxn) put(table string, key, value []byte) error {
	return t.tx.Bucket([]byte(table)).Put(key, value)
}

func (t boltTxn) del(table string, key []byte) error {
	return t.tx.Bucket([]byte(table)).Delete(key)
}

func (t boltTxn) each(table string, fn func(k, v []byte) error) error {
	return t.tx.Bucket([]byte(table)).ForEach(fn)
}

func (b *boltBackend) view(fn func(txn) error) error {
	return b.db.View(func(tx *bolt.Tx) error { return fn(boltTxn{tx}) })
}

func (b *boltBackend) update(fn func(txn) error) error {
	return b.db.Update(func(tx *bolt.Tx) error { return fn(boltTxn{tx}) })
}

func (b *boltBackend) close() error {
	return b.db.Close()
}
