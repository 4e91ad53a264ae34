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

package droid

import (
	"io"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// VMRemote is a Remote for a droid controlled by an Intcode program running on
// its own goroutine.
type VMRemote struct {
	in  *vm.Channel
	out *vm.Channel
	g   errgroup.Group
}

// Start starts the droid program and returns a remote for it. The caller must
// call Close when done with the remote.
func Start(program []vm.Cell, opts ...vm.Option) (*VMRemote, error) {
	r := &VMRemote{
		in:  vm.NewChannel(1),
		out: vm.NewChannel(1),
	}
	i, err := vm.New(program, append(opts[:len(opts):len(opts)], vm.Input(r.in), vm.Output(r.out))...)
	if err != nil {
		return nil, err
	}
	r.g.Go(func() error {
		defer r.out.Close()
		err := i.Run()
		if err != nil {
			r.in.Close()
		}
		return err
	})
	return r, nil
}

// Move implements Remote.
func (r *VMRemote) Move(d Direction) (Status, error) {
	if err := r.in.Accept(vm.Cell(d)); err != nil {
		return 0, r.exitError()
	}
	v, err := r.out.Next()
	if err != nil {
		return 0, r.exitError()
	}
	s := Status(v)
	if s != Wall && s != Moved && s != Oxygen {
		return 0, errors.Wrapf(ErrUnknownStatus, "%d", v)
	}
	return s, nil
}

func (r *VMRemote) exitError() error {
	if err := r.g.Wait(); err != nil {
		return err
	}
	return errors.Wrap(ErrProtocol, "droid program halted")
}

// Close stops the droid program by closing its input, and waits for it to
// terminate. A program failing because it reached the end of its input is not
// an error.
func (r *VMRemote) Close() error {
	r.in.Close()
	err := r.g.Wait()
	if errors.Is(err, vm.ErrReadInput) && errors.Cause(err) == io.EOF {
		return nil
	}
	return err
}
