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

// Package amp runs chains of amplifiers, each amplifier being an Intcode
// instance running the same program.
//
// Every amplifier first reads its phase setting, then the input signal. The
// first amplifier receives 0 as input signal, each subsequent amplifier
// receives the output of the previous one. In feedback mode, the output of the
// last amplifier is also fed back into the first one, until all amplifiers
// halt.
package amp

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Errors returned by Run.
var (
	ErrNoOutput     = errors.New("no output from the last amplifier")
	ErrNoAmplifiers = errors.New("no phase settings")
)

type config struct {
	feedback bool
	log      logrus.FieldLogger
	vmOpts   []vm.Option
}

// Option configures Run and MaxSignal.
type Option func(*config)

// Feedback enables or disables the feedback loop.
func Feedback(enable bool) Option {
	return func(c *config) { c.feedback = enable }
}

// Logger sets the logger used for debug output. The default is the logrus
// standard logger.
func Logger(l logrus.FieldLogger) Option {
	return func(c *config) { c.log = l }
}

// VMOptions sets additional options for every amplifier instance, like
// vm.MaxSteps. Input and output options are overridden.
func VMOptions(opts ...vm.Option) Option {
	return func(c *config) { c.vmOpts = opts }
}

func newConfig(opts []Option) *config {
	c := &config{log: logrus.StandardLogger()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run runs a chain of len(phases) amplifiers and returns the last signal
// output by the last amplifier.
//
// Amplifiers run concurrently, each on its own goroutine and with its own copy
// of the program, connected by vm.Channel values of capacity 1. When an
// amplifier fails, its input and output channels are closed so that its
// neighbours fail instead of waiting forever; Run then returns the first
// error.
func Run(program []vm.Cell, phases []vm.Cell, opts ...Option) (vm.Cell, error) {
	return run(program, phases, newConfig(opts))
}

func run(program []vm.Cell, phases []vm.Cell, c *config) (vm.Cell, error) {
	n := len(phases)
	if n == 0 {
		return 0, ErrNoAmplifiers
	}
	// ch[i] connects amplifier i-1 to amplifier i. ch[0] is the feedback
	// loop.
	ch := make([]*vm.Channel, n)
	for i := range ch {
		ch[i] = vm.NewChannel(1)
	}
	var signal vm.Latch
	var g errgroup.Group
	for i, phase := range phases {
		var in vm.Source
		switch {
		case i > 0:
			in = vm.MultiSource(vm.Values(phase), ch[i])
		case c.feedback:
			in = vm.MultiSource(vm.Values(phase, 0), ch[0])
		default:
			in = vm.Values(phase, 0)
		}
		var out vm.Sink
		var outCh *vm.Channel
		switch {
		case i < n-1:
			outCh = ch[i+1]
			out = outCh
		case c.feedback:
			outCh = ch[0]
			out = vm.Tee(&signal, outCh)
		default:
			out = &signal
		}
		inCh := ch[i]
		if i == 0 && !c.feedback {
			inCh = nil
		}
		opts := append(append([]vm.Option(nil), c.vmOpts...), vm.Input(in), vm.Output(out))
		inst, err := vm.New(program, opts...)
		if err != nil {
			return 0, err
		}
		i := i
		g.Go(func() error {
			err := inst.Run()
			if outCh != nil {
				outCh.Close()
			}
			if err != nil {
				if inCh != nil {
					inCh.Close()
				}
				return errors.Wrapf(err, "amplifier %d", i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	v, ok := signal.Value()
	if !ok {
		return 0, ErrNoOutput
	}
	return v, nil
}

// MaxSignal runs Run for every permutation of the given phase settings and
// returns the highest signal along with the corresponding phase order. It
// stops at the first error.
func MaxSignal(program []vm.Cell, phases []vm.Cell, opts ...Option) (best vm.Cell, order []vm.Cell, err error) {
	c := newConfig(opts)
	p := append([]vm.Cell(nil), phases...)
	err = Permute(p, func(p []vm.Cell) error {
		s, err := run(program, p, c)
		if err != nil {
			return errors.Wrapf(err, "phases %v", p)
		}
		c.log.WithFields(logrus.Fields{"phases": p, "signal": s}).Debug("amplifier chain")
		if order == nil || s > best {
			best = s
			order = append(order[:0], p...)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return best, order, nil
}

// Permute calls fn for every permutation of v, using Heap's algorithm. v is
// permuted in place and fn must not modify it. If fn returns an error, Permute
// stops and returns that error.
func Permute(v []vm.Cell, fn func([]vm.Cell) error) error {
	c := make([]int, len(v))
	if err := fn(v); err != nil {
		return err
	}
	for i := 1; i < len(v); {
		if c[i] < i {
			if i%2 == 0 {
				v[0], v[i] = v[i], v[0]
			} else {
				v[c[i]], v[i] = v[i], v[c[i]]
			}
			if err := fn(v); err != nil {
				return err
			}
			c[i]++
			i = 1
			continue
		}
		c[i] = 0
		i++
	}
	return nil
}
