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

package amp_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/db47h/intcode/amp"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C = []vm.Cell

func parse(t *testing.T, s string) C {
	t.Helper()
	p, err := vm.Parse(s)
	require.NoError(t, err)
	return p
}

var linear = [...]struct {
	code   string
	phases C
	signal vm.Cell
}{
	{"3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0", C{4, 3, 2, 1, 0}, 43210},
	{"3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0", C{0, 1, 2, 3, 4}, 54321},
	{"3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0", C{1, 0, 4, 3, 2}, 65210},
}

var feedback = [...]struct {
	code   string
	phases C
	signal vm.Cell
}{
	{"3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5", C{9, 8, 7, 6, 5}, 139629729},
	{"3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10", C{9, 7, 8, 5, 6}, 18216},
}

func TestRun(t *testing.T) {
	for _, test := range linear {
		s, err := amp.Run(parse(t, test.code), test.phases)
		require.NoError(t, err)
		assert.Equal(t, test.signal, s)
	}
	for _, test := range feedback {
		s, err := amp.Run(parse(t, test.code), test.phases, amp.Feedback(true))
		require.NoError(t, err)
		assert.Equal(t, test.signal, s)
	}
}

func TestMaxSignal(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	for _, test := range linear {
		s, order, err := amp.MaxSignal(parse(t, test.code), C{0, 1, 2, 3, 4}, amp.Logger(logger))
		require.NoError(t, err)
		assert.Equal(t, test.signal, s)
		assert.Equal(t, test.phases, order)
	}
	assert.Len(t, hook.AllEntries(), 3*120)
	for _, test := range feedback {
		s, order, err := amp.MaxSignal(parse(t, test.code), C{5, 6, 7, 8, 9}, amp.Feedback(true), amp.Logger(logger))
		require.NoError(t, err)
		assert.Equal(t, test.signal, s)
		assert.Equal(t, test.phases, order)
	}
}

func TestRun_errors(t *testing.T) {
	_, err := amp.Run(parse(t, "99"), C{0, 1})
	assert.ErrorIs(t, err, amp.ErrNoOutput)

	_, err = amp.Run(parse(t, "99"), nil)
	assert.ErrorIs(t, err, amp.ErrNoAmplifiers)

	for _, fb := range []bool{false, true} {
		_, err = amp.Run(parse(t, "98"), C{0, 1, 2}, amp.Feedback(fb))
		assert.ErrorIs(t, err, vm.ErrUnknownOpcode)
	}

	// the first amplifier fails after reading its input, the others must not
	// wait forever.
	_, err = amp.Run(parse(t, "3,0,3,0,1105,1,-1"), C{0, 1, 2}, amp.Feedback(true))
	assert.Error(t, err)

	// runaway amplifiers
	_, err = amp.Run(parse(t, "1105,1,0"), C{0, 1}, amp.VMOptions(vm.MaxSteps(100)))
	assert.ErrorIs(t, err, vm.ErrStepLimit)
}

func TestPermute(t *testing.T) {
	seen := make(map[string]bool)
	v := C{1, 2, 3, 4, 5}
	err := amp.Permute(v, func(p C) error {
		seen[fmt.Sprint(p)] = true
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 120)

	stop := errors.New("stop")
	n := 0
	err = amp.Permute(v, func(C) error {
		n++
		if n == 7 {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 7, n)

	sort.Slice(v, func(i, j int) bool { return v[i] < v[j] })
	assert.Equal(t, C{1, 2, 3, 4, 5}, v)
}

func ExampleMaxSignal() {
	code, _ := vm.Parse("3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	signal, order, err := amp.MaxSignal(code, []vm.Cell{0, 1, 2, 3, 4})
	if err != nil {
		panic(err)
	}
	fmt.Println(signal, order)

	// Output:
	// 43210 [4 3 2 1 0]
}
