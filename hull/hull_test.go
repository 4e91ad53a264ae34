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

package hull_test

import (
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/hull"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, code string) []vm.Cell {
	t.Helper()
	img, err := asm.Assemble(t.Name(), strings.NewReader(code))
	require.NoError(t, err)
	return img
}

func TestRobot(t *testing.T) {
	h := hull.New()
	r := hull.NewRobot(h)
	for _, v := range []vm.Cell{1, 0, 0, 0, 1, 0, 1, 0} {
		require.NoError(t, r.Accept(v))
	}
	c, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(hull.White), c, "robot should be back on a white panel")
	for _, v := range []vm.Cell{0, 1, 1, 0, 1, 0} {
		require.NoError(t, r.Accept(v))
	}
	assert.Equal(t, 6, h.Painted())
	p, d := r.Position()
	assert.Equal(t, hull.Point{X: 0, Y: -1}, p)
	assert.Equal(t, hull.Left, d)
}

func TestRobot_protocol(t *testing.T) {
	r := hull.NewRobot(hull.New())
	assert.ErrorIs(t, r.Accept(2), hull.ErrProtocol)
	require.NoError(t, r.Accept(1))
	_, err := r.Next()
	assert.ErrorIs(t, err, hull.ErrProtocol)
	assert.ErrorIs(t, r.Accept(-1), hull.ErrProtocol)
}

func TestRun(t *testing.T) {
	code := assemble(t, `
		in x out #1 out #0
		in x out #1 out #0
		in x out #0 out #1
		hlt
	:x	.dat 0
	`)
	h := hull.New()
	require.NoError(t, hull.Run(code, h))
	assert.Equal(t, 3, h.Painted())
	assert.Equal(t, hull.White, h.Color(hull.Point{X: -1, Y: 0}))
	assert.Equal(t, "██\n  \n", h.String())

	// start on a white panel, paint it black and stop
	code = assemble(t, `
		in x
		jz x #end
		out #0 out #1
	:end	hlt
	:x	.dat 0
	`)
	h = hull.New()
	h.Initial(hull.Point{}, hull.White)
	require.NoError(t, hull.Run(code, h))
	assert.Equal(t, hull.Black, h.Color(hull.Point{}))
	assert.Equal(t, 1, h.Painted())
}

func TestRun_initialColor(t *testing.T) {
	// read the panel and halt without painting
	code := assemble(t, `
		in x
		hlt
	:x	.dat 0
	`)
	h := hull.New()
	h.Initial(hull.Point{}, hull.White)
	require.NoError(t, hull.Run(code, h))
	assert.Equal(t, 0, h.Painted())
	assert.Equal(t, hull.White, h.Color(hull.Point{}))
	assert.Equal(t, "█\n", h.String())
}

func TestRun_keepsOptions(t *testing.T) {
	opts := make([]vm.Option, 1, 3)
	opts[0] = vm.MaxSteps(100)
	require.NoError(t, hull.Run(assemble(t, "hlt"), hull.New(), opts...))
	spare := opts[:3]
	assert.Nil(t, spare[1])
	assert.Nil(t, spare[2])
}

func TestRun_errors(t *testing.T) {
	err := hull.Run(assemble(t, "out #1 hlt"), hull.New())
	assert.ErrorIs(t, err, hull.ErrProtocol)

	err = hull.Run(assemble(t, "out #3 hlt"), hull.New())
	assert.ErrorIs(t, err, vm.ErrWriteOutput)
	assert.ErrorIs(t, err, hull.ErrProtocol)

	err = hull.Run(assemble(t, ":l jz #0 #l"), hull.New(), vm.MaxSteps(10))
	assert.True(t, errors.Is(err, vm.ErrStepLimit))
}
