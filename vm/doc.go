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

// Package vm implements an Intcode virtual machine.
//
// An Intcode program is a flat sequence of signed integers. The VM executes it
// in place: the program is its own memory, and memory extends beyond the loaded
// program on demand. Each instruction word encodes an opcode in its two low
// decimal digits, and one addressing mode per parameter in the digits above:
//
//	opcode	asm	params	description
//	------	---	------	-----------------------------------------------
//	1	add	a b c	c = a + b
//	2	mul	a b c	c = a * b
//	3	in	a	a = next value from the input Source
//	4	out	a	send a to the output Sink
//	5	jnz	a b	if a != 0, jump to b
//	6	jz	a b	if a == 0, jump to b
//	7	lt	a b c	c = 1 if a < b, else 0
//	8	eq	a b c	c = 1 if a == b, else 0
//	9	arb	a	add a to the relative base
//	99	hlt		halt
//
//	mode	name		read			write
//	----	---------	-----------------	-----------------
//	0	position	mem[p]			mem[p]
//	1	immediate	p			error
//	2	relative	mem[rb + p]		mem[rb + p]
//
// Communication between an Intcode program and Go code goes through two small
// capability interfaces: a Source supplies values to IN instructions and a Sink
// receives the values of OUT instructions. The VM only ever calls Source.Next
// and Sink.Accept, so the same program can run against a fixed list of values,
// collect its output in a slice, or take part in a pipeline of VMs running on
// separate goroutines and connected with Channels.
//
// Suspension happens only at IN (waiting for a value) and OUT (waiting for
// room in a Channel). An Instance is owned by a single goroutine.
package vm
