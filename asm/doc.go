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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Parameters marked with a star are write targets and cannot use immediate
//	mode.
//
//	opcode	asm	params	description
//	------	---	------	-----------------------------------------------------------
//	1	add	a b c*	c = a + b
//	2	mul	a b c*	c = a * b
//	3	in	a*	read a value from the input and store it in a
//	4	out	a	write a to the output
//	5	jnz	a b	jump to b if a != 0
//	6	jz	a b	jump to b if a == 0
//	7	lt	a b c*	c = 1 if a < b, 0 otherwise
//	8	eq	a b c*	c = 1 if a == b, 0 otherwise
//	9	arb	a	add a to the relative base
//	99	hlt		halt
//
// The instruction word, including the parameter modes, is computed by the
// assembler from the syntax of each parameter:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	rb	relative mode: the value at address rb+0
//	rb+3	relative mode: the value at address rb+3
//	rb-3	relative mode: the value at address rb-3
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Literals and identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. If a
// token can be converted to a Go integer (see strconv.ParseInt), it is an
// integer literal. If it is a Go character literal between single quotes, it
// is converted to the corresponding integer. If it is the name of a constant
// defined earlier with .equ, it is replaced by the constant's value. Any other
// token is a label reference.
//
// Where an instruction is expected, a value compiles as is, like .dat.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be used in
// any parameter or .dat directive. A label used as a plain parameter is an
// address in position mode, prefixed with '#' it is an immediate value:
//
//	:loop	in x		( x is the address of the cell to write to )
//		jnz x #loop	( jump to loop while the input is not 0 )
//		hlt
//	:x	.dat 0
//
// Forward references are allowed. The name rb is reserved.
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant.
//
//	.dat <value>
//
// Will compile the specified integer value, named constant, character literal
// or label address as-is.
package asm
