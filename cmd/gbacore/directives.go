// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/arm7tdmi/gbacore/errors"
)

// memBreak is a "halt when this address holds this value" directive,
// checked against the bus after every cycle.
type memBreak struct {
	addr  uint32
	value uint32
}

// regBreak is the register-file equivalent of memBreak.
type regBreak struct {
	index int
	value uint32
}

// runPlan is the parsed form of a directives file: everything a run needs
// to know before the first cycle executes.
type runPlan struct {
	romPath  string
	biosPath string
	outPath  string
	logPath  string
	cycles   int

	regdump bool
	memdumps []memdumpDirective

	regbreaks []regBreak
	membreaks []memBreak
}

type memdumpDirective struct {
	addr  uint32
	count uint32
}

// parseDirectives reads the directives file from r line by line. Each
// non-blank, non-comment line is a single directive: a keyword followed by
// its arguments, whitespace separated. Lines starting with # are comments.
func parseDirectives(r io.Reader) (*runPlan, error) {
	plan := &runPlan{cycles: 1}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		word := fields[0]
		args := fields[1:]

		var err error
		switch word {
		case "rom":
			err = expectArgs(args, 1, word)
			if err == nil {
				plan.romPath = args[0]
			}
		case "bios":
			err = expectArgs(args, 1, word)
			if err == nil {
				plan.biosPath = args[0]
			}
		case "out":
			err = expectArgs(args, 1, word)
			if err == nil {
				plan.outPath = args[0]
			}
		case "log":
			err = expectArgs(args, 1, word)
			if err == nil {
				plan.logPath = args[0]
			}
		case "cycles":
			err = expectArgs(args, 1, word)
			if err == nil {
				plan.cycles, err = strconv.Atoi(args[0])
			}
		case "regdump":
			plan.regdump = true
		case "memdump":
			err = expectArgs(args, 2, word)
			if err == nil {
				var d memdumpDirective
				d.addr, err = parseUint32(args[0])
				if err == nil {
					var count uint64
					count, err = strconv.ParseUint(args[1], 0, 32)
					d.count = uint32(count)
				}
				if err == nil {
					plan.memdumps = append(plan.memdumps, d)
				}
			}
		case "regbreak":
			err = expectArgs(args, 2, word)
			if err == nil {
				var rb regBreak
				rb.index, err = strconv.Atoi(args[0])
				if err == nil {
					rb.value, err = parseUint32(args[1])
				}
				if err == nil {
					plan.regbreaks = append(plan.regbreaks, rb)
				}
			}
		case "membreak":
			err = expectArgs(args, 2, word)
			if err == nil {
				var mb memBreak
				mb.addr, err = parseUint32(args[0])
				if err == nil {
					mb.value, err = parseUint32(args[1])
				}
				if err == nil {
					plan.membreaks = append(plan.membreaks, mb)
				}
			}
		default:
			err = errors.Errorf(errors.DirectiveUnknownWord, word)
		}

		if err != nil {
			return nil, errors.Errorf(errors.DirectiveParseError, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf(errors.DirectiveParseError, err)
	}
	if plan.romPath == "" {
		return nil, errors.Errorf(errors.DirectiveParseError, "missing rom directive")
	}
	return plan, nil
}

func expectArgs(args []string, n int, word string) error {
	if len(args) != n {
		return errors.Errorf(errors.DirectiveUnknownWord, word)
	}
	return nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	return uint32(v), err
}
