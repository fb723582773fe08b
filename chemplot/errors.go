/*
 * errors.go, part of moleview.
 *
 *
 * Copyright 2026 The moleview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chemplot

import (
	"fmt"
	"strings"

	chem "github.com/moleview/moleview"
)

//Error is the error type returned by this package. It implements chem.Error.
type Error struct {
	msg  string
	deco []string
	err  error
}

func (err *Error) Error() string { return err.msg }

//Decorate adds dec to the decoration slice of the error (unless dec is empty)
//and returns the slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Unwrap returns the error that caused this one, if any.
func (err *Error) Unwrap() error { return err.err }

//Trace returns the decoration of the error, innermost function first.
func (err *Error) Trace() string { return strings.Join(err.deco, " <- ") }

func newError(caller, format string, a ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, a...), deco: []string{caller}}
}

//errDecorate adds caller to the decoration of err if it is a chem.Error,
//otherwise it wraps err in an *Error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
		return e
	}
	return &Error{msg: err.Error(), deco: []string{caller}, err: err}
}
