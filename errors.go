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

package chem

import (
	"fmt"
	"strings"
)

//CError is the general error type of the chem package.
type CError struct {
	msg      string
	deco     []string
	critical bool
	err      error
}

//Error returns a string with an error message.
func (err *CError) Error() string {
	return err.msg
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err *CError) Critical() bool { return err.critical }

//Unwrap returns the underlying error, if any.
func (err *CError) Unwrap() error { return err.err }

//Trace returns the decoration trail, innermost function first.
func (err *CError) Trace() string {
	return strings.Join(err.deco, " <- ")
}

func newCError(caller, format string, a ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, a...), deco: []string{caller}, critical: true}
}

//FError is the error produced while reading or writing a structure file.
type FError struct {
	CError
	filename string
	format   string
	line     int
}

//FileName returns the name of the file that produced the error.
func (err *FError) FileName() string { return err.filename }

//Format returns the format of the file that produced the error.
func (err *FError) Format() string { return err.format }

//Line returns the line of the file where the problem was found, or 0
//if the error is not associated with a particular line.
func (err *FError) Line() int { return err.line }

func (err *FError) Error() string {
	if err.line > 0 {
		return fmt.Sprintf("%s (%s file %s, line %d)", err.msg, err.format, err.filename, err.line)
	}
	return fmt.Sprintf("%s (%s file %s)", err.msg, err.format, err.filename)
}

func newFError(caller, filename, format string, line int, msg string, a ...interface{}) *FError {
	return &FError{CError: CError{msg: fmt.Sprintf(msg, a...), deco: []string{caller}, critical: true}, filename: filename, format: format, line: line}
}

//errDecorate is a helper function that asserts that the error
//implements chem.Error and decorates the error with the caller's name before returning it.
//Errors of other types are wrapped in a CError.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return &CError{msg: err.Error(), deco: []string{caller}, critical: true, err: err}
	}
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrIndexOutOfRange = PanicMsg("moleview: atom index out of range")
	ErrBondNotInAtom   = PanicMsg("moleview: trying to cross a bond from an atom that is not part of it")
)
