// Splitting lines at spaces and quotes.

/* from https://www.iucr.org/resources/cif/spec/version1.1/cifsyntax
               character or string role
_ (underscore) identifies data name
#              identifies comment
'              delimits non-simple data values
"              delimits non-simple data values
; at beginning of line of text delimits non-simple data values
data_          identifies data block header (case-insensitive)
*/

package mmcif

import (
	"errors"
)

// fields breaks a line into space separated words. Unlike the library
// version, it fills out the slice it is given. If the slice is not big
// enough, the remaining words are lost.
// It sits in the middle of the atom_site loop, where the library call
// was the main source of allocations.
func fields(s bSlice, scrtch []bSlice) []bSlice {
	var i, istart, iwrd int

	for i = 0; i < len(s) && iswhite(s[i]); i++ { // leading spaces
	}
	if i == len(s) || cap(scrtch) == 0 {
		return nil
	}
	scrtch = scrtch[:cap(scrtch)]
	istart = i
	for {
		for ; i < len(s) && !iswhite(s[i]); i++ { // in a word
		}
		scrtch[iwrd] = s[istart:i]
		iwrd++
		if iwrd == len(scrtch) {
			return scrtch[:iwrd]
		}
		for ; i < len(s) && iswhite(s[i]); i++ { // in spaces
		}
		if i == len(s) {
			return scrtch[:iwrd]
		}
		istart = i
	}
}

// iswhite only works for ascii spaces
var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

func iswhite(b byte) bool {
	return asciiSpace[b]
}

// isquote checks for a quote character and remembers which one, so
// we can look for the matching close.
func isquote(b byte, qtype *byte) bool {
	if b == squote || b == dquote {
		*qtype = b
		return true
	}
	return false
}

type sInfo struct { // Holds the state of the state functions
	err     error
	ret     [][]byte // This is what we will really return
	byteIn  []byte
	nxtIndx int
	qtype   byte // type of quote
}
type sfn func(i int, c byte, s *sInfo) sfn // state function

func sfnInQuote(i int, c byte, sInfo *sInfo) sfn {
	if c == sInfo.qtype {
		return sfnExitQuote
	}
	if c == '\n' {
		sInfo.err = errors.New("unterminated quote line: " + string(sInfo.byteIn))
		return sfnWhite
	}
	return sfnInQuote
}

// sfnExitQuote: a quote only ends a value if white space follows.
// O5'-ADENOSINE style names keep their quotes.
func sfnExitQuote(i int, c byte, sInfo *sInfo) sfn {
	if iswhite(c) {
		sInfo.ret = append(sInfo.ret, sInfo.byteIn[sInfo.nxtIndx:i-1])
		return sfnWhite
	}
	return sfnInQuote
}

func sfnInText(i int, c byte, sInfo *sInfo) sfn {
	if iswhite(c) {
		sInfo.ret = append(sInfo.ret, sInfo.byteIn[sInfo.nxtIndx:i])
		return sfnWhite
	}
	return sfnInText
}

func sfnWhite(i int, c byte, sInfo *sInfo) sfn {
	switch {
	case iswhite(c):
		return sfnWhite
	case isquote(c, &sInfo.qtype):
		sInfo.nxtIndx = i + 1
		return sfnInQuote
	default:
		sInfo.nxtIndx = i
		return sfnInText
	}
}

// splitCifLine takes a byte slice and returns the words in it. They are
// separated by spaces and matching quotes, and the quotes are removed.
// The slices point into byteIn.
func splitCifLine(byteIn []byte, retIn [][]byte) ([][]byte, error) {
	if len(byteIn) < 1 {
		return nil, nil
	}

	var sInfo = sInfo{ret: retIn[:0], byteIn: byteIn}

	state := sfnWhite
	for i, c := range byteIn {
		state = state(i, c, &sInfo)
	}
	state(len(byteIn), '\n', &sInfo) // end with newline, catches unterminated quotes
	if sInfo.err != nil {
		return nil, sInfo.err
	}
	return sInfo.ret, nil
}
