// An error implementation that saves the line number and the
// line we were trying to read.
// The key is to call xxxx.fill() where xxxx is the name of the comment
// scanner/mmcif reader.
package mmcif

import (
	"strconv"
)

const maxMsgLen = 70

type readError struct {
	n      int    // line number
	inline string // The line that provoked the error
	desc   string // Description of error
}

// fill stores the problem we have seen for printing
// out when it is convenient. It is in the scanner, but
// can be seen (by inclusion) in the mmcifreader.
// If we already had an error, the old description is kept in front
// of the new one.
func (m *cmmtScanner) fill(desc string, saveLine bool) {
	const multErrStr string = "\nNew error, but there was already an error from line "
	if !m.Ok {
		ln := strconv.Itoa(m.l_err.n)
		desc = m.l_err.desc + multErrStr + ln + ":\n" + desc
	}
	m.Ok = false
	if saveLine {
		m.l_err.n = m.n
	}
	m.l_err.inline = string(m.cbytes())
	m.l_err.desc = desc
}

func firstPart(s string) string {
	l := len(s)
	if l > maxMsgLen {
		l = maxMsgLen
	}
	return s[:l]
}

// Error returns the number of the last line read, the description and
// the start of the line that caused the trouble.
func (e readError) Error() string {
	var errmsg string
	if e.n != 0 {
		errmsg = "Line: " + strconv.Itoa(e.n) + " "
	}
	errmsg += e.desc
	if e.n != 0 && e.inline != "" {
		errmsg += "\nLine starting with\n" + firstPart(e.inline)
	}
	return errmsg
}

// Line returns the line number where the error was noticed, or zero.
func (e readError) Line() int { return e.n }
