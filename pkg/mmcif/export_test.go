package mmcif

// Export some internal functions for testing

func (s *cmmtScanner) Cbytes() []byte   { return s.cbytes() }
func (s *cmmtScanner) Cscan() (ok bool) { return s.cscan() }

var NewCmmtScanner = newCmmtScanner
var SplitCifLine = splitCifLine
var Fields = fields

type BSlice = bSlice

// Lineno lets a test see the line number in a read error.
func Lineno(err error) int {
	if e, ok := err.(readError); ok {
		return e.Line()
	}
	return -1
}
