// Package mmcif reads an mmcif formatted file.
// The first thing to do is build an mmcifreader and then call it.
package mmcif

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	squote byte = '\''
	dquote byte = '"'
)

// Usually one reads a file which contains lots of information you are
// not interested in. We handle this in two steps.
// 1. Make a list of interesting data items and tables. If something is
// not on this list, do not save it.
// 2. The atom_site table is always read, but only boiled down to
// models, chains and residue names.

type bSlice []byte // byte slice
type stSlice []string

// Table is one category, either from a loop_ or from a set of
// data items that share a category name.
type Table struct {
	Names []string  // table headings, without the category name
	Vals  []stSlice // each entry is a row of values
}

// Col returns a column of the table by name, or nil if there is
// no such column.
func (t Table) Col(name string) []string {
	for i, n := range t.Names {
		if n != name {
			continue
		}
		ret := make([]string, len(t.Vals))
		for j, row := range t.Vals {
			ret[j] = row[i]
		}
		return ret
	}
	return nil
}

// Len is the number of rows.
func (t Table) Len() int { return len(t.Vals) }

type stringhash map[string]string
type tablehash map[string]Table

// SiteChain is one chain (label_asym_id) as it appears in the atom_site
// table for one model.
type SiteChain struct {
	AsymID   string
	EntityID string
	Residues []string // label_comp_id, one per residue, in file order
}

// Model is one coordinate set from the atom_site table.
type Model struct {
	Num    int16
	Chains []SiteChain // in the order they first appear
}

// Block holds the data items we kept from one data_ block. Dictionary
// files have thousands of them.
type Block struct {
	Name string
	Data stringhash
}

// MmcifData defines the data that will be returned by an mmcifReader
type MmcifData struct {
	Data   stringhash // Data items to keep. Last block wins.
	Tables tablehash  // Tables we keep
	Blocks []Block
	Models []Model // nil if there was no atom_site table

	itemBlock map[string]int // category to the block that owns its last item row
}

// What criteria do we use when deciding whether or not to keep
// the contents of a model.
type fltr struct {
	modelMax int16 // How many models should be read ? -1 for all
}

// MmcifReader is the object which will do the reading of mmcif data
// We do not return information here. Here is where we store instructions
// to the reader.
type MmcifReader struct {
	cmmtScanner
	dataToKeep   map[string]bool
	tablesToKeep map[string]bool
	fltr         *fltr
	headers      []bSlice
	scrtchBytes  [][]byte
}

// Dump is for debugging. Dump out what we have stored
func (md *MmcifData) Dump(w io.Writer) {
	for k, v := range md.Data {
		fmt.Fprintln(w, k, ":", v)
	}
	for k, v := range md.Tables {
		fmt.Fprintln(w, "m.tables", k, ":", v)
	}
	for _, m := range md.Models {
		fmt.Fprintln(w, "model", m.Num, "nchain", len(m.Chains))
	}
}

// NewMmcifReader returns an object to read mmcif files.
// It is given a reader, so the caller must have decided if it is
// a file, compressed file, http source, whatever.
// By default all models are read.
func NewMmcifReader(r io.Reader) *MmcifReader {
	if r == nil {
		return nil
	}
	return &MmcifReader{
		cmmtScanner:  newCmmtScanner(r, '#'),
		dataToKeep:   make(map[string]bool),
		tablesToKeep: make(map[string]bool),
		fltr:         &fltr{modelMax: -1},
		scrtchBytes:  make([][]byte, 0, 25),
	}
}

// AddItems adds data items like "_struct.title" that we will keep.
func (mr *MmcifReader) AddItems(s []string) {
	for _, a := range s {
		mr.dataToKeep[a] = true
	}
}

// AddTable tells us that if we see a table / loop in one of these
// categories, we will keep it. "_chem_comp" and "_chem_comp." are the same.
func (mr *MmcifReader) AddTable(s []string) {
	for _, a := range s {
		mr.tablesToKeep[strings.TrimSuffix(a, ".")] = true
	}
}

// SetModelMax tells us the maximum number of models whose contents we keep.
//
//	-1 means get everything
//	 0 means get nothing
//	 a positive int is the number of models
//
// Models past the limit are still counted, but have no chains.
func (mr *MmcifReader) SetModelMax(modelMax int16) {
	mr.fltr.modelMax = modelMax
}

// cmmtScanner is a wrapper around bufio.Scanner that will ignore lines
// starting with the comment character and remove leading and trailing
// white space.
// It also counts newlines in scanner.n, so we can print out the line
// number in error messages.
type cmmtScanner struct {
	*bufio.Scanner           // standard library scanner
	l_err          readError // fill this out as soon as an error happens
	ctoken         []byte    // Store the bytes that will be returned by cbytes()
	n              int       // line number in the mmcif file
	cmmt           byte      // Comment character
	Ok             bool      // Are we OK or have we had an error ?
}

// newCmmtScanner is a wrapper around scanner, but
//   - jumps over blank lines
//   - removes leading and trailing space
//   - jumps over comment lines
//
// An mmcifReader contains a newCmmtScanner.
func newCmmtScanner(r io.Reader, cmmt byte) cmmtScanner {
	const maxLine = 1024 * 1024
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLine)
	return cmmtScanner{
		Scanner: s,
		cmmt:    cmmt,
		Ok:      true,
	}
}

// cscan is a wrapper around the library Scan(). It adds a newline counter
// for error messages. It jumps over blank lines and lines starting
// with a comment character. Comment characters are only recognised as the
// first character, since they are legitimate elsewhere in the text.
// When finished, it sets "ctoken" to point to the slice.
// At the end of input, it returns true, but ctoken is nil.
func (s *cmmtScanner) cscan() (ok bool) {
	var b []byte
	if !s.Ok { // We have already had an error, but nobody has noticed.
		s.ctoken = nil
		s.fill("pre-existing error missed. Small bug ?", false)
		return false
	}
	for len(b) == 0 {
		if !s.Scan() { //            false on EOF
			s.ctoken = nil //        but Err() is nil, it is just EOF
			if err := s.Err(); err != nil {
				s.fill(err.Error(), true) // This is a real error
				return false
			}
			return true
		}
		s.n++
		b = bytes.TrimSpace(s.Bytes())
		if len(b) > 0 && b[0] == s.cmmt {
			b = nil
		}
	}
	s.ctoken = b
	return true
}

// cbytes is like Bytes from the library, but returns the processed characters.
func (s *cmmtScanner) cbytes() []byte {
	return s.ctoken
}

// stateFn is the type of state function. It returns the next
// state function that should act on its input.
type stateFn func(*MmcifReader, *MmcifData) stateFn

// stateData starts a new data block.
func stateData(mr *MmcifReader, md *MmcifData) stateFn {
	name := string(mr.cbytes()[len("data_"):])
	md.Blocks = append(md.Blocks, Block{Name: name, Data: make(stringhash)})
	if !mr.cscan() {
		return nil
	}
	return stateTop
}

// stateUnknown should be reached if we are confused and do not know
// what to do. It is an error and we should stop
func stateUnknown(mr *MmcifReader, _ *MmcifData) stateFn {
	mr.fill("In Unknown state", true)
	return nil
}

// category returns "_entity_poly" given "_entity_poly.entity_id".
// ok is false if there is no dot.
func category(b []byte) (cat string, ok bool) {
	i := bytes.IndexByte(b, '.')
	if i < 0 {
		return "", false
	}
	return string(b[:i]), true
}

// stateLoopHdr gets the headers from a loop directive
// It also gets to make a decision about what to do next.
// If the headers are deemed interesting, it calls stateLoopTable
// If headers are for a table that we want to skip, it
// should call stateSkipLoopTable.
func stateLoopHdr(mr *MmcifReader, _ *MmcifData) stateFn {
	if len(mr.headers) != 0 {
		mr.fill("probable bug, headers slice not empty", false)
		return nil
	}
	for ok := true; ok && len(mr.cbytes()) > 0 && mr.cbytes()[0] == '_'; ok = mr.cscan() {
		s := make([]byte, len(mr.cbytes()))
		copy(s, mr.cbytes())
		mr.headers = append(mr.headers, s)
	}
	if len(mr.headers) < 1 {
		mr.fill("no contents found while reading loop headers", true)
		return nil
	}

	cat, ok := category(mr.headers[0])
	if !ok {
		mr.fill("Could not split string at dot: "+string(mr.headers[0]), true)
		mr.headers = mr.headers[:0]
		return nil
	}
	if cat == "_atom_site" {
		return stateAtomTable
	}
	if mr.tablesToKeep[cat] {
		return stateLoopTable
	}
	mr.headers = mr.headers[:0]
	return stateSkipLoopTable
}

// isSpecial returns true if the input in inline is not simply
// more of a table. Usually this means there is a new directive
// coming.
// If we have end of file, we also return true, so a caller knows
// it has to do something special.
// We do not stop if we see "data", since this is sometimes present in tables
func isSpecial(inline []byte) bool {
	switch {
	case inline == nil:
		return true
	case inline[0] == '_':
		return true
	case bytes.HasPrefix(inline, []byte("loop_")):
		return true
	case bytes.HasPrefix(inline, []byte("data_")):
		return true
	default:
		return false
	}
}

// stateLoopTable reads from each line a line in a table.
// Build the table within this function and then put it in the hash
// table of tables.
func stateLoopTable(mr *MmcifReader, md *MmcifData) stateFn {
	ncol := len(mr.headers)
	tblName, _ := category(mr.headers[0])
	table := Table{
		Names: make([]string, 0, ncol),
		Vals:  make([]stSlice, 0, 5),
	}
	for _, word := range mr.headers { // given _atom_site.foo, save foo
		i := bytes.IndexByte(word, '.')
		if i < 0 {
			mr.fill("Could not split string at dot: "+string(word), true)
			return nil
		}
		table.Names = append(table.Names, string(word[i+1:]))
	}
	mr.headers = mr.headers[:0]
	for {
		b, ok := getNpieces(mr, ncol)
		if !ok {
			return nil
		}
		if len(b) == 0 {
			break
		}
		if len(b) != ncol {
			mr.fill(fmt.Sprintf("table %s wanted %d values, got %d", tblName, ncol, len(b)), true)
			return nil
		}
		table.Vals = append(table.Vals, b)
	}
	md.Tables[tblName] = table
	return stateTop
}

const line_siz = 92 // A line from PDB is 88 bytes long
const sl_siz = 50   // This comes from benchmarking. Set to 50

// newLineBuf creates the slice of lines (byte slices) that are
// filled and used to send information to the reader (atomSite()).
func newLineBuf() interface{} {
	var tmp [sl_siz * line_siz]byte
	var x [sl_siz]bSlice
	for i, start, end := 0, 0, line_siz; i < sl_siz; i++ {
		x[i] = tmp[start:end:end]
		start = end
		end += line_siz
	}
	return x[:]
}

// stateAtomTable is like any stateLoopTable, but we special case it
// because it is the biggest and slowest to process.
// We read lines into a slice of lines. When we have enough, we
// push the slice into the channel. atomSite() does the processing.
// In the meantime, we continue reading the file.
func stateAtomTable(mr *MmcifReader, md *MmcifData) stateFn {
	c := make(chan []bSlice, 3) // buffer size 3 came from benchmarking
	errc := make(chan error, 1)
	// We make new buffers (line slices) here. The other end of the channel
	// puts the buffers back in the pool when it has processed all the lines.
	var bufPool = sync.Pool{
		New: newLineBuf,
	}

	{
		headers := make([]bSlice, len(mr.headers))
		for i, h := range mr.headers {
			headers[i] = append(bSlice(nil), h...)
		}
		go atomSite(headers, mr.fltr, md, c, errc, &bufPool)
	}
	mr.headers = mr.headers[:0]

	i := 0
	lines := bufPool.Get().([]bSlice)
	for t := mr.cbytes(); !isSpecial(t); t = mr.cbytes() {
		if len(t) > cap(lines[i]) { // Only if the default line
			lines[i] = make([]byte, len(t)) // length is too small.
		}
		lines[i] = lines[i][:len(t)]
		copy(lines[i], t)

		if i == (sl_siz - 1) {
			i = 0
			c <- lines                       // send the accumulated lines and
			lines = bufPool.Get().([]bSlice) // get fresh storage from the pool
		} else {
			i++
		}
		if !mr.cscan() {
			break
		}
	}
	if i > 0 { // Push any leftover lines down the channel
		c <- lines[0:i]
	}
	close(c)
	if err := <-errc; err != nil {
		mr.fill(err.Error(), false)
		return nil
	}
	if !mr.Ok {
		return nil
	}
	return stateTop
}

// stateSkipLoopTable reads lines from a table, but does not
// save them anywhere. Most of the tables we encounter are not
// to be saved.
func stateSkipLoopTable(mr *MmcifReader, _ *MmcifData) stateFn {
	found_something := false
	for ; !isSpecial(mr.cbytes()); mr.cscan() {
		if !mr.Ok {
			return nil
		}
		if mr.cbytes()[0] == ';' { // so a text field cannot look like a new item
			if _, ok := readTextField(mr); !ok {
				return nil
			}
		}
		found_something = true
	}
	if !found_something {
		mr.fill("empty table", true)
		return nil
	}
	return stateTop
}

// stateLoop is where you are if you have a loop directive.
// You just have to jump over the line and go to reading the
// headers.
func stateLoop(mr *MmcifReader, _ *MmcifData) stateFn {
	if !mr.cscan() || mr.cbytes() == nil {
		mr.fill("loop_ at end of file", true)
		return nil
	}
	return stateLoopHdr
}

// readTextField reads a semicolon delimited field. We are sitting on
// the first line. Newlines are dropped.
func readTextField(mr *MmcifReader) (string, bool) {
	tmp := string(mr.cbytes()[1:])
	for ok := mr.cscan(); ; ok = mr.cscan() {
		x := mr.cbytes()
		if !ok || x == nil {
			mr.fill("unterminated text field", true)
			return "", false
		}
		if x[0] == ';' {
			break
		}
		tmp = tmp + string(x)
	}
	return tmp, true
}

// stateDItem gets a data item. This is often on one line, but
// if there is no value on the line, it is on the following lines.
func stateDItem(mr *MmcifReader, md *MmcifData) stateFn {
	var value string
	t, err := splitCifLine(mr.cbytes(), mr.scrtchBytes)
	if err != nil {
		mr.fill(err.Error(), true)
		return nil
	}

	itemName := string(t[0])
	switch len(t) {
	case 2:
		value = string(t[1])
	case 1:
		const msg string = "data split on two lines"
		if !mr.cscan() || mr.cbytes() == nil {
			mr.fill(msg, true)
			return nil
		}
		b_in := mr.cbytes()
		if b_in[0] == ';' {
			var ok bool
			if value, ok = readTextField(mr); !ok {
				return nil
			}
		} else {
			u, err := splitCifLine(b_in, mr.scrtchBytes)
			if err != nil || len(u) != 1 {
				mr.fill(msg, true)
				return nil
			}
			value = string(u[0])
		}
	default:
		mr.fill(fmt.Sprintf("data item with %d values", len(t)-1), true)
		return nil
	}
	mr.cscan() // If an error occurs, the next function will pick it up

	if mr.dataToKeep[itemName] {
		md.Data[itemName] = value
		if n := len(md.Blocks); n > 0 {
			md.Blocks[n-1].Data[itemName] = value
		}
	}
	if cat, ok := category([]byte(itemName)); ok && mr.tablesToKeep[cat] {
		md.addItemToTable(cat, itemName[len(cat)+1:], value)
	}
	return stateTop
}

// addItemToTable stores a data item as a column of a table with one
// row per data block. The first item of a category in a block starts
// the row, and later items of that block fill it, whatever their order.
func (md *MmcifData) addItemToTable(cat, name, value string) {
	if md.itemBlock == nil {
		md.itemBlock = make(map[string]int)
	}
	tbl := md.Tables[cat]
	blk := len(md.Blocks)
	if owner, ok := md.itemBlock[cat]; !ok || owner != blk || len(tbl.Vals) == 0 {
		row := make(stSlice, len(tbl.Names))
		for i := range row {
			row[i] = "?"
		}
		tbl.Vals = append(tbl.Vals, row)
		md.itemBlock[cat] = blk
	}
	col := -1
	for i, n := range tbl.Names {
		if n == name {
			col = i
			break
		}
	}
	if col == -1 {
		tbl.Names = append(tbl.Names, name)
		for i := range tbl.Vals {
			tbl.Vals[i] = append(tbl.Vals[i], "?")
		}
		col = len(tbl.Names) - 1
	}
	tbl.Vals[len(tbl.Vals)-1][col] = value
	md.Tables[cat] = tbl
}

// stateTop is the general state that looks at the current line and
// decides what state to jump to next.
func stateTop(mr *MmcifReader, _ *MmcifData) stateFn {
	b := mr.cbytes() // Does not advance scanner
	if !mr.Ok {
		return nil
	}
	switch {
	case b == nil:
		return nil
	case bytes.HasPrefix(b, []byte("loop_")):
		return stateLoop
	case bytes.HasPrefix(b, []byte("data_")):
		return stateData
	case b[0] == '_':
		return stateDItem
	default:
		return stateUnknown
	}
}

// getNpieces asks the scanner for lines and returns N items
// as an array of strings. We have to use new strings, since
// calls to scan() will update the underlying buffer.
// At the end of a table, it returns nothing, but ok.
func getNpieces(mr *MmcifReader, npiece int) (ret []string, ok bool) {
	// notNasty returns true if we can use the library split
	// function. That is, it contains no quotes.
	notNasty := func(b_in []byte) bool {
		return bytes.IndexByte(b_in, dquote) == -1 && bytes.IndexByte(b_in, squote) == -1
	}
	for ok = true; len(ret) < npiece && ok; ok = mr.cscan() {
		b_in := mr.cbytes()
		if isSpecial(b_in) {
			if len(ret) != 0 {
				mr.fill("table row cut short", true)
				return nil, false
			}
			return nil, true
		}
		if b_in[0] == ';' {
			tmp, ok2 := readTextField(mr)
			if !ok2 {
				return nil, false
			}
			ret = append(ret, tmp)
			continue
		}
		var t [][]byte
		if notNasty(b_in) { //       For a clean string, just
			t = bytes.Fields(b_in) // use library function
		} else {
			var err error
			if t, err = splitCifLine(b_in, mr.scrtchBytes); err != nil {
				mr.fill(err.Error(), true)
				return nil, false
			}
		}
		for _, u := range t {
			ret = append(ret, string(u))
		}
	}
	return ret, ok
}

// DoFile takes an mmcifreader and actually parses the file.
func (mr *MmcifReader) DoFile() (*MmcifData, error) {
	if mr == nil {
		return nil, errors.New("Start of file, nil mmcifReader")
	}
	if !mr.cscan() {
		return nil, mr.l_err
	}
	md := &MmcifData{
		Data:   make(stringhash),
		Tables: make(tablehash),
	}
	for state := stateTop; (state != nil) && mr.Ok; {
		state = state(mr, md)
	}
	if mr.Ok && mr.n == 0 {
		mr.fill("zero length file", false)
	}
	if mr.Ok && len(md.Blocks) == 0 {
		mr.fill("no data_ block found", false)
	}
	if !mr.Ok {
		return nil, mr.l_err
	}
	return md, nil
}
