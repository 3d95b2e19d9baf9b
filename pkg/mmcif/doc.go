// Package mmcif reads a file in mmcif/cif format.
// Reading mmcif files is interesting because they are so big,
// but we do not want much information from them. For classifying
// chains we need the polymer entities, their sequences, the chemical
// component types and which chains turn up in which model.
// If one looks at the format there are some features that make it
// simpler.
// 1. The first character on the line is decisive. If it is a data item
// it has to be a "_". A loop starts with loop_.
// 2. The pdb promises that they will restrict themselves to a certain
// style, so one row of a table is almost always on one line.
// Multi-line (semicolon) fields are read, but the newlines are dropped.
//
// Overall structure
// There is a lot of information that will never be of interest to us (solvents,
// crystallisation details, ..). We jump over tables and items that are not
// on our list. The atom_site table is read by a goroutine which is fed
// slices of lines through a channel, while we carry on scanning the file.
// It does not keep coordinates. It notes, model by model, which chains
// are present and the residues in them.
//
// Notes about the mmcif format...
// A question mark, ?, means a missing value.
// A dot, ., means not appropriate or deliberately left out.
// A category with one row is usually written as a list of data items
// rather than as a loop. We store both forms as a Table, so callers
// do not have to care.
package mmcif
