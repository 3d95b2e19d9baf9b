// 17 Oct 2026

// Structview writes an html page for looking at structures with
// 3Dmol.js. The page fetches the coordinates itself, so it needs a
// network connection when it is opened, but not when it is written.
//
// Usage:
//
//	structview [-s style] [-c color] [-a atom] out.html pdbcode...
//	structview -g 101,57 [-k A,B] [-d 4] out.html pdbcode...
//
// A slider steps through the codes. With -a, atoms of that name (ZN,
// MG, ...) are drawn as gray spheres. With -g, the view zooms in on
// one residue per structure and draws its neighbors as sticks.
package main
