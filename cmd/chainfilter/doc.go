// 17 Oct 2026

// Chainfilter picks out structures by the kinds of polymer chains in them.
//
// Usage:
//
//	chainfilter [opts] file_or_pattern...
//	chainfilter [opts] -i pdbcode...
//
// Files are mmcif, gzipped or not. Patterns may use **, so
// "mirror/**/*.cif.gz" reads a whole local copy of the PDB. Quote
// patterns so the shell leaves them alone.
// With -i, the arguments are four letter codes and the files are
// fetched from the wwPDB sites.
//
// A structure has an RNA chain if one of its polymer chains is made only
// of RNA monomers. Only the first model is looked at. With -x, every
// polymer chain has to be of the type, so an RNA-protein complex passes
// -t rna but not -t rna -x. A structure with no polymer chains never
// passes.
//
//	-t rna,dna   two filters, an entry passes if it has RNA or DNA chains
//	-a           with two filters, an entry must pass both
//
// Monomers are looked up in a built in table of standard residues, then
// in the _chem_comp category of the file itself. -m gives a yaml file
// of extra monomers which takes precedence:
//
//	monomers:
//	  PSU: RNA_LINKING
//	  5CM: DNA_LINKING
//
// With -s, a monomer that cannot be found is an error for that entry.
// Entries with errors are logged (-l) and counted. -e stops the run
// after that many.
//
// Output is csv with one row per passing entry.
// -p writes a png bar chart with the chain types seen.
// -w writes an html page to look at the passing entries with 3Dmol.
package main
