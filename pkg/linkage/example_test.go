package linkage_test

import (
	"fmt"

	"github.com/andrew-torda/chainfilter/pkg/linkage"
)

func ExampleParse() {
	for _, s := range []string{"RNA OH 3 prime terminus", "dprotein", "D-saccharide, alpha linking"} {
		c, _ := linkage.Parse(s)
		fmt.Println(c)
	}
	// Output:
	// RNA_LINKING
	// D_PEPTIDE_LINKING
	// SACCHARIDE
}
