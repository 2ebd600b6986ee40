package prefilter_test

import (
	"fmt"

	"github.com/coregx/glushkov/prefilter"
)

func ExampleFinder() {
	lits := [][]byte{[]byte("he"), []byte("hers"), []byte("she")}
	f, err := prefilter.NewBuilder(lits).Build()
	if err != nil {
		panic(err)
	}

	haystack := []byte("ushers")
	var occ []prefilter.Occurrence
	for at := 0; ; {
		occ = f.FindAt(haystack, at, occ[:0])
		if len(occ) == 0 {
			break
		}
		for _, o := range occ {
			fmt.Printf("%s at %d\n", lits[o.Literal], o.Start)
		}
		at = occ[0].Start + 1
	}

	// Output:
	// she at 1
	// he at 2
	// hers at 2
}
