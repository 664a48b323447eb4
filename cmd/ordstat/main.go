// Command ordstat is a tabular-input test driver for an order-statistic
// set. It reads whitespace-separated integer tokens from stdin, one per
// logical record: a negative token erases an entry equal to its absolute
// value, a non-negative token inserts it. The underlying container is the
// simple (scalar, w ≡ 1) pointer-backed ordered set, so sum_before/
// total_sum behave as an in-order rank.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/g-m-twostay/statree/Containers"
)

func main() {
	checkAtEOF := flag.Bool("c", false, "check invariants once at EOF instead of after every record")
	flag.Parse()

	set := Containers.NewSimplePtrSet[int64, int64](
		func(a, b int64) bool { return a < b },
		func(int64) int64 { return 1 },
	)

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	record := 0
	for sc.Scan() {
		record++
		tok := sc.Text()
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ordstat: record %d: invalid integer token %q: %v\n", record, tok, err)
			os.Exit(1)
		}

		if n < 0 {
			if _, err := set.EraseKey(-n); err != nil {
				fmt.Fprintf(os.Stderr, "ordstat: record %d: erase(%d): %v\n", record, -n, err)
				os.Exit(1)
			}
		} else if _, _, err := set.Put(n); err != nil {
			fmt.Fprintf(os.Stderr, "ordstat: record %d: insert(%d): %v\n", record, n, err)
			os.Exit(1)
		}

		if !*checkAtEOF {
			if err := set.Check(0); err != nil {
				fmt.Fprintf(os.Stderr, "ordstat: record %d: %v\n", record, err)
				os.Exit(1)
			}
			st := set.Stats()
			fmt.Fprintf(os.Stderr, "ordstat: record %d: size=%d blackHeight=%d\n", record, st.Size, st.BlackHeight)
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "ordstat: reading input: %v\n", err)
		os.Exit(1)
	}

	if *checkAtEOF {
		if err := set.Check(0); err != nil {
			fmt.Fprintf(os.Stderr, "ordstat: final check: %v\n", err)
			os.Exit(1)
		}
		st := set.Stats()
		fmt.Fprintf(os.Stderr, "ordstat: final: size=%d blackHeight=%d empty=%t\n", st.Size, st.BlackHeight, st.Empty)
	}
}
