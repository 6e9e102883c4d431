// Command cupid-bench sweeps a schema matcher over a grid of thresholds and
// scores the results against a gold standard.
//
//	cupid-bench sweep    --config sweep.yaml
//	cupid-bench evaluate --config sweep.yaml
//	cupid-bench score    gold.txt cupid-output/j-0.2/test_0.5.txt
package main

import "os"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(Execute())
}
