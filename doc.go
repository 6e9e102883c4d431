// Package matchbench evaluates a schema matcher over a grid of tuning
// parameters and scores each run against a gold standard.
//
// # Quick Start
//
//	r := matchbench.New(m)
//	grid := matchbench.Grid{
//	    Leaf:      bench.Range(0.1, 1.0, 0.1),
//	    Threshold: bench.Range(0.05, 0.9, 0.05),
//	}
//	if err := r.Run(ctx, source, target, categories, "cupid-output", grid); err != nil {
//	    log.Fatal(err)
//	}
//
//	e := matchbench.NewEvaluator(plot.NewRenderer("plots", "pdf"))
//	curves, err := e.Evaluate(ctx, "gold.txt", "cupid-output")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range curves {
//	    th, f1, _ := c.Best()
//	    fmt.Printf("leaf %.2f: best th_accept %.2f (F1 %.2f)\n", c.LeafWeight, th, f1)
//	}
//
// # Output Layout
//
// A sweep writes one directory per leaf weight and one mapping file per
// threshold inside it:
//
//	cupid-output/manifest.json
//	cupid-output/j-0.1/test_0.05.txt
//	cupid-output/j-0.1/test_0.1.txt
//	...
//
// Evaluation parses the parameter values back out of these names, so
// directories and files may be listed in any order.
//
// # Concurrency
//
// Runner and Evaluator run cells one after another. Concurrent sweeps into
// the same output directory are not supported.
package matchbench
