package preflight

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Request names the folders and thresholds to check.
type Request struct {
	Source       string
	Destination  string
	MinFreeBytes uint64
}

// RunAll executes every applicable check for req. Empty paths are reported as
// failures rather than skipped.
func RunAll(req Request) []Result {
	results := []Result{
		CheckSourceReadable("Source folder", req.Source),
		CheckDestination("Destination folder", req.Destination),
	}
	if req.MinFreeBytes > 0 {
		results = append(results, CheckFreeSpace("Destination free space", req.Destination, req.MinFreeBytes))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
