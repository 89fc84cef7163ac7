package milsym

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/esimov/milsym/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Ops holds the options of a batch rendering.
type Ops struct {
	// Dst is the directory receiving the rendered symbols.
	Dst string
	// Format of the generated files.
	Format  imaging.Format
	Workers int
}

// Result holds the outcome of rendering a single symbol of the batch.
type Result struct {
	ID   string
	Path string
	Err  error
}

// job is a symbol to render together with its position in the batch.
type job struct {
	index int
	id    string
	path  string
}

// Execute renders the symbols identified by ids into the op.Dst directory,
// one file per symbol, using a pool of op.Workers goroutines. The results are
// returned in the order of ids.
func (s *Service) Execute(op *Ops, ids []string) ([]Result, error) {
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return nil, fmt.Errorf("unable to create the destination directory: %w", err)
	}

	workers := workerCount(op.Workers)
	paths := outputPaths(op, ids)

	jobs := make(chan job)
	go func() {
		// Close the jobs channel after all the identifiers are sent.
		defer close(jobs)
		for i, id := range ids {
			jobs <- job{index: i, id: id, path: paths[i]}
		}
	}()

	var wg sync.WaitGroup
	results := make([]Result, len(ids))

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			s.consumer(jobs, results)
		}()
	}
	wg.Wait()

	return results, nil
}

// consumer reads the symbols from the jobs channel and renders them into
// their destination file. Each job owns its own slot of results.
func (s *Service) consumer(jobs <-chan job, results []Result) {
	for j := range jobs {
		err := s.WriteFile(j.id, j.path)
		if err != nil {
			s.logger.Error("rendering symbol failed", "symbol", j.id, "error", err)
		}
		results[j.index] = Result{ID: j.id, Path: j.path, Err: err}
	}
}

// workerCount returns the number of workers to start for the requested
// concurrency, never more than maxWorkers.
func workerCount(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return utils.Min(n, maxWorkers)
}

// outputPaths returns the destination file of every identifier. Names
// already taken in the batch are suffixed with the position of the symbol.
func outputPaths(op *Ops, ids []string) []string {
	paths := make([]string, len(ids))
	taken := make(map[string]struct{}, len(ids))

	for i, id := range ids {
		name := fileName(id, op.Format)
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		for n := i; ; n++ {
			if _, ok := taken[name]; !ok {
				break
			}
			name = fmt.Sprintf("%s-%d%s", base, n, ext)
		}
		taken[name] = struct{}{}
		paths[i] = filepath.Join(op.Dst, name)
	}
	return paths
}

// fileName returns a file name safe for the symbol identifier.
func fileName(id string, format imaging.Format) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, id)
	return name + "." + strings.ToLower(format.String())
}
