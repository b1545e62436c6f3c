// Package batch renders one document per name and collects the outputs,
// keeping per-name failures instead of aborting the whole run.
package batch

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/Tehillim119/core/psalm"
	"github.com/FocuswithJustin/Tehillim119/core/resolve"
	"github.com/FocuswithJustin/Tehillim119/internal/logging"
	"github.com/FocuswithJustin/Tehillim119/internal/render"
)

// filenameSuffix is appended to every generated document's base name.
const filenameSuffix = "_Tehillim119"

// File is one successfully rendered document.
type File struct {
	Name     string // the name as given in the input
	Filename string // archive-safe filename including extension
	Data     []byte
}

// Failure records a name that could not be processed and why.
type Failure struct {
	Name string
	Err  error
}

// Report is the outcome of a batch run. Files and Failures together cover
// every input name, each in input order.
type Report struct {
	Files    []File
	Failures []Failure
}

// Succeeded returns the number of rendered documents.
func (r Report) Succeeded() int { return len(r.Files) }

// Failed returns the number of names that could not be processed.
func (r Report) Failed() int { return len(r.Failures) }

// Total returns the number of input names.
func (r Report) Total() int { return len(r.Files) + len(r.Failures) }

// Options configures a batch run.
type Options struct {
	// Workers caps render parallelism. Zero means one worker per CPU.
	Workers int
}

type job struct {
	index int
	name  string
}

type result struct {
	index int
	name  string
	data  []byte
	err   error
}

// Run renders one document per name against the shared psalm. A name that
// fails to resolve or render becomes a Failure; the run continues with the
// rest. Output order matches input order regardless of worker scheduling.
func Run(ctx context.Context, names []string, p *psalm.Psalm, renderer render.Renderer, opts Options) (Report, error) {
	start := time.Now()

	pool := newWorkerPool[job, result](opts.Workers, len(names))
	pool.start(func(j job) result {
		if err := ctx.Err(); err != nil {
			return result{index: j.index, name: j.name, err: err}
		}

		resolved, err := resolve.Resolve(j.name, p)
		if err != nil {
			return result{index: j.index, name: j.name, err: err}
		}

		data, err := renderer.Render(render.Document{
			Name:     resolved.Name,
			Sections: resolved.Sections,
		})
		return result{index: j.index, name: j.name, data: data, err: err}
	})

	for i, name := range names {
		pool.submit(job{index: i, name: name})
	}
	pool.close()

	results := make([]result, len(names))
	for res := range pool.results {
		results[res.index] = res
	}

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	var report Report
	taken := make(map[string]int, len(names))
	for _, res := range results {
		if res.err != nil {
			report.Failures = append(report.Failures, Failure{Name: res.name, Err: res.err})
			continue
		}
		report.Files = append(report.Files, File{
			Name:     res.name,
			Filename: uniqueFilename(res.name, renderer.Ext(), taken),
			Data:     res.data,
		})
	}

	logging.BatchEvent(report.Total(), report.Succeeded(), report.Failed(), time.Since(start))
	return report, nil
}

// SafeFilename turns a name into an archive-safe base filename: spaces
// become underscores and path separator or control characters are dropped.
// A name with nothing safe left falls back to "name".
func SafeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			// dropped
		case r < 0x20:
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	base := strings.Trim(b.String(), "._")
	if base == "" {
		return "name"
	}
	return base
}

// Filename builds the output filename for a single rendered document.
func Filename(name, ext string) string {
	return SafeFilename(name) + filenameSuffix + "." + ext
}

// uniqueFilename builds the full output filename for a name, appending a
// numeric suffix when an earlier name in the run produced the same one.
func uniqueFilename(name, ext string, taken map[string]int) string {
	base := SafeFilename(name) + filenameSuffix

	n := taken[base]
	taken[base] = n + 1
	if n > 0 {
		base += "_" + strconv.Itoa(n+1)
	}
	return base + "." + ext
}
