package interleave

import (
	"sort"
	"strings"

	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// Collection is a named bag of sentences from one source
type Collection struct {
	Name  string
	Items []string
}

// Plan assigns every collection a disposition: included in full, or sampled
// with a weight
type Plan struct {
	Weights map[string]float64
	Full    []string
}

// Resolved is a plan applied to concrete collections, in input order
type Resolved struct {
	NonSampling  [][]string
	Sampling     [][]string
	Weights      []float64
	FullNames    []string
	SampledNames []string
}

// Resolve splits collections into non-sampling and sampling groups. A
// collection present in both or neither disposition, or a configured name
// without a collection, is an error.
func (p Plan) Resolve(collections []Collection) (*Resolved, error) {
	full := make(map[string]bool, len(p.Full))
	for _, name := range p.Full {
		full[name] = true
	}

	built := make(map[string]bool, len(collections))
	var inBoth, missing []string
	for _, c := range collections {
		built[c.Name] = true
		_, sampled := p.Weights[c.Name]
		switch {
		case sampled && full[c.Name]:
			inBoth = append(inBoth, c.Name)
		case !sampled && !full[c.Name]:
			missing = append(missing, c.Name)
		}
	}

	var unknown []string
	for name := range p.Weights {
		if !built[name] {
			unknown = append(unknown, name)
		}
	}
	for name := range full {
		if !built[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	switch {
	case len(inBoth) > 0:
		return nil, tterr.New(tterr.CodeSamplingPlan,
			"collections are both sampled and included in full").
			WithDetail("collections", strings.Join(inBoth, ","))
	case len(missing) > 0:
		return nil, tterr.New(tterr.CodeSamplingPlan,
			"collections have neither a sampling weight nor full inclusion").
			WithDetail("collections", strings.Join(missing, ","))
	case len(unknown) > 0:
		return nil, tterr.New(tterr.CodeSamplingPlan,
			"plan names collections that were not built").
			WithDetail("collections", strings.Join(unknown, ","))
	}

	r := &Resolved{}
	for _, c := range collections {
		if full[c.Name] {
			r.NonSampling = append(r.NonSampling, c.Items)
			r.FullNames = append(r.FullNames, c.Name)
			continue
		}
		r.Sampling = append(r.Sampling, c.Items)
		r.Weights = append(r.Weights, p.Weights[c.Name])
		r.SampledNames = append(r.SampledNames, c.Name)
	}
	return r, nil
}

// Stream resolves the plan and starts interleaving
func (p Plan) Stream(collections []Collection, seed int64, opts ...Option) (*Stream, error) {
	r, err := p.Resolve(collections)
	if err != nil {
		return nil, err
	}
	return Interleave(r.NonSampling, r.Sampling, r.Weights, seed, opts...)
}
