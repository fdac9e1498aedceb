// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package node

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"

	"github.com/gogpu/shadergraph/graph"
)

// ErrUnknownArchetype is returned for archetype ids that were never
// registered.
var ErrUnknownArchetype = errors.New("unknown archetype")

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// Handle refers to a registered archetype. Handles are indices and remain
// valid for the life of the registry.
type Handle int

// Registry owns archetypes. It is not safe for concurrent registration.
type Registry struct {
	archetypes []*Archetype
	byID       map[string]Handle
	log        hclog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Handle),
		log:  hclog.NewNullLogger(),
	}
}

// SetLogger sets the logger used for registration messages. Nil disables
// logging.
func (r *Registry) SetLogger(l hclog.Logger) {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	r.log = l
}

// Register validates a and adds it with its factory.
func (r *Registry) Register(a Archetype, f Factory) (Handle, error) {
	if a.ID == "" {
		return 0, errors.New("archetype id is empty")
	}
	if _, ok := r.byID[a.ID]; ok {
		return 0, errors.Errorf("archetype %q already registered", a.ID)
	}
	if f == nil {
		return 0, errors.Errorf("archetype %q has no factory", a.ID)
	}
	if len(a.Inputs) > graph.MaxPinIndex+1 || len(a.Outputs) > graph.MaxPinIndex+1 {
		return 0, errors.Errorf("archetype %q has more than %d pins on one side", a.ID, graph.MaxPinIndex+1)
	}
	for i, o := range a.Overloads {
		if len(o.Inputs) != len(a.Inputs) || len(o.Outputs) != len(a.Outputs) {
			return 0, errors.Errorf("archetype %q: overload %d has shape (%d, %d), want (%d, %d)",
				a.ID, i, len(o.Inputs), len(o.Outputs), len(a.Inputs), len(a.Outputs))
		}
	}
	if a.Title == "" {
		a.Title = deriveTitle(a.ID)
	}
	a.factory = f

	h := Handle(len(r.archetypes))
	r.archetypes = append(r.archetypes, &a)
	r.byID[a.ID] = h
	r.log.Debug("registered archetype", "id", a.ID, "category", a.Category, "handle", h)
	return h, nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(a Archetype, f Factory) Handle {
	h, err := r.Register(a, f)
	if err != nil {
		panic(err)
	}
	return h
}

// deriveTitle turns make_vec2 into "Make Vec2".
func deriveTitle(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = strcase.ToCamel(w)
	}
	return strings.Join(words, " ")
}

// Lookup returns the handle of id.
func (r *Registry) Lookup(id string) (Handle, bool) {
	h, ok := r.byID[id]
	return h, ok
}

// Get returns the archetype registered as id. Unknown ids produce an error
// listing the closest registered ids.
func (r *Registry) Get(id string) (*Archetype, error) {
	if h, ok := r.byID[id]; ok {
		return r.archetypes[h], nil
	}
	if s := r.Suggest(id); len(s) > 0 {
		return nil, errors.Wrapf(ErrUnknownArchetype, "%q (did you mean %s?)", id, quoteList(s))
	}
	return nil, errors.Wrapf(ErrUnknownArchetype, "%q", id)
}

// Suggest returns up to three registered ids close to id by edit distance.
func (r *Registry) Suggest(id string) []string {
	type candidate struct {
		id   string
		dist int
	}
	limit := len(id)/3 + 2

	var cands []candidate
	for known := range r.byID {
		d := levenshtein.Distance(id, known, nil)
		if d <= limit {
			cands = append(cands, candidate{known, d})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].id < cands[j].id
	})

	var res []string
	for i := 0; i < len(cands) && i < maxSuggestions; i++ {
		res = append(res, cands[i].id)
	}
	return res
}

func quoteList(ids []string) string {
	q := make([]string, len(ids))
	for i, id := range ids {
		q[i] = fmt.Sprintf("%q", id)
	}
	return strings.Join(q, ", ")
}

// Archetype returns the archetype for h, or nil for a handle this registry
// did not issue.
func (r *Registry) Archetype(h Handle) *Archetype {
	if h < 0 || int(h) >= len(r.archetypes) {
		return nil
	}
	return r.archetypes[h]
}

// New instantiates a node of archetype id. The node has no id until it is
// added to a graph.
func (r *Registry) New(id string) (*Expression, error) {
	h, ok := r.byID[id]
	if !ok {
		_, err := r.Get(id)
		return nil, err
	}
	return r.Instantiate(h), nil
}

// Instantiate creates a node of archetype h.
func (r *Registry) Instantiate(h Handle) *Expression {
	a := r.archetypes[h]
	return &Expression{
		handle: h,
		kind:   a.factory(),
		nin:    len(a.Inputs),
		nout:   len(a.Outputs),
	}
}

// Len returns the number of registered archetypes.
func (r *Registry) Len() int {
	return len(r.archetypes)
}

// All returns every archetype sorted by category then id.
func (r *Registry) All() []*Archetype {
	all := make([]*Archetype, len(r.archetypes))
	copy(all, r.archetypes)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Category != all[j].Category {
			return all[i].Category < all[j].Category
		}
		return all[i].ID < all[j].ID
	})
	return all
}

// Categories returns the sorted distinct categories of visible archetypes.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var res []string
	for _, a := range r.archetypes {
		if a.Hidden || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		res = append(res, a.Category)
	}
	sort.Strings(res)
	return res
}

// Filter returns visible archetypes whose category, id or title contains
// substr, case-insensitively, in All order. An empty substr matches all.
func (r *Registry) Filter(substr string) []*Archetype {
	needle := strings.ToLower(substr)
	var res []*Archetype
	for _, a := range r.All() {
		if a.Hidden {
			continue
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(a.Category), needle) ||
			strings.Contains(strings.ToLower(a.ID), needle) ||
			strings.Contains(strings.ToLower(a.Title), needle) {
			res = append(res, a)
		}
	}
	return res
}
