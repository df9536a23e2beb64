package asc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/cdlconvert/core/errors"
)

// Policy selects how the registry and the value setters react to bad input.
type Policy int

const (
	// PolicyLenient repairs what it can: duplicate and blank ids are renamed,
	// out of range values are stored as given and unresolved references yield nil.
	PolicyLenient Policy = iota
	// PolicyStrict returns an error for every violation.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

var invalidIDChars = regexp.MustCompile(`[^A-Za-z0-9._]`)

// SanitizeID replaces spaces with underscores, removes one leading underscore or
// period and drops every remaining character outside [A-Za-z0-9._].
func SanitizeID(id string) string {
	if id == "" {
		return id
	}
	id = strings.ReplaceAll(id, " ", "_")
	if id[0] == '_' || id[0] == '.' {
		id = id[1:]
	}
	return invalidIDChars.ReplaceAllString(id, "")
}

// Registry owns every ColorCorrection of a conversion session and guarantees
// their ids are unique. A Registry is not safe for concurrent use.
type Registry struct {
	policy   Policy
	members  map[string]*ColorCorrection
	order    []string
	counters map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry(policy Policy) *Registry {
	return &Registry{
		policy:   policy,
		members:  make(map[string]*ColorCorrection),
		counters: make(map[string]int),
	}
}

// Policy returns the policy the registry was created with.
func (r *Registry) Policy() Policy { return r.policy }

// Strict reports whether violations are errors.
func (r *Registry) Strict() bool { return r.policy == PolicyStrict }

// NewColorCorrection creates a correction and registers it. The returned
// correction may carry a different id than requested under the lenient policy.
func (r *Registry) NewColorCorrection(id, fileIn string) (*ColorCorrection, error) {
	cc := &ColorCorrection{id: id, FileIn: fileIn}
	if err := r.Register(cc); err != nil {
		return nil, err
	}
	return cc, nil
}

// Register sanitizes the correction's id and adds it to the registry.
//
// A blank id is an error under the strict policy; otherwise it becomes the
// zero padded registry size plus one. A taken id is an error under the strict
// policy; otherwise the zero padded count of registered ids sharing the prefix
// is appended.
func (r *Registry) Register(cc *ColorCorrection) error {
	if cc.registry != nil && cc.registry != r {
		return fmt.Errorf("color correction %q belongs to another registry", cc.id)
	}
	id := SanitizeID(cc.id)

	if id == "" {
		if r.Strict() {
			return errors.NewInvalidValue("id", `""`, "a color correction id cannot be blank")
		}
		id = fmt.Sprintf("%03d", len(r.members)+1)
	}

	if _, taken := r.members[id]; taken {
		if r.Strict() {
			return errors.NewDuplicateID(id)
		}
		id = r.uniqueFrom(id)
	}

	cc.id = id
	cc.registry = r
	r.members[id] = cc
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) uniqueFrom(id string) string {
	n := 0
	for existing := range r.members {
		if strings.HasPrefix(existing, id) {
			n++
		}
	}
	for {
		candidate := fmt.Sprintf("%s%03d", id, n)
		if _, taken := r.members[candidate]; !taken {
			return candidate
		}
		n++
	}
}

// Lookup returns the correction registered under id. A missing id is an
// UnresolvedError under the strict policy and nil, nil otherwise.
func (r *Registry) Lookup(id string) (*ColorCorrection, error) {
	if cc, ok := r.members[id]; ok {
		return cc, nil
	}
	if r.Strict() {
		return nil, errors.NewUnresolved(id)
	}
	return nil, nil
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.members[id]
	return ok
}

// Rename changes a registered correction's id. The new id is sanitized; a
// taken id fails with DuplicateIDError regardless of policy.
func (r *Registry) Rename(cc *ColorCorrection, id string) error {
	if cc.registry != r {
		return fmt.Errorf("color correction %q is not registered here", cc.id)
	}
	id = SanitizeID(id)
	if id == cc.id {
		return nil
	}
	if id == "" {
		return errors.NewInvalidValue("id", `""`, "a color correction id cannot be blank")
	}
	if _, taken := r.members[id]; taken {
		return errors.NewDuplicateID(id)
	}

	delete(r.members, cc.id)
	for i, existing := range r.order {
		if existing == cc.id {
			r.order[i] = id
			break
		}
	}
	cc.id = id
	r.members[id] = cc
	return nil
}

// Next increments and returns the counter for key, starting at 1.
func (r *Registry) Next(key string) int {
	r.counters[key]++
	return r.counters[key]
}

// Reset forgets every correction and every counter.
func (r *Registry) Reset() {
	for _, cc := range r.members {
		cc.registry = nil
	}
	r.members = make(map[string]*ColorCorrection)
	r.order = nil
	r.counters = make(map[string]int)
}

// Mark is a registry state captured by Registry.Mark.
type Mark struct {
	size     int
	counters map[string]int
}

// Mark captures the registered ids and counters so a failed parse can
// Rollback to them.
func (r *Registry) Mark() Mark {
	return Mark{size: len(r.order), counters: copyCounters(r.counters)}
}

// Rollback unregisters every correction added since m and restores the
// counters. Corrections registered before m stay, including any renamed since.
func (r *Registry) Rollback(m Mark) {
	size := min(m.size, len(r.order))
	for _, id := range r.order[size:] {
		if cc, ok := r.members[id]; ok {
			cc.registry = nil
			delete(r.members, id)
		}
	}
	r.order = r.order[:size]
	r.counters = copyCounters(m.counters)
}

func copyCounters(counters map[string]int) map[string]int {
	out := make(map[string]int, len(counters))
	for k, v := range counters {
		out[k] = v
	}
	return out
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of registered corrections.
func (r *Registry) Len() int { return len(r.members) }
