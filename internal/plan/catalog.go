package plan

import (
	"errors"
	"fmt"
)

type Type string

const (
	TypeTrial      Type = "trial"
	TypeMonthly    Type = "monthly"
	TypeEnterprise Type = "enterprise"
	TypeOneTime    Type = "one_time"
)

// IsBase reports whether the plan type is a base plan as opposed to a
// one-time credit pack.
func (t Type) IsBase() bool {
	return t == TypeTrial || t == TypeMonthly || t == TypeEnterprise
}

// ErrUnknownPlan marks a plan id that is absent from the catalog. Callers
// must fail closed on it: an unknown plan never grants access.
var ErrUnknownPlan = errors.New("unknown plan id")

type Definition struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	CVLimit     Quota  `json:"cv_limit"`
	JobLimit    Quota  `json:"job_limit"`
	MatchLimit  Quota  `json:"match_limit"`
	DisplayName string `json:"display_name"`
}

// LimitFor returns the plan's limit for the given resource.
func (d Definition) LimitFor(r Resource) Quota {
	switch r {
	case ResourceCV:
		return d.CVLimit
	case ResourceJob:
		return d.JobLimit
	case ResourceMatch:
		return d.MatchLimit
	}
	return Limited(0)
}

// Catalog is a static registry of plan definitions. Lookups are pure and
// deterministic.
type Catalog struct {
	defs map[string]Definition
	ids  []string
}

func NewCatalog(defs ...Definition) *Catalog {
	c := &Catalog{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if _, dup := c.defs[d.ID]; !dup {
			c.ids = append(c.ids, d.ID)
		}
		c.defs[d.ID] = d
	}
	return c
}

func (c *Catalog) Lookup(planID string) (Definition, error) {
	d, ok := c.defs[planID]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownPlan, planID)
	}
	return d, nil
}

// BaseIDs returns the ids of all base plans in registration order. The
// subscription store filters on this list; it must never be hardcoded
// elsewhere.
func (c *Catalog) BaseIDs() []string {
	out := make([]string, 0, len(c.ids))
	for _, id := range c.ids {
		if c.defs[id].Type.IsBase() {
			out = append(out, id)
		}
	}
	return out
}

// List returns all definitions in registration order, for the public plans
// endpoint.
func (c *Catalog) List() []Definition {
	out := make([]Definition, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.defs[id])
	}
	return out
}

// Default returns the compiled plan table.
func Default() *Catalog {
	return NewCatalog(
		Definition{
			ID:          "trial",
			Type:        TypeTrial,
			CVLimit:     Limited(10),
			JobLimit:    Limited(1),
			MatchLimit:  Limited(10),
			DisplayName: "Free Trial",
		},
		Definition{
			ID:          "profesional",
			Type:        TypeMonthly,
			CVLimit:     Limited(50),
			JobLimit:    Limited(3),
			MatchLimit:  Limited(100),
			DisplayName: "Professional",
		},
		Definition{
			ID:          "enterprise",
			Type:        TypeEnterprise,
			CVLimit:     Unlimited(),
			JobLimit:    Unlimited(),
			MatchLimit:  Unlimited(),
			DisplayName: "Enterprise",
		},
		Definition{
			ID:          "credits-20",
			Type:        TypeOneTime,
			CVLimit:     Limited(20),
			JobLimit:    Limited(1),
			MatchLimit:  Limited(20),
			DisplayName: "Credit Pack 20",
		},
		Definition{
			ID:          "credits-100",
			Type:        TypeOneTime,
			CVLimit:     Limited(100),
			JobLimit:    Limited(5),
			MatchLimit:  Limited(100),
			DisplayName: "Credit Pack 100",
		},
	)
}
