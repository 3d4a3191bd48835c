package plan

import "encoding/json"

// Resource identifies a quota-consuming resource kind.
type Resource string

const (
	ResourceCV    Resource = "cv"
	ResourceJob   Resource = "job"
	ResourceMatch Resource = "match"
)

// Quota is a per-period limit: either a fixed non-negative count or
// Unlimited. Unlimited never participates in arithmetic, only in
// comparisons, so it cannot leak into counter math.
type Quota struct {
	unlimited bool
	n         int
}

func Limited(n int) Quota {
	if n < 0 {
		n = 0
	}
	return Quota{n: n}
}

func Unlimited() Quota {
	return Quota{unlimited: true}
}

func (q Quota) IsUnlimited() bool {
	return q.unlimited
}

// Allows reports whether one more unit may be consumed at the given usage.
func (q Quota) Allows(used int) bool {
	if q.unlimited {
		return true
	}
	return used < q.n
}

// Limit returns the numeric limit and false when the quota is unlimited.
func (q Quota) Limit() (int, bool) {
	if q.unlimited {
		return 0, false
	}
	return q.n, true
}

// Ptr returns the limit as a nullable pointer, nil meaning unlimited.
// Matches the wire shape the frontend expects.
func (q Quota) Ptr() *int {
	if q.unlimited {
		return nil
	}
	n := q.n
	return &n
}

func (q Quota) MarshalJSON() ([]byte, error) {
	if q.unlimited {
		return []byte("null"), nil
	}
	return json.Marshal(q.n)
}

func (q *Quota) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = Unlimited()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*q = Limited(n)
	return nil
}
