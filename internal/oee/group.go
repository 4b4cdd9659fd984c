package oee

// ordered keeps per-key accumulators in first-seen order so results are
// deterministic across runs.
type ordered[V any] struct {
	keys  []string
	items map[string]*V
}

func newOrdered[V any]() *ordered[V] {
	return &ordered[V]{items: make(map[string]*V)}
}

// at returns the accumulator for key, creating it with init on first use.
func (o *ordered[V]) at(key string, init func() V) *V {
	if v, ok := o.items[key]; ok {
		return v
	}
	v := init()
	o.items[key] = &v
	o.keys = append(o.keys, key)
	return &v
}

func (o *ordered[V]) values() []V {
	out := make([]V, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, *o.items[k])
	}
	return out
}
