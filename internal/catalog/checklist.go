package catalog

// Checklist maps item id to owned. An explicit false is a manual uncheck and
// is distinct from an absent key.
type Checklist map[string]bool

func (c Checklist) Checked(id string) bool {
	return c[id]
}

// ExplicitlyUnchecked reports whether id was deliberately set to false.
func (c Checklist) ExplicitlyUnchecked(id string) bool {
	v, ok := c[id]
	return ok && !v
}

func (c Checklist) Clone() Checklist {
	out := make(Checklist, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
