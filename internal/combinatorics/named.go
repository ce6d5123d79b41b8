package combinatorics

// Axis is a named sequence taking part in a named product.
type Axis[T comparable] struct {
	Name   string
	Values []T
}

// Field is one named value of a Record.
type Field[T comparable] struct {
	Name  string
	Value T
}

// Record is a tuple of a named product, keyed by axis name in axis order.
type Record[T comparable] []Field[T]

// Names returns the field names in order.
func (r Record[T]) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Map returns the record as a map. Key order is lost.
func (r Record[T]) Map() map[string]T {
	m := make(map[string]T, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}

// ProductNamed enumerates the cartesian product of the axes in the same order
// as Product and repackages every tuple as a Record keyed by axis name.
//
//	ProductNamed(Axis[string]{"who", []string{"me", "you"}}, Axis[string]{"say", []string{"hi", "by"}})
//	// [{who:me say:hi} {who:me say:by} {who:you say:hi} {who:you say:by}]
func ProductNamed[T comparable](axes ...Axis[T]) []Record[T] {
	seqs := make([][]T, len(axes))
	for i, a := range axes {
		seqs[i] = a.Values
	}

	tuples := Product(seqs...)
	records := make([]Record[T], len(tuples))
	for i, tuple := range tuples {
		rec := make(Record[T], len(axes))
		for j, v := range tuple {
			rec[j] = Field[T]{Name: axes[j].Name, Value: v}
		}
		records[i] = rec
	}
	return records
}
