package genbank

// Kind partitions feature keys into the ones the model interprets. Every
// other key is carried as KindOther without further parsing.
type Kind int

const (
	KindOther Kind = iota
	KindGene
	KindCDS
)

// KindOf maps a feature key to its kind.
func KindOf(key string) Kind {
	switch key {
	case "gene":
		return KindGene
	case "CDS":
		return KindCDS
	}
	return KindOther
}

// Qualifier is one /key=value entry of a feature. Flag qualifiers such as
// /pseudo carry an empty Value.
type Qualifier struct {
	Key   string
	Value string
}

// Feature is one feature-table entry in record order.
type Feature struct {
	Key         string      // verbatim feature key (e.g., "gene", "CDS", "tRNA")
	Kind        Kind        // interpreted kind
	Location    Location    // parsed location; nil for KindOther
	RawLocation string      // location text exactly as written
	Qualifiers  []Qualifier // ordered, duplicate keys preserved
	Line        int         // line number of the feature key in the input
}

// Value returns the first value recorded for the qualifier key and whether
// the qualifier was present at all.
func (f *Feature) Value(key string) (string, bool) {
	for _, q := range f.Qualifiers {
		if q.Key == key {
			return q.Value, true
		}
	}
	return "", false
}

// Values returns every value recorded for the qualifier key, in order.
func (f *Feature) Values(key string) []string {
	var vals []string
	for _, q := range f.Qualifiers {
		if q.Key == key {
			vals = append(vals, q.Value)
		}
	}
	return vals
}

// Has reports whether the qualifier key is present.
func (f *Feature) Has(key string) bool {
	_, ok := f.Value(key)
	return ok
}

// GeneName returns the /gene qualifier, or "" when absent.
func (f *Feature) GeneName() string {
	v, _ := f.Value("gene")
	return v
}

// LocusTag returns the /locus_tag qualifier, or "" when absent.
func (f *Feature) LocusTag() string {
	v, _ := f.Value("locus_tag")
	return v
}

// Product returns the /product qualifier, or "" when absent.
func (f *Feature) Product() string {
	v, _ := f.Value("product")
	return v
}
