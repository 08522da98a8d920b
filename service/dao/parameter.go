package dao

// Parameter is a named List filter. Interpretation is up to the concrete
// DAO; the in-memory store matches on exported field names.
type Parameter struct {
	Name  string
	Value interface{}
}

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
