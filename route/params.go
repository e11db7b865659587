package route

// Param is one matched path parameter.
type Param struct {
	Name  string
	Value string
}

// Params holds the parameters captured by a match, in the order the
// template declares them.
type Params []Param

// Get returns the value of the named parameter.
func (params Params) Get(name string) (string, bool) {
	for _, p := range params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
