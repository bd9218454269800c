package model

// Attribute is a passthrough column carried unchanged to the output.
type Attribute struct {
	Name  string
	Value string
}

// Team is one entry in a category.
type Team struct {
	Name       string
	Attributes []Attribute
	Results    map[string]Result // keyed by event base name
}

// Result returns the team's result for event, Absent when missing.
func (t *Team) Result(event string) Result {
	if r, ok := t.Results[event]; ok {
		return r
	}
	return AbsentResult
}

// Category is a partition of teams that compete only with each other.
type Category struct {
	Name  string
	Teams []Team // input order
}

// TeamNames returns the category's team names in input order.
func (c *Category) TeamNames() []string {
	names := make([]string, len(c.Teams))
	for i := range c.Teams {
		names[i] = c.Teams[i].Name
	}
	return names
}

// Competition is the validated, read-only input of one computation.
type Competition struct {
	Events     []EventDefinition
	Attributes []string   // passthrough column names, in output order
	Categories []Category // sorted by name
}

// TeamCount returns the number of teams across categories.
func (c *Competition) TeamCount() int {
	n := 0
	for i := range c.Categories {
		n += len(c.Categories[i].Teams)
	}
	return n
}
