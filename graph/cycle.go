package graph

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// checkCycles walks subClassOf edges depth first from every class in IRI
// order and reports the first class reached while still on the stack.
func checkCycles(g *Graph) error {
	states := make(map[string]visitState, len(g.classes))

	var visit func(c *Class) error
	visit = func(c *Class) error {
		key := c.IRI.Value()
		switch states[key] {
		case stateVisiting:
			return &CycleError{IRI: key}
		case stateDone:
			return nil
		}

		states[key] = stateVisiting
		for _, parent := range c.Parents() {
			if err := visit(parent); err != nil {
				return err
			}
		}
		states[key] = stateDone
		return nil
	}

	for _, c := range g.Classes() {
		if err := visit(c); err != nil {
			return err
		}
	}
	return nil
}
