package domain

// Classifier is a loaded, pre-fitted binary model. Implementations must be
// safe for concurrent use and must not mutate after construction.
type Classifier interface {
	// Classify returns the label for a vector of length Dimension()
	Classify(vector InputVector) (Label, error)
	// Dimension is the number of features the model was fitted on
	Dimension() int
}

// ClassifierFunc adapts a plain function into a Classifier
type ClassifierFunc struct {
	N  int
	Fn func(vector InputVector) (Label, error)
}

// Classify calls the wrapped function
func (c ClassifierFunc) Classify(vector InputVector) (Label, error) {
	return c.Fn(vector)
}

// Dimension returns the declared feature count
func (c ClassifierFunc) Dimension() int {
	return c.N
}
