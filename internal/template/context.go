package template

// Context is the data a template is rendered against.
type Context map[string]interface{}

// MergeContexts merges multiple contexts into a single context
// Later contexts override values from earlier contexts
func MergeContexts(contexts ...Context) Context {
	result := make(Context)

	for _, ctx := range contexts {
		for key, value := range ctx {
			result[key] = value
		}
	}

	return result
}
