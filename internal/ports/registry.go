package ports

// ExecutorRegistry maps node type tags to executors. Resolve never
// fails: unknown types fall back to a pass-through executor with a
// single default handle, so an unrecognized canvas node degrades to an
// echo of its input instead of breaking the run.
type ExecutorRegistry interface {
	Register(executor NodeExecutor) error
	Resolve(nodeType string) NodeExecutor
	Has(nodeType string) bool
	Types() []string
	Unregister(nodeType string) error
}
