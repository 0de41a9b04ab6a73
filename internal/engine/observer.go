package engine

// Observer receives lifecycle notifications during a run.
//
// For every task the executor emits each event at most once per run:
// TaskStarted before the action is invoked, then exactly one of
// TaskSucceeded or TaskFailed. The run itself ends with exactly one of
// RunCompleted or RunAborted.
type Observer interface {
	TaskStarted(id string)
	TaskSucceeded(id string)
	TaskFailed(id string, err error)
	RunCompleted(result *Result)
	RunAborted(result *Result, err error)
}

// NopObserver is an Observer that ignores all notifications
type NopObserver struct{}

func (NopObserver) TaskStarted(string)        {}
func (NopObserver) TaskSucceeded(string)      {}
func (NopObserver) TaskFailed(string, error)  {}
func (NopObserver) RunCompleted(*Result)      {}
func (NopObserver) RunAborted(*Result, error) {}

// CombineObservers fans every notification out to all given observers in order
func CombineObservers(observers ...Observer) Observer {
	return multiObserver(observers)
}

type multiObserver []Observer

func (m multiObserver) TaskStarted(id string) {
	for _, o := range m {
		o.TaskStarted(id)
	}
}

func (m multiObserver) TaskSucceeded(id string) {
	for _, o := range m {
		o.TaskSucceeded(id)
	}
}

func (m multiObserver) TaskFailed(id string, err error) {
	for _, o := range m {
		o.TaskFailed(id, err)
	}
}

func (m multiObserver) RunCompleted(result *Result) {
	for _, o := range m {
		o.RunCompleted(result)
	}
}

func (m multiObserver) RunAborted(result *Result, err error) {
	for _, o := range m {
		o.RunAborted(result, err)
	}
}
