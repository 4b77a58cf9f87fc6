package progress

// Reporter receives progress from the code being loaded. Implementations
// must be safe for concurrent use.
type Reporter interface {
	Begin(name string, total int)
	SetTaskName(name string)
	SubTask(name string)
	Worked(delta int)
	InternalWorked(delta float64)
	Done()

	// Canceled reports whether the user asked to abort.
	Canceled() bool
}

type tee []Reporter

// Tee returns a Reporter that forwards every call to all of rs.
func Tee(rs ...Reporter) Reporter {
	return tee(rs)
}

func (t tee) Begin(name string, total int) {
	for _, r := range t {
		r.Begin(name, total)
	}
}

func (t tee) SetTaskName(name string) {
	for _, r := range t {
		r.SetTaskName(name)
	}
}

func (t tee) SubTask(name string) {
	for _, r := range t {
		r.SubTask(name)
	}
}

func (t tee) Worked(delta int) {
	for _, r := range t {
		r.Worked(delta)
	}
}

func (t tee) InternalWorked(delta float64) {
	for _, r := range t {
		r.InternalWorked(delta)
	}
}

func (t tee) Done() {
	for _, r := range t {
		r.Done()
	}
}

func (t tee) Canceled() bool {
	for _, r := range t {
		if r.Canceled() {
			return true
		}
	}
	return false
}
