package transfer

// Progress observes one transfer. Start is called once the file name and
// total size are known, Update after every chunk with the cumulative
// byte count, and Done exactly once when the session ends, success or
// not.
type Progress interface {
	Start(name string, total uint64)
	Update(transferred, total uint64)
	Done()
}

// NopProgress discards all progress events.
type NopProgress struct{}

func (NopProgress) Start(string, uint64)  {}
func (NopProgress) Update(uint64, uint64) {}
func (NopProgress) Done()                 {}
