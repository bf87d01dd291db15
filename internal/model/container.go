package model

// ContainerItem is the per-container mirror of daemon-reported facts plus
// locally-accumulated history, per spec.md §3.
type ContainerItem struct {
	Id       ContainerId
	Name     string // leading '/' already stripped
	Image    string
	Status   string // daemon status text, e.g. "Up 3 minutes"
	State    State
	Ports    []ContainerPort
	MemLimit uint64

	LastUpdatedUnixS int64

	CPUSeries SampleRing
	MemSeries SampleRing
	RxBytes   uint64
	TxBytes   uint64

	Logs LogBuffer

	Commands StatefulList[CommandKind]
}

// NewContainerItem builds a freshly-discovered item: empty series and
// logs, its command list populated for the given state (spec.md §4.1,
// "New: append with empty series and logs").
func NewContainerItem(id ContainerId, name, image, status string, state State, ports []ContainerPort) *ContainerItem {
	item := &ContainerItem{
		Id:        id,
		Name:      name,
		Image:     image,
		Status:    status,
		State:     state,
		Ports:     ports,
		CPUSeries: NewSampleRing(60),
		MemSeries: NewSampleRing(60),
	}
	item.regenerateCommands()
	return item
}

// regenerateCommands resets the command list for the item's current
// state and selects its first entry (spec.md §4.1: "if state changed,
// regenerate the command-list ... and reset its selection to the first
// command (or clear when the command list is empty)").
func (c *ContainerItem) regenerateCommands() {
	c.Commands = StatefulList[CommandKind]{Items: CommandsFor(c.State)}
	c.Commands.Start()
}

// SetState updates the state and, if it actually changed, regenerates
// the command list.
func (c *ContainerItem) SetState(s State) {
	if c.State == s {
		return
	}
	c.State = s
	c.regenerateCommands()
}

// LastCPU returns the most recent cpu sample, if any.
func (c *ContainerItem) LastCPU() (float64, bool) {
	return c.CPUSeries.Last()
}

// LastMem returns the most recent memory sample, if any.
func (c *ContainerItem) LastMem() (float64, bool) {
	return c.MemSeries.Last()
}
