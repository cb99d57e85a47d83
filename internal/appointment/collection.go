package appointment

import "sync"

// Collection is a session's in-memory appointment list. Lifecycle updates
// are applied in place through Apply instead of refetching.
type Collection struct {
	mu    sync.RWMutex
	items []Appointment
}

func NewCollection() *Collection {
	return &Collection{items: []Appointment{}}
}

func (c *Collection) Replace(list []Appointment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]Appointment(nil), list...)
	if c.items == nil {
		c.items = []Appointment{}
	}
}

func (c *Collection) All() []Appointment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Appointment{}, c.items...)
}

func (c *Collection) Get(id string) (Appointment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.items {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}

// Apply sets the status of one appointment.
func (c *Collection) Apply(id string, status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Status = status
			return
		}
	}
}

func (c *Collection) Filter(crit Criteria) []Appointment {
	return Filter(c.All(), crit)
}

func (c *Collection) Reset() {
	c.Replace(nil)
}
