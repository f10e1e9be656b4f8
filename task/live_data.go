package task

import (
	"sync"
	"time"

	"github.com/angas/esios-go/types/maybe"
)

// LiveData is the in-memory snapshot behind the dashboard's live
// ticker. The cron task writes it, the websocket broadcaster reads it.
// Nothing else is ever cached; page requests hit the API directly.
type LiveData struct {
	mu             sync.RWMutex
	price          maybe.Maybe[float64] // €/MWh, current hour
	demand         maybe.Maybe[float64] // MW, current hour
	renewableShare maybe.Maybe[float64] // percent, current hour
	updatedAt      time.Time
}

func NewLiveData() *LiveData {
	return &LiveData{}
}

func (l *LiveData) Set(price, demand, renewableShare maybe.Maybe[float64]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.price = price
	l.demand = demand
	l.renewableShare = renewableShare
	l.updatedAt = time.Now()
}

func (l *LiveData) Price() maybe.Maybe[float64] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.price
}

func (l *LiveData) Demand() maybe.Maybe[float64] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.demand
}

func (l *LiveData) RenewableShare() maybe.Maybe[float64] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.renewableShare
}

func (l *LiveData) UpdatedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.updatedAt
}
