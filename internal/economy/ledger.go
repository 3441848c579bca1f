// Package economy provides the shared village resource ledger with
// supply-driven pricing and rolling history.
package economy

import (
	"sync"

	"github.com/bucephalus26/sustainable-village-sim/internal/events"
	"github.com/bucephalus26/sustainable-village-sim/internal/tuning"
)

// ResourceType enumerates the village's pooled resources.
type ResourceType uint8

const (
	ResourceNone ResourceType = iota
	ResourceFood
	ResourceWealth
	ResourceGoods
	ResourceStone
)

var resourceNames = [...]string{"None", "Food", "Wealth", "Goods", "Stone"}

func (t ResourceType) String() string {
	if int(t) < len(resourceNames) {
		return resourceNames[t]
	}
	return "Unknown"
}

// PricedResources are the resources subject to supply/demand pricing.
// Wealth is the numeraire and None is never stored.
var PricedResources = []ResourceType{ResourceFood, ResourceGoods, ResourceStone}

// StockedResources are every pool the ledger tracks.
var StockedResources = []ResourceType{ResourceFood, ResourceWealth, ResourceGoods, ResourceStone}

const (
	// historyCap bounds the daily snapshot ring per resource.
	historyCap = 30
	// priceHysteresis suppresses PriceChanged events for sub-threshold moves.
	priceHysteresis = 0.1
)

// Ledger is the shared per-resource stock, price, and history store.
// All mutations are serialized by an internal mutex so concurrent
// drivers preserve the per-tick atomicity the simulation requires; the
// single-threaded driver pays only an uncontended lock.
type Ledger struct {
	mu  sync.Mutex
	bus *events.Bus

	stock      map[ResourceType]float64
	prices     map[ResourceType]float64
	basePrices map[ResourceType]float64
	history    map[ResourceType][]float64
	dailyNet   map[ResourceType]float64

	criticalFloor float64
}

// NewLedger creates a ledger with the configured initial stock and base
// prices, and records the opening snapshot.
func NewLedger(bus *events.Bus, cfg tuning.Economy) *Ledger {
	l := &Ledger{
		bus: bus,
		stock: map[ResourceType]float64{
			ResourceFood:   cfg.InitialFood,
			ResourceWealth: cfg.InitialWealth,
			ResourceGoods:  cfg.InitialGoods,
			ResourceStone:  cfg.InitialStone,
		},
		basePrices: map[ResourceType]float64{
			ResourceFood:  cfg.FoodBasePrice,
			ResourceGoods: cfg.GoodsBasePrice,
			ResourceStone: cfg.StoneBasePrice,
		},
		prices: map[ResourceType]float64{
			ResourceFood:   cfg.FoodBasePrice,
			ResourceGoods:  cfg.GoodsBasePrice,
			ResourceStone:  cfg.StoneBasePrice,
			ResourceWealth: 1.0,
		},
		history:       make(map[ResourceType][]float64),
		dailyNet:      make(map[ResourceType]float64),
		criticalFloor: cfg.CriticalFloor,
	}
	l.RecordDailySnapshot()
	return l
}

// Consume debits amount from a resource pool. It returns false without
// mutating anything when the pool lacks stock, emitting ResourceCritical
// so observers see the failed demand. Consuming None or a non-positive
// amount is a no-op success.
func (l *Ledger) Consume(t ResourceType, amount float64) bool {
	if t == ResourceNone || amount <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stock[t] < amount {
		l.bus.Publish(events.ResourceCritical{Resource: t.String(), Amount: l.stock[t]})
		return false
	}

	l.stock[t] -= amount
	l.bus.Publish(events.ResourceChanged{
		Resource: t.String(),
		Delta:    -amount,
		Total:    l.stock[t],
		Source:   "consumption",
	})

	if l.stock[t] < l.criticalFloor {
		l.bus.Publish(events.ResourceCritical{Resource: t.String(), Amount: l.stock[t]})
	}

	l.updatePrice(t)
	return true
}

// Produce credits amount to a resource pool. Producing None or a
// non-positive amount changes nothing and emits nothing.
func (l *Ledger) Produce(t ResourceType, amount float64) {
	if t == ResourceNone || amount <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stock[t] += amount
	l.bus.Publish(events.ResourceChanged{
		Resource: t.String(),
		Delta:    amount,
		Total:    l.stock[t],
		Source:   "production",
	})
	l.updatePrice(t)
}

// updatePrice recomputes a resource's price from scarcity. Caller holds mu.
// Price stays within [0.5, 3]×base and only commits past the hysteresis
// band to avoid event spam from tiny stock movements.
func (l *Ledger) updatePrice(t ResourceType) {
	base, priced := l.basePrices[t]
	if !priced {
		return
	}

	scarcity := 100 / (l.stock[t] + 50)
	newPrice := base * scarcity
	if newPrice < base*0.5 {
		newPrice = base * 0.5
	}
	if newPrice > base*3 {
		newPrice = base * 3
	}

	old := l.prices[t]
	if diff := newPrice - old; diff > priceHysteresis || diff < -priceHysteresis {
		l.prices[t] = newPrice
		l.bus.Publish(events.PriceChanged{Resource: t.String(), Old: old, New: newPrice})
	}
}

// Price returns the current unit price. Unpriced resources trade at 1.
func (l *Ledger) Price(t ResourceType) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.prices[t]; ok {
		return p
	}
	return 1.0
}

// Amount returns the current stock of a resource.
func (l *Ledger) Amount(t ResourceType) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stock[t]
}

// Value returns amount × current price.
func (l *Ledger) Value(t ResourceType, amount float64) float64 {
	return amount * l.Price(t)
}

// RecordDailySnapshot appends the current stock of every pool to the
// capped history ring and recomputes the daily net change. Invoked once
// per simulated day.
func (l *Ledger) RecordDailySnapshot() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range StockedResources {
		h := l.history[t]
		if len(h) > 0 {
			l.dailyNet[t] = l.stock[t] - h[len(h)-1]
		} else {
			l.dailyNet[t] = 0
		}
		h = append(h, l.stock[t])
		if len(h) > historyCap {
			h = h[len(h)-historyCap:]
		}
		l.history[t] = h
	}
}

// HistoryWindow returns up to n most recent daily samples, oldest first.
func (l *Ledger) HistoryWindow(t ResourceType, n int) []float64 {
	if n <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	h := l.history[t]
	if n > len(h) {
		n = len(h)
	}
	out := make([]float64, n)
	copy(out, h[len(h)-n:])
	return out
}

// DailyNetChange returns the stock delta between the last two snapshots.
func (l *Ledger) DailyNetChange(t ResourceType) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dailyNet[t]
}
