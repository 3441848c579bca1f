// Package clock provides the simulated time source: a scaled day/night
// cycle with discrete time-of-day blocks that drive villager schedules.
package clock

import "github.com/bucephalus26/sustainable-village-sim/internal/events"

// TimeOfDay is the coarse schedule block the current hour falls in.
type TimeOfDay uint8

const (
	Morning   TimeOfDay = iota // 06:00–11:59
	Noon                       // 12:00–13:59
	Afternoon                  // 14:00–17:59
	Evening                    // 18:00–21:59
	Night                      // 22:00–05:59
)

var todNames = [...]string{"Morning", "Noon", "Afternoon", "Evening", "Night"}

func (t TimeOfDay) String() string {
	if int(t) < len(todNames) {
		return todNames[t]
	}
	return "Unknown"
}

// Clock advances simulated time from real elapsed seconds and publishes
// TimeOfDayChanged and DayChanged events on transitions. It is advanced
// exactly once per tick by the simulation world.
type Clock struct {
	bus *events.Bus

	dayLengthSeconds float64
	hour             float64 // current hour of day, [0, 24)
	day              int
	tod              TimeOfDay
	totalHours       float64 // monotonic sim-hours since start
}

// New creates a clock. dayLengthSeconds is how many real seconds one
// simulated day takes.
func New(bus *events.Bus, dayLengthSeconds, startHour float64) *Clock {
	c := &Clock{
		bus:              bus,
		dayLengthSeconds: dayLengthSeconds,
		hour:             startHour,
		day:              1,
	}
	c.tod = timeOfDayFor(startHour)
	return c
}

// HoursPerSecond is the scale factor between real seconds and sim-hours.
func (c *Clock) HoursPerSecond() float64 { return 24 / c.dayLengthSeconds }

// Advance moves simulated time forward by dtReal real seconds and returns
// the number of sim-hours that elapsed.
func (c *Clock) Advance(dtReal float64) float64 {
	dtHours := dtReal * c.HoursPerSecond()
	c.hour += dtHours
	c.totalHours += dtHours

	for c.hour >= 24 {
		c.hour -= 24
		c.day++
		c.bus.Publish(events.DayChanged{Day: c.day})
	}

	if tod := timeOfDayFor(c.hour); tod != c.tod {
		c.tod = tod
		c.bus.Publish(events.TimeOfDayChanged{
			TimeOfDay: tod.String(),
			Hour:      c.hour,
			Day:       c.day,
		})
	}
	return dtHours
}

func (c *Clock) TimeOfDay() TimeOfDay { return c.tod }
func (c *Clock) Hour() float64        { return c.hour }
func (c *Clock) Day() int             { return c.day }

// TotalHours is the monotonic sim-hour counter used for fulfillment
// timestamps.
func (c *Clock) TotalHours() float64 { return c.totalHours }

func timeOfDayFor(hour float64) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 14:
		return Noon
	case hour >= 14 && hour < 18:
		return Afternoon
	case hour >= 18 && hour < 22:
		return Evening
	default:
		return Night
	}
}
