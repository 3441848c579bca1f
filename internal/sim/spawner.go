package sim

import (
	"fmt"
	"log/slog"

	"github.com/bucephalus26/sustainable-village-sim/internal/events"
	"github.com/bucephalus26/sustainable-village-sim/internal/villager"
	"github.com/bucephalus26/sustainable-village-sim/internal/world"
)

var villagerNames = []string{
	"Alda", "Bram", "Cedric", "Doria", "Edwin", "Freya",
	"Gareth", "Hilda", "Ivo", "Jorunn", "Kellan", "Lisbet",
	"Magda", "Nils", "Odette", "Pell", "Runa", "Soren",
	"Tilda", "Ulf", "Vera", "Wendel", "Ysolde", "Zara",
}

// professionRotation fills the village with a working core before the
// idle tail: producers first, then service roles.
var professionRotation = []villager.ProfessionKind{
	villager.Farmer,
	villager.Shopkeeper,
	villager.Farmer,
	villager.Mason,
	villager.Priest,
	villager.Unemployed,
}

const startingWealth = 50.0

// Populate spawns count villagers with random personalities and rotating
// professions. Names cycle with a numeric suffix past the pool size.
func (w *World) Populate(count int) error {
	for i := 0; i < count; i++ {
		name := villagerNames[i%len(villagerNames)]
		if i >= len(villagerNames) {
			name = fmt.Sprintf("%s %d", name, i/len(villagerNames)+1)
		}
		prof := professionRotation[i%len(professionRotation)]

		mover := world.NewMover(villager.Position{}, 4)
		v, err := villager.New(villager.Config{
			Name:        name,
			Personality: villager.RandomPersonality(w.rng),
			Profession:  prof,
			Wealth:      startingWealth,
			Bus:         w.Bus,
			Ledger:      w.Ledger,
			Clock:       w.Clock,
			Loc:         w.Village,
			Mover:       mover,
			Yield:       w.yield,
			Rng:         w.rng,
			Tuning:      w.cfg,
		})
		if err != nil {
			return fmt.Errorf("spawning %q: %w", name, err)
		}
		w.Villagers = append(w.Villagers, v)
		w.movers[name] = mover

		w.Bus.Publish(events.VillagerSpawned{Villager: name, Profession: prof.String()})
		slog.Debug("villager spawned",
			"name", name,
			"profession", prof.String(),
			"sociability", v.Personality.Sociability,
			"work_ethic", v.Personality.WorkEthic,
		)
	}
	slog.Info("village populated", "villagers", len(w.Villagers))
	return nil
}
