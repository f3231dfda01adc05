package source

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/msto63/taletekst/pkg/core/config"
)

var months = []string{
	"Januar", "Februar", "Marts", "April", "Maj", "Juni",
	"Juli", "August", "September", "Oktober", "November", "December",
}

// Spoken clock readings
var (
	hourWords = []string{
		"Et", "To", "Tre", "Fire", "Fem", "Seks",
		"Syv", "Otte", "Ni", "Ti", "Elleve", "Tolv",
	}
	hourPrefixes = []string{
		"Fem i", "Fem over", "Ti i", "Ti over", "Kvart i",
		"Kvart over", "Tyve i", "Tyve over", "Halv",
	}
)

const (
	firstYear = 2000
	lastYear  = 2029
)

// Dates returns "d. Month, yyyy" for the years 2000 to 2029 and "d. Month"
// for every day and month
func Dates() []string {
	years := lastYear - firstYear + 1
	out := make([]string, 0, 31*len(months)*(years+1))
	for day := 1; day <= 31; day++ {
		for _, month := range months {
			for year := firstYear; year <= lastYear; year++ {
				out = append(out, fmt.Sprintf("%d. %s, %d", day, month, year))
			}
		}
	}
	for day := 1; day <= 31; day++ {
		for _, month := range months {
			out = append(out, fmt.Sprintf("%d. %s", day, month))
		}
	}
	return out
}

// Times returns "h:m" for every minute of the day and the spoken forms such
// as "Kvart over Tre"
func Times() []string {
	out := make([]string, 0, 24*60+len(hourWords)*len(hourPrefixes))
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			out = append(out, fmt.Sprintf("%d:%d", hour, minute))
		}
	}
	for _, word := range hourWords {
		for _, prefix := range hourPrefixes {
			out = append(out, prefix+" "+word)
		}
	}
	return out
}

func newDates(name string, sc config.SourceConfig, deps Deps) (Builder, error) {
	return shuffled(Dates, deps.Config.General.Seed), nil
}

func newTimes(name string, sc config.SourceConfig, deps Deps) (Builder, error) {
	return shuffled(Times, deps.Config.General.Seed), nil
}

func shuffled(generate func() []string, seed int64) Builder {
	return BuilderFunc(func(ctx context.Context) ([]string, error) {
		items := generate()
		rng := rand.New(rand.NewPCG(uint64(seed), uint64(len(items))))
		rng.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
		return items, nil
	})
}
