// Command demo fills the store with a month of made-up history so the
// history and calendar views have something to show.
package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/schedule"
	"tableflip.dev/routine/pkg/store"
)

func main() {
	p, err := store.Load(nil)
	if err != nil {
		panic(err)
	}

	ids := schedule.Default().IDs()
	today := time.Now()
	for i := 1; i <= 30; i++ {
		d := day.Of(today.AddDate(0, 0, -i))
		if has, _ := p.Completions(d); len(has) > 0 {
			continue
		}
		n := rand.IntN(len(ids) + 1)
		if rand.IntN(3) == 0 {
			n = len(ids)
		}
		picked := make([]string, 0, n)
		for _, j := range rand.Perm(len(ids))[:n] {
			picked = append(picked, ids[j])
		}
		if err := p.StoreCompletions(d, picked); err != nil {
			panic(err)
		}
		fmt.Printf("%s %d/%d\n", d, n, len(ids))
	}
}
