package state

import "sort"

// Garden is the ordered collection of planted flowers, newest first.
type Garden struct {
	flowers []Flower
}

// NewGarden builds a garden from flowers and restores newest-first order.
func NewGarden(flowers []Flower) Garden {
	g := Garden{flowers: append([]Flower(nil), flowers...)}
	g.sort()
	return g
}

// Len returns the number of flowers.
func (g Garden) Len() int {
	return len(g.flowers)
}

// At returns the flower at index i, where 0 is the newest.
func (g Garden) At(i int) Flower {
	return g.flowers[i]
}

// Flowers returns a copy of the flowers, newest first.
func (g Garden) Flowers() []Flower {
	return append([]Flower(nil), g.flowers...)
}

// Prepend returns a new garden with f in front. The receiver is untouched so
// views handed out earlier stay stable.
func (g Garden) Prepend(f Flower) Garden {
	flowers := make([]Flower, 0, len(g.flowers)+1)
	flowers = append(flowers, f)
	flowers = append(flowers, g.flowers...)
	return Garden{flowers: flowers}
}

// Contains reports whether a flower with id is planted.
func (g Garden) Contains(id string) bool {
	for _, f := range g.flowers {
		if f.ID == id {
			return true
		}
	}
	return false
}

// Merge folds other into g. Flowers already present by ID are kept as they
// are; the rest are added and the result is re-sorted. It returns the merged
// garden and the flowers that were new.
func (g Garden) Merge(other Garden) (Garden, []Flower) {
	seen := make(map[string]bool, len(g.flowers))
	for _, f := range g.flowers {
		seen[f.ID] = true
	}

	merged := g.Flowers()
	added := make([]Flower, 0)
	for _, f := range other.flowers {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		merged = append(merged, f)
		added = append(added, f)
	}

	out := Garden{flowers: merged}
	out.sort()
	return out, added
}

func (g *Garden) sort() {
	sort.SliceStable(g.flowers, func(i, j int) bool {
		return g.flowers[i].CreatedAt.After(g.flowers[j].CreatedAt)
	})
}
