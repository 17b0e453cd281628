package layout

import (
	"fmt"
	"math"
	"sort"
)

// detectRepeatedGroups finds sets of same-shaped elements by pairwise
// dimensional similarity: two elements join a group when width and height
// each differ by less than threshold of the larger dimension. Greedy:
// each element belongs to at most one group, first-found wins. Groups of
// size 1 are discarded. Keys are leader indices into elements.
func detectRepeatedGroups(elements []ElementInfo, threshold float64) map[int][]int {
	groups := make(map[int][]int)
	processed := make(map[int]bool)

	for i := range elements {
		if processed[i] {
			continue
		}
		group := []int{i}
		w1 := elements[i].Box.Width
		h1 := elements[i].Box.Height

		for j := i + 1; j < len(elements); j++ {
			if processed[j] {
				continue
			}
			w2 := elements[j].Box.Width
			h2 := elements[j].Box.Height

			if relDiff(w1, w2) < threshold && relDiff(h1, h2) < threshold {
				group = append(group, j)
				processed[j] = true
			}
		}

		if len(group) > 1 {
			groups[i] = group
			processed[i] = true
		}
	}
	return groups
}

// relDiff is the dimension difference relative to the larger value.
// Degenerate (both zero) pairs count as maximally different.
func relDiff(a, b float64) float64 {
	m := math.Max(a, b)
	if m == 0 {
		return 1
	}
	return math.Abs(a-b) / m
}

// detectGridLayout infers grid hints from slot positions (normalized
// coordinates): slots are binned into rows by y, the most populated row
// is taken as representative, and the average positive horizontal gap
// between its members becomes the grid gap. Returns nil when no row has
// at least 2 members.
func detectGridLayout(slots []Slot, rowTolerance float64) *LayoutHints {
	if len(slots) < 2 {
		return nil
	}

	rows := make(map[int][]Slot)
	for _, s := range slots {
		bin := int(math.Round(s.BoundingBox.Y / rowTolerance))
		rows[bin] = append(rows[bin], s)
	}

	// Pick the densest row. Bins are walked in ascending order so the
	// choice is deterministic when counts tie.
	bins := make([]int, 0, len(rows))
	for b := range rows {
		bins = append(bins, b)
	}
	sort.Ints(bins)

	var row []Slot
	for _, b := range bins {
		if len(rows[b]) > len(row) {
			row = rows[b]
		}
	}
	if len(row) < 2 {
		return nil
	}

	sort.Slice(row, func(i, j int) bool {
		return row[i].BoundingBox.X < row[j].BoundingBox.X
	})

	var gaps []float64
	for i := 0; i < len(row)-1; i++ {
		right := row[i].BoundingBox.X + row[i].BoundingBox.Width
		gap := row[i+1].BoundingBox.X - right
		if gap > 0 {
			gaps = append(gaps, gap)
		}
	}

	avg := 0.0
	if len(gaps) > 0 {
		sum := 0.0
		for _, g := range gaps {
			sum += g
		}
		avg = sum / float64(len(gaps))
	}

	return &LayoutHints{
		DisplayType: "grid",
		GridColumns: len(row),
		Gap:         round3(avg),
		Alignment:   "center",
	}
}

// detectVisualGroups clusters slots by spatial proximity and alignment in
// normalized units. Two slots group when they are horizontally aligned,
// vertically aligned, or in close proximity, and either share a role or
// are close enough that role does not matter. Greedy, singletons dropped.
func detectVisualGroups(slots []Slot, threshold float64) map[string][]string {
	groups := make(map[string][]string)
	processed := make(map[string]bool)
	counter := 0

	for i := range slots {
		s1 := &slots[i]
		if processed[s1.ID] {
			continue
		}
		group := []string{s1.ID}
		processed[s1.ID] = true

		for j := i + 1; j < len(slots); j++ {
			s2 := &slots[j]
			if processed[s2.ID] {
				continue
			}

			xDiff := math.Abs(s1.BoundingBox.X - s2.BoundingBox.X)
			yDiff := math.Abs(s1.BoundingBox.Y - s2.BoundingBox.Y)

			horizontal := yDiff < threshold
			vertical := xDiff < threshold
			close := xDiff+yDiff < threshold*3

			if (horizontal || vertical || close) && (s1.Role == s2.Role || close) {
				group = append(group, s2.ID)
				processed[s2.ID] = true
			}
		}

		if len(group) > 1 {
			groups[fmt.Sprintf("group-%d", counter)] = group
			counter++
		}
	}
	return groups
}

// buildRepeatedGroupMeta aggregates repeated slots by role into the
// output structure, keyed repeated-<role>. Items are ordered by repeat
// index; a group's item sets are mutually exclusive.
func buildRepeatedGroupMeta(slots []Slot) map[string]RepeatedGroup {
	type roleIndex struct {
		byIndex map[int][]string
		order   []int
	}
	byRole := make(map[string]*roleIndex)
	var roleOrder []string

	for _, s := range slots {
		if !s.Repeated || s.RepeatedIndex == nil {
			continue
		}
		ri, ok := byRole[s.Role]
		if !ok {
			ri = &roleIndex{byIndex: make(map[int][]string)}
			byRole[s.Role] = ri
			roleOrder = append(roleOrder, s.Role)
		}
		idx := *s.RepeatedIndex
		if _, seen := ri.byIndex[idx]; !seen {
			ri.order = append(ri.order, idx)
		}
		ri.byIndex[idx] = append(ri.byIndex[idx], s.ID)
	}

	out := make(map[string]RepeatedGroup, len(byRole))
	for _, role := range roleOrder {
		ri := byRole[role]
		sort.Ints(ri.order)
		items := make([]RepeatedItem, 0, len(ri.order))
		for _, idx := range ri.order {
			items = append(items, RepeatedItem{Index: idx, SlotIDs: ri.byIndex[idx]})
		}
		out["repeated-"+role] = RepeatedGroup{
			Role:  role,
			Count: len(items),
			Items: items,
		}
	}
	return out
}
