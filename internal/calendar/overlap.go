package calendar

import (
	"slices"
	"time"

	"github.com/starford/dagaz/internal/models"
)

// Overlaps reports whether the half-open intervals [start, end) of a and b
// intersect. A zero-duration event overlaps nothing, itself included.
func Overlaps(a, b models.Event) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Slot is a horizontal placement inside a container.
type Slot struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// LayoutConcurrent gives ev a slot among the events of all that overlap it.
// The group keeps the order of all and always contains ev itself. Overlap is
// not closed transitively, so two events that overlap a third but not each
// other may be given slots as if they did.
func LayoutConcurrent(ev models.Event, all []models.Event, containerWidth float64) Slot {
	group := 0
	index := -1
	for _, other := range all {
		if other.ID == ev.ID {
			index = group
			group++
			continue
		}
		if Overlaps(ev, other) {
			group++
		}
	}
	if index < 0 {
		index = group
		group++
	}
	width := containerWidth / float64(group)
	return Slot{Left: width * float64(index), Width: width}
}

// Placement is an event assigned to a column of its overlap cluster.
type Placement struct {
	Event    models.Event `json:"event"`
	Position Position     `json:"position"`
	Column   int          `json:"column"`
	Columns  int          `json:"columns"`
}

// Slot converts the column assignment into pixels of containerWidth.
func (p Placement) Slot(containerWidth float64) Slot {
	width := containerWidth / float64(p.Columns)
	return Slot{Left: width * float64(p.Column), Width: width}
}

// PartitionColumns lays out events side by side using interval partitioning.
// Events are swept in start order; a cluster is a maximal run of events
// connected by overlap, and every event of a cluster shares its column count.
// Each event takes the lowest column whose previous occupant has ended, so
// no two overlapping events share a column.
func PartitionColumns(events []models.Event) []Placement {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b models.Event) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		// Longer events first so they take the leftmost column.
		return b.End.Compare(a.End)
	})

	out := make([]Placement, 0, len(sorted))
	var (
		columnEnds   []time.Time
		clusterFrom  int
		clusterEnd   time.Time
		clusterFresh = true
	)
	closeCluster := func() {
		for i := clusterFrom; i < len(out); i++ {
			out[i].Columns = len(columnEnds)
		}
		clusterFrom = len(out)
		columnEnds = columnEnds[:0]
		clusterFresh = true
	}

	for _, ev := range sorted {
		if !clusterFresh && !ev.Start.Before(clusterEnd) {
			closeCluster()
		}
		col := -1
		for i, end := range columnEnds {
			if !end.After(ev.Start) {
				col = i
				break
			}
		}
		if col < 0 {
			col = len(columnEnds)
			columnEnds = append(columnEnds, ev.End)
		} else {
			columnEnds[col] = ev.End
		}
		if clusterFresh || ev.End.After(clusterEnd) {
			clusterEnd = ev.End
		}
		clusterFresh = false
		out = append(out, Placement{Event: ev.Clone(), Column: col})
	}
	closeCluster()
	return out
}
