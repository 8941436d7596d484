package pdf

import (
	"github.com/yansassi/hecho-adm-sub001/models"
)

// gridQueue is the work queue of one category. Entries are consumed left to
// right; a backfill may take a later single product out of order, so each
// entry carries its own done flag.
type gridQueue struct {
	entries []gridEntry
}

type gridEntry struct {
	group models.ProductGroup
	done  bool
}

func newGridQueue(groups []models.ProductGroup) *gridQueue {
	q := &gridQueue{entries: make([]gridEntry, len(groups))}
	for i, g := range groups {
		q.entries[i] = gridEntry{group: g}
	}
	return q
}

// next returns the index of the first pending entry at or after from, or -1
func (q *gridQueue) next(from int) int {
	for i := from; i < len(q.entries); i++ {
		if !q.entries[i].done {
			return i
		}
	}
	return -1
}

// nextSingle returns the first pending non-grouped entry after from, or -1
func (q *gridQueue) nextSingle(from int) int {
	for i := from + 1; i < len(q.entries); i++ {
		e := q.entries[i]
		if !e.done && !e.group.IsVariationGroup {
			return i
		}
	}
	return -1
}

func (q *gridQueue) empty() bool {
	return q.next(0) < 0
}

// placement is one card in a row
type placement struct {
	entry  int
	column int
	span   int
	height float64
}

type gridRow struct {
	cards  []placement
	height float64
}

// gridPage is the plan for one page of a category
type gridPage struct {
	rows     []gridRow
	consumed int // products placed
}

// cardMeasure returns the natural height of a group's card
type cardMeasure func(g models.ProductGroup) float64

// planGridPage fills rows from the queue until the next row would cross
// bottom. Placed entries are marked done. The first row of a page is always
// committed so repeated calls drain the queue.
func planGridPage(q *gridQueue, top, bottom float64, measure cardMeasure) gridPage {
	var page gridPage
	y := top
	for !q.empty() {
		row := buildRow(q, measure)
		if len(row.cards) == 0 {
			break
		}
		if len(page.rows) > 0 && y+row.height > bottom {
			for _, c := range row.cards {
				q.entries[c.entry].done = false
			}
			break
		}
		page.rows = append(page.rows, row)
		for _, c := range row.cards {
			page.consumed += len(q.entries[c.entry].group.Variations)
		}
		y += row.height + gridGap
	}
	return page
}

// buildRow takes entries for one row and marks them done.
// A group never straddles rows: when only the last column is left, the next
// pending single product fills it, otherwise the cell stays empty.
func buildRow(q *gridQueue, measure cardMeasure) gridRow {
	var row gridRow
	col := 0
	cursor := 0
	for col < gridColumns {
		i := q.next(cursor)
		if i < 0 {
			break
		}
		span := 1
		if q.entries[i].group.IsVariationGroup {
			span = 2
		}
		if col+span > gridColumns {
			i = q.nextSingle(i)
			if i < 0 {
				break
			}
			span = 1
		} else {
			cursor = i + 1
		}

		e := &q.entries[i]
		e.done = true
		h := measure(e.group)
		row.cards = append(row.cards, placement{entry: i, column: col, span: span, height: h})
		if h > row.height {
			row.height = h
		}
		col += span
	}
	return row
}
