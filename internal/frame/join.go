package frame

// JoinKind selects which left rows survive a join.
type JoinKind int

const (
	// Inner keeps only left rows that have at least one match.
	Inner JoinKind = iota
	// Left keeps every left row; unmatched rows get null right cells.
	Left
)

// String returns the join kind name.
func (k JoinKind) String() string {
	if k == Left {
		return "left"
	}

	return "inner"
}

// clashSuffix is appended to right-hand columns whose name is already taken.
const clashSuffix = "_y"

// Join combines left and right on left[leftKey] == right[rightKey].
//
// Left row order is preserved. A left row matching several right rows is
// emitted once per match, in right row order. When both keys share a name
// the right key column is omitted from the result. Null keys never match.
func Join(left, right *Frame, leftKey, rightKey string, how JoinKind) *Frame {
	rightCols := make([]int, 0, len(right.columns))
	cols := left.Columns()
	taken := make(map[string]bool, len(cols)+len(right.columns))

	for _, c := range cols {
		taken[c] = true
	}

	for i, c := range right.columns {
		if c == rightKey && leftKey == rightKey {
			continue
		}

		name := c
		for taken[name] {
			name += clashSuffix
		}

		taken[name] = true
		cols = append(cols, name)
		rightCols = append(rightCols, i)
	}

	matches := make(map[string][]int, len(right.rows))
	rk, hasRightKey := right.index[rightKey]

	if hasRightKey {
		for i, cells := range right.rows {
			key := cells[rk]
			if key == Null || key == "" {
				continue
			}

			matches[key] = append(matches[key], i)
		}
	}

	out := New(cols)

	for _, lc := range left.rows {
		key := cellAt(lc, left.index, leftKey)

		hits := matches[key]
		if key == Null || key == "" {
			hits = nil
		}

		if len(hits) == 0 {
			if how == Left {
				out.rows = append(out.rows, combine(lc, nil, rightCols))
			}

			continue
		}

		for _, ri := range hits {
			out.rows = append(out.rows, combine(lc, right.rows[ri], rightCols))
		}
	}

	return out
}

func combine(left, right []string, rightCols []int) []string {
	row := make([]string, 0, len(left)+len(rightCols))
	row = append(row, left...)

	for _, i := range rightCols {
		if right == nil {
			row = append(row, Null)
		} else {
			row = append(row, right[i])
		}
	}

	return row
}
