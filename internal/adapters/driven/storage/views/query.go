package views

import (
	"sort"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// SortRows orders query results: by document id when every row shares
// one key, by key then id otherwise.
func SortRows(rows []domain.IndexRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Key != rows[j].Key {
			return rows[i].Key < rows[j].Key
		}
		return rows[i].ID < rows[j].ID
	})
}
