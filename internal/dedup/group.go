package dedup

import (
	"github.com/nao1215/dupmeta/internal/model"
)

// MinGroupSize is the smallest group that counts as a duplicate.
const MinGroupSize = 2

// orderedGroups collects pages per key while remembering the order in which
// keys were first seen.
type orderedGroups struct {
	keys    []string
	members map[string][]model.Page
}

func newOrderedGroups() *orderedGroups {
	return &orderedGroups{
		keys:    make([]string, 0),
		members: make(map[string][]model.Page),
	}
}

func (o *orderedGroups) add(key string, page model.Page) {
	if _, ok := o.members[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.members[key] = append(o.members[key], page)
}

// reportable drops groups below MinGroupSize and numbers the rest from 1
// in first-encounter order.
func (o *orderedGroups) reportable() []model.Group {
	groups := make([]model.Group, 0)
	for _, key := range o.keys {
		pages := o.members[key]
		if len(pages) < MinGroupSize {
			continue
		}
		groups = append(groups, model.Group{
			ID:    len(groups) + 1,
			Key:   key,
			Pages: pages,
		})
	}
	return groups
}

// GroupByFields partitions the dataset by the composite key of fields and
// returns the groups with at least two pages.
//
// When requireAllNonEmpty is true, a page with any selected field empty
// after normalization is left out of every group, so that "empty matches
// empty" is never reported as a duplicate.
func GroupByFields(dataset *model.Dataset, fields []model.Field, requireAllNonEmpty bool) ([]model.Group, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	groups := newOrderedGroups()
	for _, page := range dataset.Pages {
		if requireAllNonEmpty && anyEmpty(page, fields) {
			continue
		}
		key, err := BuildKey(page, fields)
		if err != nil {
			return nil, err
		}
		groups.add(key, page)
	}
	return groups.reportable(), nil
}

// SingleFieldStats records the row counts seen by GroupBySingleField.
type SingleFieldStats struct {
	RowsTotal          int
	RowsAfterExclusion int
	RowsNonEmpty       int
}

// GroupBySingleField removes excluded URLs and pages whose field is empty,
// then groups the remaining pages by the normalized field value.
// The group key is the normalized value itself.
func GroupBySingleField(dataset *model.Dataset, field model.Field, exclude ExclusionSet) ([]model.Group, SingleFieldStats, error) {
	stats := SingleFieldStats{RowsTotal: dataset.Len()}
	if !field.Valid() {
		return nil, stats, validateFields([]model.Field{field})
	}

	groups := newOrderedGroups()
	for _, page := range dataset.Pages {
		if exclude.Contains(page.URL) {
			continue
		}
		stats.RowsAfterExclusion++

		value, err := normalizedValue(page, field)
		if err != nil {
			return nil, stats, err
		}
		if value == "" {
			continue
		}
		stats.RowsNonEmpty++
		groups.add(value, page)
	}
	return groups.reportable(), stats, nil
}

// anyEmpty reports whether any selected field of page normalizes to "".
func anyEmpty(page model.Page, fields []model.Field) bool {
	for _, f := range fields {
		raw, _ := page.Value(f)
		if IsEmpty(raw) {
			return true
		}
	}
	return false
}

// CountEligible returns how many pages have every selected field non-empty.
func CountEligible(dataset *model.Dataset, fields []model.Field) int {
	n := 0
	for _, page := range dataset.Pages {
		if !anyEmpty(page, fields) {
			n++
		}
	}
	return n
}
