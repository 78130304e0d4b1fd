package config

import (
	"strconv"
	"strings"
)

// PageSet is the parsed form of a page-selector string: nil means "all
// pages"; otherwise the set of 1-based page numbers to consider.
type PageSet map[int]struct{}

// Contains reports whether page is selected. A nil PageSet selects every
// page.
func (p PageSet) Contains(page int) bool {
	if p == nil {
		return true
	}
	_, ok := p[page]
	return ok
}

// Pages resolves the set against a document of numPages pages, returning
// the concrete, sorted list of page numbers to process. A nil PageSet
// (meaning "all") returns every page from 1 to numPages.
func (p PageSet) Pages(numPages int) []int {
	var out []int
	for page := 1; page <= numPages; page++ {
		if p.Contains(page) {
			out = append(out, page)
		}
	}
	return out
}

// ParsePages parses a "all" / comma-and-range page selector ("1-5,8") into
// a PageSet. Malformed input is treated as "all" rather than rejected,
// since a broken selector should never make the whole request fail.
func ParsePages(selector string) PageSet {
	selector = strings.TrimSpace(selector)
	if selector == "" || strings.EqualFold(selector, "all") {
		return nil
	}

	set := make(PageSet)
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := splitRange(part); ok {
			if lo > hi {
				return nil
			}
			for p := lo; p <= hi; p++ {
				set[p] = struct{}{}
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		set[n] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

func splitRange(part string) (lo, hi int, ok bool) {
	idx := strings.Index(part, "-")
	if idx <= 0 || idx == len(part)-1 {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(strings.TrimSpace(part[:idx]))
	b, errB := strconv.Atoi(strings.TrimSpace(part[idx+1:]))
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return a, b, true
}
