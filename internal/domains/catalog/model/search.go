package model

import "strings"

// Search filters books by a free-text term and an availability predicate,
// preserving catalog order.
//
// The term matches case-insensitively against title, author and shelf
// location, and as a plain substring against the ISBN. An empty term
// matches every book. An availability value outside all/available/
// unavailable matches nothing.
func Search(books []Book, term string, availability Availability) []Book {
	needle := strings.ToLower(term)

	result := make([]Book, 0, len(books))
	for _, b := range books {
		if matchesTerm(b, term, needle) && matchesAvailability(b, availability) {
			result = append(result, b)
		}
	}
	return result
}

func matchesTerm(b Book, raw, lowered string) bool {
	return strings.Contains(strings.ToLower(b.Title), lowered) ||
		strings.Contains(strings.ToLower(b.Author), lowered) ||
		strings.Contains(b.ISBN, raw) ||
		strings.Contains(strings.ToLower(b.ShelfLocation), lowered)
}

func matchesAvailability(b Book, availability Availability) bool {
	switch availability {
	case AvailabilityAll:
		return true
	case AvailabilityAvailable:
		return b.AvailableCopies > 0
	case AvailabilityUnavailable:
		return b.AvailableCopies == 0
	}
	return false
}
