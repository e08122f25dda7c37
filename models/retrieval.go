package models

import (
	"fmt"
	"math/rand"
	"strconv"
)

// PublicListCap bounds the public question listing when no limit is given.
const PublicListCap = 50

// RandomOrderKeys are the sort keys the public listing shuffles between.
var RandomOrderKeys = []string{"date_created", "category_id", "difficulty", "type"}

// RandomOrderClause picks one ascending and one descending sort key at random
// for each call, which gives the public listing a different ordering per
// request without a full shuffle.
func RandomOrderClause() string {
	asc := RandomOrderKeys[rand.Intn(len(RandomOrderKeys))]
	desc := RandomOrderKeys[rand.Intn(len(RandomOrderKeys))]
	return fmt.Sprintf("ORDER BY q.%s ASC, q.%s DESC", asc, desc)
}

// CapLimit resolves the row cap for the public listing: the caller's limit
// when it parses as a non-negative number, PublicListCap otherwise.
func CapLimit(raw string) int {
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return PublicListCap
}
