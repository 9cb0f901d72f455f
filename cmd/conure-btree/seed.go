package main

import (
	"errors"

	"github.com/go-faker/faker/v4"

	"github.com/conure-db/conure-btree/btree"
	"github.com/conure-db/conure-btree/db"
)

// seedDB inserts n generated entries. Generated keys that already exist are
// skipped, so added may be less than n.
func seedDB(database *db.DB, n int) (added int, err error) {
	for i := 0; i < n; i++ {
		key := faker.Word() + "-" + faker.Word()
		err := database.Insert(key, []byte(faker.Sentence()))
		if errors.Is(err, btree.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
