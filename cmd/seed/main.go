// Command seed drops the whole schema, recreates the base tables and loads
// the fixture users, vendors, categories and products.
//
//	seed <db-user> <db-password>
package main

import (
	"os"

	"cfresh_inventory/internal/seed"
)

func main() {
	os.Exit(seed.Run("seed", os.Args[1:], os.Stderr, seed.BaseStep))
}
