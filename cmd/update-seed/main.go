// Command update-seed adds the vendor detail columns and replaces the
// category list with Meat, Produce and Grocery.
//
//	update-seed <db-user> <db-password>
package main

import (
	"os"

	"cfresh_inventory/internal/seed"
)

func main() {
	os.Exit(seed.Run("update-seed", os.Args[1:], os.Stderr, seed.VendorDetailsStep))
}
