// Package migrations embeds the versioned schema applied by the server
// and the seed commands.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

const (
	// BaseVersion creates users, categories, vendors and products.
	BaseVersion uint = 1
	// VendorDetailsVersion adds address, category, phone and salesman to vendors.
	VendorDetailsVersion uint = 2
)
