// Package table provides a small immutable, typed, row-oriented table.
//
// Every column has a Kind drawn from a closed set and every cell is a Value
// tagged with the same Kind. Operations that narrow a table (Take, Select)
// return new tables and never mutate their receiver, so a Table can be shared
// read-only between goroutines.
package table
