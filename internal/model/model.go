// Package model holds the records read from and written to the database.
//
// Struct fields carry `db` tags so repositories can collect rows by column name.
package model
