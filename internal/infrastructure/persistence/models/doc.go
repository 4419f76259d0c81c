// Package models contains GORM persistence models for the store tables.
//
// Domain types carry no ORM tags; each model here owns its table mapping and
// converts to and from its domain counterpart with ToDomain/FromDomain.
//
//   - catalog.go: catalog items and packages with their components
//   - inventory.go: per-item stock records
//   - store.go: store orders and order lines
//   - finance.go: fees, fee payments, ledger categories, periods and transactions
//   - student.go: the read-only student directory
package models
