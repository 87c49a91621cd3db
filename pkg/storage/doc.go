// Package storage provides persistent storage for the PantryBot
// services. Records are JSON documents under string keys; backends
// are an embedded BadgerDB store, a GORM-backed Postgres store and an
// in-memory store for demos and tests.
package storage
