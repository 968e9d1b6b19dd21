package model

import "time"

// DbRace is a race stored in the database.
// Track points and laps are stored in separate tables.
type DbRace struct {
	ID      int       `json:"id"`
	Key     string    `json:"key"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
}
