// Package models defines the persisted entities of the course-schedule bot.
package models

// Task status values as stored in the tugas table.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Course is a single row of the mata_kuliah table.
type Course struct {
	ID      int64  `db:"id"`
	Nama    string `db:"nama"`
	Hari    string `db:"hari"`
	Jam     string `db:"jam"`
	Ruangan string `db:"ruangan"`
}

// Task is a single row of the tugas table. Deadline is free text as
// entered by the user, e.g. "Besok 23:59" or "30/10/2025".
type Task struct {
	ID         int64  `db:"id"`
	MatkulNama string `db:"matkul_nama"`
	Deskripsi  string `db:"deskripsi"`
	Deadline   string `db:"deadline"`
	Status     string `db:"status"`
}
