package testutil

import (
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
)

// SeedReferenceData fills db with the canonical reference fixture used across tests.
func SeedReferenceData(db *dummydb.DB) {
	db.AddDepartments("Computer Science", "Mathematics", "Physics", "Electrical Engineering")
	db.AddSections("A", "B", "C")
	db.AddAccountEmails("taken@university.edu")
	db.AddRollNumbers("CS200")
}
