package model

// DoctorCategory is a medical specialty (seeded, static).
type DoctorCategory struct {
	ID       int64  `db:"id"`
	Category string `db:"category"`
}

// Hospital is a clinic location (seeded, static).
type Hospital struct {
	ID      int64   `db:"id"`
	Name    string  `db:"name"`
	Address *string `db:"address"`
}

// Doctor belongs to exactly one category and one hospital.
type Doctor struct {
	ID              int64   `db:"id"`
	FirstName       string  `db:"first_name"`
	LastName        string  `db:"last_name"`
	Patronymic      *string `db:"patronymic"`
	ExperienceYears *int    `db:"experience_years"`
	CategoryID      int64   `db:"category_id"`
	HospitalID      int64   `db:"hospital_id"`
}

// FullName returns "First Last" for keyboards and messages.
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
