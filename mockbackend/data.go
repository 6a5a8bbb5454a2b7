package mockbackend

import (
	"golang.org/x/crypto/bcrypt"

	"iusearch/model"
)

type seedUser struct {
	passwordHash []byte
	info         model.User
}

func (u seedUser) checkPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) == nil
}

func seedUsers() map[string]seedUser {
	return map[string]seedUser{
		"investigator": {
			passwordHash: mustHash("fielddesk"),
			info: model.User{
				"id":   float64(7),
				"name": "A. Marlowe",
				"role": "investigator",
			},
		},
		"analyst": {
			passwordHash: mustHash("deskfield"),
			info: model.User{
				"id":   float64(12),
				"name": "R. Calloway",
				"role": "analyst",
			},
		},
	}
}

// mustHash uses the minimum cost; this is fixture data, not a real account.
func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}

// Seeded records are deliberately uneven in shape: field sets vary per
// record, just like the real backend's tables.
func seedPeople() []*model.Record {
	contact := model.NewRecord()
	contact.Set("id", float64(3))
	contact.Set("table_name", "contacts")
	contact.Set("name", "John Reyes")
	contact.Set("phone", "555-0142")
	contact.Set("city", "Riverton")

	subject := model.NewRecord()
	subject.Set("_id", "p-88")
	subject.Set("table_name", "subjects")
	subject.Set("full_name", "Mira Johansen")
	subject.Set("phone_mobile", "555-7733")
	subject.Set("known_alias", nil)
	subject.Set("flagged", true)

	witness := model.NewRecord()
	witness.Set("id", float64(21))
	witness.Set("table_name", "witnesses")
	witness.Set("name", "Dana Okafor")
	witness.Set("statement_count", float64(2))

	return []*model.Record{contact, subject, witness}
}

func seedVehicles() []*model.Record {
	sedan := model.NewRecord()
	sedan.Set("id", float64(101))
	sedan.Set("table_name", "vehicles")
	sedan.Set("plate", "KJD-4821")
	sedan.Set("make", "Toyota")
	sedan.Set("model", "Camry")
	sedan.Set("color", "silver")

	van := model.NewRecord()
	van.Set("id", float64(102))
	van.Set("table_name", "impound")
	van.Set("plate", "RXE-0195")
	van.Set("make", "Ford")
	van.Set("model", "Transit")
	van.Set("registered_owner", nil)

	return []*model.Record{sedan, van}
}
