package users

import (
	"safar/internal/collection"
	"safar/internal/query"

	"github.com/jackc/pgx/v5"
)

var Table = &collection.Table[User]{
	Name:   "users",
	Alias:  "u",
	From:   "users u",
	Select: "u.id, u.name, u.email, COALESCE(u.phone, ''), u.role, u.is_active, u.created_at",
	Mapping: query.Mapping{
		Columns: map[string]string{
			"id":         "u.id",
			"name":       "u.name",
			"email":      "u.email",
			"phone":      "u.phone",
			"role":       "u.role",
			"is_active":  "u.is_active",
			"created_at": "u.created_at",
		},
	},
	Writable: map[string]bool{"is_active": true, "role": true},
	Scan: func(row pgx.Row) (User, error) {
		var u User
		err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt)
		return u, err
	},
	Insert: func(u User) ([]string, []any) {
		return []string{"name", "email", "phone", "role", "is_active"},
			[]any{u.Name, u.Email, u.Phone, u.Role, u.IsActive}
	},
}

// Relation builds the join used to search rows by a user reference column,
// e.g. Relation("l.owner_id").
func Relation(fk string) query.Relation {
	return query.Relation{
		From: "users ru",
		On:   "ru.id = " + fk,
		Columns: map[string]string{
			"name":  "ru.name",
			"email": "ru.email",
		},
	}
}
