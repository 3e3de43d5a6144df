package user

// Record is one normalized row extracted from an import file: a flat mapping
// from field name to raw string value. Missing fields read as "".
type Record map[string]string

// Field names produced by the row extractor for both CSV and XML sources.
const (
	FieldLogin     = "user_login"
	FieldEmail     = "user_email"
	FieldPassword  = "user_pass"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldRole      = "role"
)
