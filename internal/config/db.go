package config

// DB holds the document store configuration settings.
type DB struct {
	// URI is the mongodb connection string.
	URI string
	// Name is the database holding the users, roles, permissions and audits
	// collections.
	Name string
}
