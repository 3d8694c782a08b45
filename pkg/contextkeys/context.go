package contextkeys

// Custom key type so the db handle cannot collide with other context values.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB is stored.
const DBContextKey = contextKey("db")
