package contextkeys

type contextKey string

// DBContextKey stores the request-scoped *gorm.DB.
const DBContextKey = contextKey("db")

// UserKey holds the authenticated *models.User on the gin context.
const UserKey = "user"
