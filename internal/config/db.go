package config

// Database engines supported by gorm.
const (
	DBEngineSQLite   = "sqlite"
	DBEngineMySQL    = "mysql"
	DBEnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string // sqlite, mysql or postgres
	Path     string // sqlite database file
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
