package configs

import (
	"log"
	"os"
	"strconv"
	"sync"
)

// AppConfig holds the application configuration.
// It's populated once by LoadConfig.
var AppConfig Configuration
var once sync.Once

// Configuration defines the structure for application settings.
type Configuration struct {
	JWTSecret          string
	JWTIssuer          string
	JWTExpirationHours int
	ServerPort         string
	SQLitePath         string
}

const (
	defaultJWTSecret   = "campus"               // Default JWT secret, used if env var is not set.
	envJWTSecretKey    = "JWT_SECRET_KEY"       // Environment variable name for the JWT secret.
	defaultJWTIssuer   = "campus_management"    // 默认Token签发者
	envJWTIssuerKey    = "JWT_ISSUER"           // Token签发者环境变量名
	defaultJWTExpHours = 24                     // 默认Token有效期（小时）
	envJWTExpHoursKey  = "JWT_EXPIRATION_HOURS" // Token有效期环境变量名
	defaultServerPort  = "8080"                 // Default server port.
	envServerPortKey   = "SERVER_PORT"          // Environment variable name for the server port.
	defaultSQLitePath  = "data/campus.db"       // 默认SQLite数据库文件路径
	envSQLitePathKey   = "SQLITE_DB_PATH"       // 数据库路径环境变量名
)

// LoadConfig loads configuration from environment variables or defaults.
// It should be called once at application startup.
func LoadConfig() {
	once.Do(func() {
		jwtSecret := os.Getenv(envJWTSecretKey)
		if jwtSecret == "" {
			jwtSecret = defaultJWTSecret
			log.Printf("警告: %s 环境变量未设置。正在使用默认的JWT密钥。请在生产环境中设置此变量以保证安全。", envJWTSecretKey)
		}

		jwtIssuer := os.Getenv(envJWTIssuerKey)
		if jwtIssuer == "" {
			jwtIssuer = defaultJWTIssuer
		}

		jwtExpHours := defaultJWTExpHours
		if raw := os.Getenv(envJWTExpHoursKey); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				log.Printf("警告: %s 的值 %q 无效，使用默认值 %d 小时。", envJWTExpHoursKey, raw, defaultJWTExpHours)
			} else {
				jwtExpHours = parsed
			}
		}

		serverPort := os.Getenv(envServerPortKey)
		if serverPort == "" {
			serverPort = defaultServerPort
			log.Printf("信息: %s 环境变量未设置。正在使用默认端口 %s。", envServerPortKey, defaultServerPort)
		}

		sqlitePath := os.Getenv(envSQLitePathKey)
		if sqlitePath == "" {
			sqlitePath = defaultSQLitePath
			log.Printf("信息: %s 环境变量未设置。正在使用默认数据库路径 %s。", envSQLitePathKey, defaultSQLitePath)
		}

		AppConfig = Configuration{
			JWTSecret:          jwtSecret,
			JWTIssuer:          jwtIssuer,
			JWTExpirationHours: jwtExpHours,
			ServerPort:         serverPort,
			SQLitePath:         sqlitePath,
		}

		log.Println("应用配置已加载。")
	})
}
