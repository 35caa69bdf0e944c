package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverXLSX     = "xlsx"
	DriverPostgres = "postgres"
)

type Config struct {
	Host     string
	Port     int
	LogLevel string
	Env      string
	Store    StoreConfig
	Receipt  ReceiptConfig
	Render   RenderConfig
	Business BusinessConfig
	DB       DBConfig
}

// StoreConfig selects where orders and prices live
type StoreConfig struct {
	Driver     string
	OrdersFile string
	PricesFile string
}

// ReceiptConfig holds the receipt output folder and optional image assets
type ReceiptConfig struct {
	Dir          string
	LogoPath     string
	WhatsAppIcon string
	EmailIcon    string
	FontPath     string
}

// RenderConfig paces the receipt and chart endpoints of the HTTP API
type RenderConfig struct {
	Burst     int
	PerSecond float64
}

// BusinessConfig is printed on receipts and the dashboard
type BusinessConfig struct {
	Name     string
	Product  string
	WhatsApp string
	Email    string
	Currency string
}

// DBConfig holds the database configuration
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// getEnv retrieves the value of an environment variable or returns a default value if not set.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(strings.TrimSpace(raw))

	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := getEnv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)

	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return v, nil
}

// Load reads the configuration from environment variables and returns a Config struct.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getEnvInt("PORT", 8080)

	if err != nil {
		return nil, err
	}

	dbPort, err := getEnvInt("DB_PORT", 5432)

	if err != nil {
		return nil, err
	}

	renderBurst, err := getEnvInt("RENDER_BURST", 5)

	if err != nil {
		return nil, err
	}

	renderRate, err := getEnvFloat("RENDER_RATE", 1)

	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:     getEnv("HOST", "127.0.0.1"),
		Port:     port,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Env:      getEnv("APP_ENV", "development"),
		Store: StoreConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", DriverXLSX)),
			OrdersFile: getEnv("ORDERS_FILE", "watalappam_orders.xlsx"),
			PricesFile: getEnv("PRICES_FILE", "prices.json"),
		},
		Receipt: ReceiptConfig{
			Dir:          getEnv("RECEIPT_DIR", "receipts"),
			LogoPath:     getEnv("LOGO_PATH", "logo.jpg"),
			WhatsAppIcon: getEnv("WHATSAPP_ICON_PATH", "whatsapp_logo.png"),
			EmailIcon:    getEnv("EMAIL_ICON_PATH", "email_logo.png"),
			FontPath:     getEnv("RECEIPT_FONT_PATH", ""),
		},
		Render: RenderConfig{
			Burst:     renderBurst,
			PerSecond: renderRate,
		},
		Business: BusinessConfig{
			Name:     getEnv("BUSINESS_NAME", "SMORE DESSERT BAR"),
			Product:  getEnv("PRODUCT_NAME", "Watalappam"),
			WhatsApp: getEnv("BUSINESS_WHATSAPP", "0705081870"),
			Email:    getEnv("BUSINESS_EMAIL", "dessertsmore522@gmail.com"),
			Currency: getEnv("CURRENCY", "Rs"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "dessert_orders"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	switch c.Store.Driver {
	case DriverXLSX:
		if c.Store.OrdersFile == "" || c.Store.PricesFile == "" {
			return fmt.Errorf("ORDERS_FILE and PRICES_FILE are required for the %s store", DriverXLSX)
		}
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			return fmt.Errorf("database config is incomplete")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Receipt.Dir == "" {
		return fmt.Errorf("RECEIPT_DIR is required")
	}

	if c.Render.Burst < 1 || c.Render.PerSecond <= 0 {
		return fmt.Errorf("RENDER_BURST must be at least 1 and RENDER_RATE positive")
	}

	return nil
}

// Address returns the listen address of the HTTP server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetDBConnString returns the database connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}
