package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultDir Каталог, раздаваемый по умолчанию (относительно рабочего каталога).
const DefaultDir = "./nginx/site"

type Config struct {
	Host      string
	Port      int
	Dir       string
	LogLevel  string
	LogOutput string
}

// InitConfig Инициализация структуры, содержащей конфигурацию сервера, полученную из флагов или
// переменных окружения.
func InitConfig() (*Config, error) {
	return ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
}

// ParseConfig Разбор флагов из args и переопределение значениями окружения через lookupEnv.
// Переменные окружения имеют приоритет над флагами.
func ParseConfig(fs *flag.FlagSet, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	config := &Config{}

	fs.StringVar(&config.Host, "host", "127.0.0.1", "HTTP server host")
	fs.IntVar(&config.Port, "port", 8000, "HTTP server port")
	fs.StringVar(&config.Dir, "dir", DefaultDir, "Directory to serve")
	fs.StringVar(&config.LogLevel, "ll", "info", "Log level for logging (example: debug, info, warn, error)")
	fs.StringVar(&config.LogOutput, "lo", "stderr", "Log output: stdout, stderr or path to a log file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if value, ok := lookupEnv("HOST"); ok {
		config.Host = value
	}

	if value, ok := lookupEnv("PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("некорректное значение PORT %q: %w", value, err)
		}
		config.Port = port
	}

	if value, ok := lookupEnv("SERVE_DIR"); ok {
		config.Dir = value
	}

	if value, ok := lookupEnv("LOG_LEVEL"); ok {
		config.LogLevel = value
	}

	if value, ok := lookupEnv("LOG_OUTPUT"); ok {
		config.LogOutput = value
	}

	return config, nil
}

// Validate Проверяет порт, приводит Dir к абсолютному пути и убеждается, что это существующий каталог.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("некорректный порт %d", c.Port)
	}

	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return fmt.Errorf("ошибка получения абсолютного пути %s: %w", c.Dir, err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("каталог не найден: %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("каталог не найден: %s: %w", dir, errors.New("не каталог"))
	}

	c.Dir = dir

	return nil
}

// Address Адрес для net.Listen в виде host:port.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DisplayURL Адрес для вывода пользователю; 127.0.0.1 и 0.0.0.0 показываются как localhost.
func (c *Config) DisplayURL() string {
	host := c.Host
	if host == "127.0.0.1" || host == "0.0.0.0" {
		host = "localhost"
	}

	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Port)) + "/"
}
