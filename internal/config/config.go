package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Sin archivo .env — se usan las variables de entorno del sistema")
	} else {
		log.Println("✅ Archivo .env cargado")
	}
}

// Getenv devuelve la variable de entorno o el valor por defecto.
func Getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
