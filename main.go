package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/kdimitrova/IOU-Tracker/rest"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	fmt.Println("Starting IOU Tracker REST Service ...")

	a := rest.App{}
	a.Init(rest.Config{
		DBUser:     getenv("DB_USER", "root"),
		DBPassword: getenv("DB_PASSWORD", "1234"),
		DBName:     getenv("DB_NAME", "iou_tracker"),
		JWTSecret:  getenv("JWT_SECRET", "secret"),
	})
	if os.Getenv("SEED_DEMO") == "1" {
		a.AddData()
	}

	a.Run(getenv("LISTEN_ADDR", ":8080"))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
