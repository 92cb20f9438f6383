package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

//Config represents options given in the environment
type Config struct {
	ListenAddr string        `default:":3000"` //addr format used for net.Listen
	Endpoint   string        `default:"http://localhost:8000/chat"`
	Timeout    time.Duration //per request; 0 means no timeout

	AllowedOrigins []string `default:"http://localhost:3000"`
	Prefix         string   //url prefix to mount the widget to without trailing slash

	Debug bool
}

var config = &Config{}

func checkEmpty(val, name string) {
	if val == "" {
		log.Fatalf("CHATWIDGET_%s must be configured\n", name)
	}
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	err := envconfig.Process("CHATWIDGET", config)
	if err != nil {
		log.Fatalln("Error reading configuration from environment:", err)
	}

	checkEmpty(config.ListenAddr, "LISTENADDR")
	checkEmpty(config.Endpoint, "ENDPOINT")

	if config.Timeout < 0 {
		log.Fatalln("CHATWIDGET_TIMEOUT must not be negative")
	}
}
