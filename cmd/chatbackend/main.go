package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samanthauoviawe/chatbot-web-interface/chatbot"
	"github.com/samanthauoviawe/chatbot-web-interface/httpapi"
	"go.uber.org/zap"
)

//Config represents options given in the environment
type Config struct {
	ListenAddr string `default:":8000"`

	Model      string `default:"echo"` //"echo" or a model name served by AIEndpoint
	AIEndpoint string //OpenAI-compatible base URL; empty uses the OpenAI API
	APIKey     string
	MaxTokens  int `default:"100"`

	AllowedOrigins []string `default:"http://localhost:3000"`
	Debug          bool
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	config := &Config{}
	if err := envconfig.Process("CHATBACKEND", config); err != nil {
		log.Fatalln("Error reading configuration from environment:", err)
	}

	var (
		logger *zap.Logger
		err    error
	)
	if config.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalln("Could not create logger:", err)
	}
	defer logger.Sync()

	var model chatbot.Model = chatbot.EchoModel{}
	if config.Model != "echo" {
		if config.AIEndpoint == "" && config.APIKey == "" {
			logger.Fatal("CHATBACKEND_APIKEY must be configured to use the OpenAI API")
		}
		model = chatbot.NewAIClient(config.AIEndpoint, config.APIKey, config.Model, config.MaxTokens)
	}

	h := chatbot.NewHandler(model, logger.Named("chatbot"))
	r := httpapi.LogMiddleware(chatbot.NewRouter(h, config.AllowedOrigins), logger.Named("http"))

	logger.Info("Listening",
		zap.String("addr", config.ListenAddr),
		zap.String("model", config.Model),
		zap.String("ai_endpoint", config.AIEndpoint),
	)
	if err := http.ListenAndServe(config.ListenAddr, r); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
