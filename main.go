package main

import (
	"log"
	"net/http"

	"github.com/samanthauoviawe/chatbot-web-interface/chatapi"
	"github.com/samanthauoviawe/chatbot-web-interface/httpapi"
	"go.uber.org/zap"
)

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	logger, err := newLogger(config.Debug)
	if err != nil {
		log.Fatalln("Could not create logger:", err)
	}
	defer logger.Sync()

	client := chatapi.NewClient(config.Endpoint, config.Timeout, logger.Named("chatapi"))

	r := httpapi.NewRouter(&httpapi.Config{
		Sender:         client,
		AllowedOrigins: config.AllowedOrigins,
		Logger:         logger.Named("httpapi"),
	})

	logger.Info("Listening",
		zap.String("addr", config.ListenAddr),
		zap.String("prefix", config.Prefix),
		zap.String("endpoint", client.Endpoint()),
		zap.Strings("allowed_origins", config.AllowedOrigins),
	)
	if err := http.ListenAndServe(config.ListenAddr, httpapi.Mount(config.Prefix, r)); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
