package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"linkup/internal/common"
	"linkup/internal/config"
	"linkup/internal/di"
	"linkup/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cfg := config.Load("config/config.yaml")
	logger.Init(cfg.Logging)
	defer logger.Sync()

	app, err := di.InitializeApplication(cfg)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer app.NotifService.Shutdown()

	router := mux.NewRouter()
	router.Use(common.AuthMiddleware)

	router.HandleFunc("/health", health).Methods("GET")

	router.HandleFunc("/auth/register", app.UserHandler.Register).Methods("POST")
	router.HandleFunc("/auth/login", app.UserHandler.Login).Methods("POST")
	router.HandleFunc("/auth/logout", app.UserHandler.Logout).Methods("POST")
	router.HandleFunc("/me", app.UserHandler.Me).Methods("GET")
	router.HandleFunc("/me", app.UserHandler.UpdateMe).Methods("PUT")

	router.HandleFunc("/friends", app.FriendHandler.List).Methods("GET")
	router.HandleFunc("/friends/requests", app.FriendHandler.SendRequest).Methods("POST")
	router.HandleFunc("/friends/requests/{requesterID}/accept", app.FriendHandler.AcceptRequest).Methods("POST")
	router.HandleFunc("/friends/requests/{requesterID}", app.FriendHandler.DeclineRequest).Methods("DELETE")
	router.HandleFunc("/friends/{friendID}", app.FriendHandler.RemoveFriend).Methods("DELETE")
	router.Handle("/friends/stream", app.StreamHandler).Methods("GET")
	router.HandleFunc("/users/search", app.FriendHandler.Search).Methods("GET")

	router.HandleFunc("/notifications", app.NotifHandler.List).Methods("GET")
	router.HandleFunc("/notifications/unread-count", app.NotifHandler.UnreadCount).Methods("GET")
	router.HandleFunc("/notifications/{id}/read", app.NotifHandler.MarkRead).Methods("POST")

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("friend-svc listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := app.Mongo.Close(ctx); err != nil {
		logger.Error("mongo disconnect failed", zap.Error(err))
	}
}

func health(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
