// Package main запускает веб-версию отчета по студентам
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ultrahd-dev/student-roster/internal/config"
	"github.com/Ultrahd-dev/student-roster/internal/database"
	"github.com/Ultrahd-dev/student-roster/internal/web"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Подключаемся к базе данных
	store, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", err)
		}
	}()

	log.Printf("Успешное подключение к базе данных (%s)", store.Driver())

	handler, err := web.NewHandler(store, cfg.Report, time.Now)
	if err != nil {
		log.Fatalf("Ошибка загрузки шаблонов: %v", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Запускаем HTTP сервер в отдельной горутине
	go func() {
		log.Printf("Веб-сервер отчета запущен на порту %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка запуска веб-сервера: %v", err)
		}
	}()

	// Ожидаем сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Получен сигнал завершения, останавливаем сервер...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Ошибка остановки сервера: %v", err)
	}

	log.Println("Сервер остановлен")
}
