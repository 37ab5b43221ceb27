// cmd/migrator/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Ultrahd-dev/student-roster/internal/config"
	"github.com/Ultrahd-dev/student-roster/internal/database"
)

func main() {
	// Определяем флаги командной строки
	configPath := flag.String("config", "./configs/config.yaml", "путь к файлу конфигурации")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return
	}

	command := args[0]

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
	defer store.Close()

	log.Println("Успешное подключение к базе данных")

	switch command {
	case "up":
		if err := store.MigrateUp(); err != nil {
			log.Fatalf("Ошибка применения миграций: %v", err)
		}
		fmt.Println("Миграции успешно применены")
	case "down":
		if err := store.MigrateDown(); err != nil {
			log.Fatalf("Ошибка отката миграций: %v", err)
		}
		fmt.Println("Миграции успешно откачены")
	case "status":
		if err := store.MigrationStatus(); err != nil {
			log.Fatalf("Ошибка получения статуса миграций: %v", err)
		}
	default:
		fmt.Printf("Неизвестная команда: %s\n", command)
		flag.Usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Использование: migrator [-config путь] [команда]")
	fmt.Println("Доступные команды:")
	fmt.Println("  up     - Применить все непримененные миграции")
	fmt.Println("  down   - Откатить последнюю миграцию")
	fmt.Println("  status - Показать статус миграций")
	fmt.Println("")
	fmt.Println("Примеры:")
	fmt.Println("  migrator up")
	fmt.Println("  migrator -config configs/config.yaml status")
}
