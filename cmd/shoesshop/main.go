package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/armen4ik0/shoes-shop-app1/internal/config"
	"github.com/armen4ik0/shoes-shop-app1/internal/dbstorage"
	"github.com/armen4ik0/shoes-shop-app1/internal/handlers"
	"github.com/armen4ik0/shoes-shop-app1/internal/importer"
)

func main() {
	logger := log.New(os.Stdout, "SHOESSHOP:\t", log.Ldate|log.Ltime)

	// Чтение флагов и установка конфигурации
	conf, err := config.NewAppConf(config.GetAppFlags())
	if err != nil {
		logger.Fatal(err)
	}

	// Подключение к БД фатально при ошибке, без него работать нечем.
	storage, err := dbstorage.NewDB(conf.DatabaseDSN, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Print(err)
		}
	}()
	storage.InitDB()

	// Однократная загрузка справочников из таблиц, повторный запуск
	// ничего не перезаписывает.
	imp := importer.New(&storage, conf.DataDir, logger)
	imp.ImportAll(context.Background())

	// Публикация API
	app := handlers.NewAppHandler(*conf, &storage, logger)
	router := handlers.NewRouter(app)

	logger.Printf("запуск на %s", conf.AppAddress)
	logger.Fatal(http.ListenAndServe(conf.AppAddress, router))
}
