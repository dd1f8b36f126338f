package main

import (
	"log"

	"backend_fleet/api"
	"backend_fleet/config"
	"backend_fleet/database"
	"backend_fleet/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// initDB инициализирует подключение к базе данных
func initDB() {
	log.Println("🔧 Инициализация базы данных...")

	// Создаем базу данных, если она не существует
	if err := database.CreateDatabaseIfNotExists(); err != nil {
		log.Fatal("❌ Ошибка при создании базы данных:", err)
	}

	// Подключаемся к базе данных
	if err := database.ConnectDatabase(); err != nil {
		log.Fatal("❌ Ошибка подключения к базе данных:", err)
	}

	log.Println("✅ База данных успешно инициализирована")
}

func main() {
	// Загружаем переменные окружения из .env файла
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Файл .env не найден, используются системные переменные окружения")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("❌ Ошибка загрузки конфигурации:", err)
	}

	// Инициализируем базу данных
	initDB()

	// Redis нужен только для rate limiting; без него работаем дальше
	if err := database.InitRedis(); err != nil {
		log.Println("⚠️  Redis недоступен, ограничение частоты запросов отключено:", err)
	}

	// Настраиваем Gin router
	r := gin.Default()
	r.Use(cors.Default()) // Для избежания CORS-ошибок
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Requests: cfg.Security.RateLimitRequests,
		Window:   cfg.Security.RateLimitWindow,
	}))

	// Базовые роуты
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "success",
			"message":  "pong",
			"database": "connected",
		})
	})

	db := database.GetDB()
	vehicleTypeAPI := api.NewVehicleTypeAPI(db)
	vehicleAPI := api.NewVehicleAPI(db, cfg.Storage.UploadDir)
	sparePartTypeAPI := api.NewSparePartTypeAPI(db, cfg.Storage.UploadDir)
	sparePartAPI := api.NewSparePartAPI(db)
	attributeAPI := api.NewAttributeAPI(db)
	itemAPI := api.NewItemAPI(db)
	exportAPI := api.NewExportAPI(db, cfg.Storage.ExportDir)

	// API роуты
	apiGroup := r.Group("/api")
	{
		// Отдельный REST ресурс
		v1 := apiGroup.Group("/v1")
		{
			v1.GET("/items", itemAPI.GetItems)
			v1.POST("/items", itemAPI.CreateItem)
		}

		// Типы техники
		apiGroup.GET("/vehicle-types", vehicleTypeAPI.GetVehicleTypes)
		apiGroup.POST("/vehicle-types", vehicleTypeAPI.CreateVehicleType)
		apiGroup.GET("/vehicle-types/:id", vehicleTypeAPI.GetVehicleType)
		apiGroup.PUT("/vehicle-types/:id", vehicleTypeAPI.UpdateVehicleType)
		apiGroup.POST("/vehicle-types/:id/delete", vehicleTypeAPI.DeleteVehicleType)

		// Техника
		apiGroup.GET("/vehicles", vehicleAPI.GetVehicles)
		apiGroup.POST("/vehicles", vehicleAPI.CreateVehicle)
		apiGroup.GET("/vehicles/export", exportAPI.ExportVehicles)
		apiGroup.GET("/vehicles/:id", vehicleAPI.GetVehicle)
		apiGroup.PUT("/vehicles/:id", vehicleAPI.UpdateVehicle)
		apiGroup.POST("/vehicles/:id/delete", vehicleAPI.DeleteVehicle)
		apiGroup.POST("/vehicles/:id/images", vehicleAPI.UploadVehicleImage)
		apiGroup.POST("/vehicle-images/:id/delete", vehicleAPI.DeleteVehicleImage)

		// Типы запчастей
		apiGroup.GET("/spare-part-types", sparePartTypeAPI.GetSparePartTypes)
		apiGroup.POST("/spare-part-types", sparePartTypeAPI.CreateSparePartType)
		apiGroup.GET("/spare-part-types/:id", sparePartTypeAPI.GetSparePartType)
		apiGroup.PUT("/spare-part-types/:id", sparePartTypeAPI.UpdateSparePartType)
		apiGroup.POST("/spare-part-types/:id/delete", sparePartTypeAPI.DeleteSparePartType)
		apiGroup.POST("/spare-part-types/:id/images", sparePartTypeAPI.UploadSparePartImage)
		apiGroup.POST("/spare-part-images/:id/delete", sparePartTypeAPI.DeleteSparePartImage)

		// Запчасти
		apiGroup.GET("/spare-parts", sparePartAPI.GetSpareParts)
		apiGroup.POST("/spare-parts", sparePartAPI.CreateSparePart)
		apiGroup.GET("/spare-parts/export", exportAPI.ExportSpareParts)
		apiGroup.GET("/spare-parts/:id", sparePartAPI.GetSparePart)
		apiGroup.PUT("/spare-parts/:id", sparePartAPI.UpdateSparePart)
		apiGroup.POST("/spare-parts/:id/delete", sparePartAPI.DeleteSparePart)

		// Каталог атрибутов
		apiGroup.GET("/attributes", attributeAPI.GetAttributes)
		apiGroup.POST("/attributes", attributeAPI.CreateAttribute)
		apiGroup.GET("/attributes/:id", attributeAPI.GetAttribute)
		apiGroup.PUT("/attributes/:id", attributeAPI.UpdateAttribute)
		apiGroup.POST("/attributes/:id/delete", attributeAPI.DeleteAttribute)
	}

	log.Printf("🚀 Сервер запущен на порту %s", cfg.App.Port)
	r.Run(cfg.App.Host + ":" + cfg.App.Port)
}
