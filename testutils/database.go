package testutils

import (
	"backend_fleet/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB создает и настраивает тестовую базу данных в памяти.
// Эта функция должна использоваться во всех тестах для обеспечения консистентности.
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Выполняем миграции в правильном порядке:
	// сначала родительские модели, затем зависимые
	err = db.AutoMigrate(
		// Техника
		&models.VehicleType{},
		&models.Vehicle{},
		&models.VehicleImage{},

		// Запчасти
		&models.SparePartType{},
		&models.SparePart{},
		&models.SparePartImage{},
		&models.SparePartLog{},

		// Каталог атрибутов
		&models.Attribute{},
		&models.AttributeValue{},

		// Отдельный REST ресурс
		&models.Item{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
