package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"backend_fleet/models"
)

// SparePartLogService ведет историю изменений запчастей.
// Отслеживаются три поля: техника, тип запчасти и статус. Связи сравниваются
// по идентификаторам, статус — по коду; отображаемые названия используются
// только в тексте сообщения.
type SparePartLogService struct {
	DB *gorm.DB
}

// NewSparePartLogService создает новый экземпляр SparePartLogService
func NewSparePartLogService(db *gorm.DB) *SparePartLogService {
	return &SparePartLogService{DB: db}
}

// RecordCreate добавляет запись о создании запчасти.
// У запчасти должны быть загружены связи Vehicle и SparePartType.
func (ls *SparePartLogService) RecordCreate(tx *gorm.DB, sparePart *models.SparePart) error {
	message := fmt.Sprintf(
		"Создано: Техника – '%s', Тип запчасти – '%s', Статус – '%s'",
		renderVehicle(sparePart.Vehicle),
		renderSparePartType(sparePart.SparePartType),
		sparePart.StatusLabel(),
	)

	logEntry := models.SparePartLog{
		SparePartID: sparePart.ID,
		Message:     message,
	}
	if err := tx.Create(&logEntry).Error; err != nil {
		return fmt.Errorf("ошибка при создании записи истории: %w", err)
	}

	return nil
}

// RecordUpdate сравнивает состояние запчасти до и после обновления и
// добавляет одну запись с перечнем изменившихся полей. Если ни одно из
// отслеживаемых полей не изменилось, запись не создается.
// У обоих снимков должны быть загружены связи Vehicle и SparePartType.
func (ls *SparePartLogService) RecordUpdate(tx *gorm.DB, old, updated *models.SparePart) error {
	var changes []string

	if old.VehicleID != updated.VehicleID {
		changes = append(changes, fmt.Sprintf("поле vehicle: '%s' заменено на '%s'",
			renderVehicle(old.Vehicle), renderVehicle(updated.Vehicle)))
	}

	if old.SparePartTypeID != updated.SparePartTypeID {
		changes = append(changes, fmt.Sprintf("поле spare_part_type: '%s' заменено на '%s'",
			renderSparePartType(old.SparePartType), renderSparePartType(updated.SparePartType)))
	}

	if old.Status != updated.Status {
		changes = append(changes, fmt.Sprintf("поле status: '%s' заменено на '%s'",
			old.StatusLabel(), updated.StatusLabel()))
	}

	if len(changes) == 0 {
		return nil
	}

	logEntry := models.SparePartLog{
		SparePartID: updated.ID,
		Message:     "Обновлено: " + strings.Join(changes, ", "),
	}
	if err := tx.Create(&logEntry).Error; err != nil {
		return fmt.Errorf("ошибка при создании записи истории: %w", err)
	}

	return nil
}

func renderVehicle(vehicle *models.Vehicle) string {
	if vehicle == nil {
		return "-"
	}
	return vehicle.DisplayName()
}

func renderSparePartType(sparePartType *models.SparePartType) string {
	if sparePartType == nil {
		return "-"
	}
	return sparePartType.Name
}
