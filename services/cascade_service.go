package services

import (
	"fmt"

	"gorm.io/gorm"

	"backend_fleet/models"
)

// CascadeService выполняет каскадное мягкое удаление сущностей.
// Родитель и все зависимые записи помечаются удаленными в одной транзакции:
// частично примененный каскад никогда не фиксируется.
type CascadeService struct {
	DB *gorm.DB
}

// NewCascadeService создает новый экземпляр CascadeService
func NewCascadeService(db *gorm.DB) *CascadeService {
	return &CascadeService{DB: db}
}

// SoftDeleteVehicleType помечает удаленным тип техники, всю технику этого
// типа и фотографии этой техники
func (cs *CascadeService) SoftDeleteVehicleType(id uint) error {
	return cs.DB.Transaction(func(tx *gorm.DB) error {
		var vehicleType models.VehicleType
		if err := tx.First(&vehicleType, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&vehicleType).Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при удалении типа техники: %w", err)
		}

		// Собираем ID техники этого типа, чтобы каскад дошел до фотографий
		var vehicleIDs []uint
		if err := tx.Model(&models.Vehicle{}).Where("type_id = ?", id).
			Pluck("id", &vehicleIDs).Error; err != nil {
			return fmt.Errorf("ошибка при поиске техники типа: %w", err)
		}

		if len(vehicleIDs) == 0 {
			return nil
		}

		if err := tx.Model(&models.Vehicle{}).Where("id IN ?", vehicleIDs).
			Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при каскадном удалении техники: %w", err)
		}

		if err := tx.Model(&models.VehicleImage{}).Where("vehicle_id IN ?", vehicleIDs).
			Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при каскадном удалении фотографий техники: %w", err)
		}

		return nil
	})
}

// SoftDeleteVehicle помечает удаленной технику и ее фотографии.
// Запчасти, установленные на технике, НЕ затрагиваются: они продолжают
// жить своим жизненным циклом независимо от судьбы техники.
func (cs *CascadeService) SoftDeleteVehicle(id uint) error {
	return cs.DB.Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&vehicle).Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при удалении техники: %w", err)
		}

		if err := tx.Model(&models.VehicleImage{}).Where("vehicle_id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при каскадном удалении фотографий: %w", err)
		}

		return nil
	})
}

// SoftDeleteSparePartType помечает удаленным тип запчасти, все запчасти
// этого типа вместе с их историей изменений, а также фотографии и значения
// атрибутов типа
func (cs *CascadeService) SoftDeleteSparePartType(id uint) error {
	return cs.DB.Transaction(func(tx *gorm.DB) error {
		var sparePartType models.SparePartType
		if err := tx.First(&sparePartType, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&sparePartType).Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при удалении типа запчасти: %w", err)
		}

		var sparePartIDs []uint
		if err := tx.Model(&models.SparePart{}).Where("spare_part_type_id = ?", id).
			Pluck("id", &sparePartIDs).Error; err != nil {
			return fmt.Errorf("ошибка при поиске запчастей типа: %w", err)
		}

		if len(sparePartIDs) > 0 {
			if err := tx.Model(&models.SparePart{}).Where("id IN ?", sparePartIDs).
				Update("is_deleted", true).Error; err != nil {
				return fmt.Errorf("ошибка при каскадном удалении запчастей: %w", err)
			}

			if err := tx.Model(&models.SparePartLog{}).Where("spare_part_id IN ?", sparePartIDs).
				Update("is_deleted", true).Error; err != nil {
				return fmt.Errorf("ошибка при каскадном удалении истории изменений: %w", err)
			}
		}

		if err := tx.Model(&models.SparePartImage{}).Where("spare_part_type_id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при каскадном удалении фотографий: %w", err)
		}

		if err := tx.Model(&models.AttributeValue{}).Where("spare_part_type_id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при каскадном удалении значений атрибутов: %w", err)
		}

		return nil
	})
}

// SoftDeleteSparePart помечает удаленной запчасть и ее историю изменений
func (cs *CascadeService) SoftDeleteSparePart(id uint) error {
	return cs.DB.Transaction(func(tx *gorm.DB) error {
		var sparePart models.SparePart
		if err := tx.First(&sparePart, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&sparePart).Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при удалении запчасти: %w", err)
		}

		if err := tx.Model(&models.SparePartLog{}).Where("spare_part_id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при каскадном удалении истории изменений: %w", err)
		}

		return nil
	})
}

// SoftDeleteAttribute помечает удаленным атрибут и все его значения
func (cs *CascadeService) SoftDeleteAttribute(id uint) error {
	return cs.DB.Transaction(func(tx *gorm.DB) error {
		var attribute models.Attribute
		if err := tx.First(&attribute, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&attribute).Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при удалении атрибута: %w", err)
		}

		if err := tx.Model(&models.AttributeValue{}).Where("attribute_id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("ошибка при каскадном удалении значений атрибута: %w", err)
		}

		return nil
	})
}
