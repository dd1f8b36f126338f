package api

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DefaultPageSize размер страницы для всех списков
const DefaultPageSize = 10

// Pagination описывает параметры постраничного вывода
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// GetPagination извлекает параметры пагинации из запроса
func GetPagination(c *gin.Context) Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if limit < 1 {
		limit = DefaultPageSize
	}
	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// PaginationResponse формирует блок пагинации для ответа
func PaginationResponse(p Pagination, total int64) gin.H {
	return gin.H{
		"page":  p.Page,
		"limit": p.Limit,
		"total": total,
		"pages": (total + int64(p.Limit) - 1) / int64(p.Limit),
	}
}

// ParseID извлекает числовой идентификатор из параметра пути
func ParseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("некорректный идентификатор: %s", c.Param("id"))
	}
	return uint(id), nil
}

// SaveUploadedImage сохраняет загруженный файл в подкаталог хранилища
// под уникальным именем и возвращает относительный путь к файлу
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, uploadDir, subdir string) (string, error) {
	dir := filepath.Join(uploadDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("ошибка при создании каталога загрузок: %w", err)
	}

	fileName := uuid.New().String() + filepath.Ext(file.Filename)
	fullPath := filepath.Join(dir, fileName)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		return "", fmt.Errorf("ошибка при сохранении файла: %w", err)
	}

	return filepath.Join(subdir, fileName), nil
}
