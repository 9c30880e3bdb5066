package admin

import (
	"strings"

	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type InventoryResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

type CreateInventoryRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type UpdateInventoryRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

type CreateInventoryAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type InventoryAdminResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	InventoryID *uint  `json:"inventory_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ----------------------------------------
// DEPO CRUD
// ----------------------------------------

func CreateInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInventoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Depo adı boş olamaz")
		}

		inv := models.Inventory{
			Name:    body.Name,
			Address: body.Address,
		}

		if err := database.DB.Create(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(InventoryResponse{
			ID:        inv.ID,
			Name:      inv.Name,
			Address:   inv.Address,
			CreatedAt: inv.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func ListInventoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var inventories []models.Inventory
		if err := database.DB.Find(&inventories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depolar listelenemedi")
		}

		res := make([]InventoryResponse, 0, len(inventories))
		for _, inv := range inventories {
			res = append(res, InventoryResponse{
				ID:        inv.ID,
				Name:      inv.Name,
				Address:   inv.Address,
				CreatedAt: inv.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func GetInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var inv models.Inventory
		if err := database.DB.First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		return c.JSON(InventoryResponse{
			ID:        inv.ID,
			Name:      inv.Name,
			Address:   inv.Address,
			CreatedAt: inv.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func UpdateInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var inv models.Inventory
		if err := database.DB.First(&inv, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		var body UpdateInventoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Depo adı boş olamaz")
			}
			inv.Name = name
		}

		if body.Address != nil {
			inv.Address = *body.Address
		}

		if err := database.DB.Save(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo güncellenemedi")
		}

		return c.JSON(InventoryResponse{
			ID:        inv.ID,
			Name:      inv.Name,
			Address:   inv.Address,
			CreatedAt: inv.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func DeleteInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		// Stok barındıran depo silinemez
		var stockCount int64
		database.DB.Model(&models.InventoryStock{}).
			Where("inventory_id = ? AND total > 0", id).
			Count(&stockCount)
		if stockCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stok barındıran depo silinemez; önce stoğu transfer edin")
		}

		if err := database.DB.Delete(&models.Inventory{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ----------------------------------------
// DEPO ADMİNİ OLUŞTURMA
// ----------------------------------------

func CreateInventoryAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inventoryID := c.Params("id")

		// Depo kontrolü
		var inv models.Inventory
		if err := database.DB.First(&inv, "id = ?", inventoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		var body CreateInventoryAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve şifre zorunlu")
		}

		// Email kontrolü
		var exist models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu email zaten kayıtlı")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleInventoryAdmin,
			InventoryID:  &inv.ID,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo admini oluşturulamadı")
		}

		// NOT: Şifre sadece oluşturma sırasında bir kez döndürülür
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"role":         user.Role,
			"inventory_id": user.InventoryID,
			"password":     body.Password, // Sadece oluşturma sırasında (bir kez)
		})
	}
}

// GET /api/admin/inventories/:id/admins
func ListInventoryAdminsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inventoryID := c.Params("id")

		var users []models.User
		if err := database.DB.
			Where("inventory_id = ? AND role = ?", inventoryID, models.RoleInventoryAdmin).
			Order("created_at DESC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Adminler listelenemedi")
		}

		res := make([]InventoryAdminResponse, 0, len(users))
		for _, u := range users {
			res = append(res, InventoryAdminResponse{
				ID:          u.ID,
				Name:        u.Name,
				Email:       u.Email,
				Role:        string(u.Role),
				InventoryID: u.InventoryID,
				CreatedAt:   u.CreatedAt.Format("2006-01-02 15:04:05"),
				UpdatedAt:   u.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
