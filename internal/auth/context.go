package auth

import (
	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ResolveInventoryID: İşlemin hedef deposunu çözer. inventory_admin her zaman
// kendi deposunda çalışır (JWT'den), super_admin istekte belirtmek zorundadır.
func ResolveInventoryID(c *fiber.Ctx, requestedID *uint) (uint, error) {
	roleVal := c.Locals(CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
	}

	if role == models.RoleInventoryAdmin {
		invVal := c.Locals(CtxInventoryIDKey)
		invPtr, ok := invVal.(*uint)
		if !ok || invPtr == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Depo bilgisi bulunamadı")
		}
		return *invPtr, nil
	}

	// super_admin
	if requestedID == nil || *requestedID == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "inventory_id zorunlu")
	}
	return *requestedID, nil
}

// UserInfo: Audit log için kullanıcı kimliği ve adı.
func UserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.Name, nil
}
