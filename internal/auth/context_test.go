package auth

import (
	"testing"

	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

func testCtx(t *testing.T) *fiber.Ctx {
	t.Helper()
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	t.Cleanup(func() { app.ReleaseCtx(c) })
	return c
}

func TestResolveInventoryID_InventoryAdminUsesOwnInventory(t *testing.T) {
	c := testCtx(t)
	invID := uint(3)
	c.Locals(CtxUserRoleKey, models.RoleInventoryAdmin)
	c.Locals(CtxInventoryIDKey, &invID)

	// Depo admini istekte başka depo belirtse bile kendi deposunda çalışır
	other := uint(9)
	got, err := ResolveInventoryID(c, &other)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if got != 3 {
		t.Errorf("inventory id = %d, beklenen 3", got)
	}
}

func TestResolveInventoryID_SuperAdminMustSpecify(t *testing.T) {
	c := testCtx(t)
	c.Locals(CtxUserRoleKey, models.RoleSuperAdmin)

	if _, err := ResolveInventoryID(c, nil); err == nil {
		t.Error("depo belirtmeyen super_admin reddedilmeli")
	}

	invID := uint(5)
	got, err := ResolveInventoryID(c, &invID)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if got != 5 {
		t.Errorf("inventory id = %d, beklenen 5", got)
	}
}

func TestResolveInventoryID_MissingRole(t *testing.T) {
	c := testCtx(t)
	invID := uint(5)
	if _, err := ResolveInventoryID(c, &invID); err == nil {
		t.Error("rolsüz istek reddedilmeli")
	}
}
