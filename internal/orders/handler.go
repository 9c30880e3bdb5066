package orders

import (
	"fmt"

	"atolye-backend/internal/audit"
	"atolye-backend/internal/auth"
	"atolye-backend/internal/database"
	"atolye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OrderResponse struct {
	ID         uint   `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	StageIndex int    `json:"stage_index"`
}

type ContainerResponse struct {
	ID              uint            `json:"id"`
	Code            string          `json:"code"`
	ClientName      string          `json:"client_name"`
	ClientPhone     string          `json:"client_phone,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	DeliveryDate    string          `json:"delivery_date,omitempty"`
	PaymentNote     string          `json:"payment_note,omitempty"`
	Progress        int             `json:"progress"`
	OrderCount      int             `json:"order_count"`
	Orders          []OrderResponse `json:"orders,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

type StageCountResponse struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

func toContainerResponse(ct *models.OrderContainer, withOrders bool) ContainerResponse {
	statuses := make([]string, 0, len(ct.Orders))
	for _, o := range ct.Orders {
		statuses = append(statuses, o.Status)
	}

	resp := ContainerResponse{
		ID:              ct.ID,
		Code:            ct.Code,
		ClientName:      ct.ClientName,
		ClientPhone:     ct.ClientPhone,
		DeliveryAddress: ct.DeliveryAddress,
		PaymentNote:     ct.PaymentNote,
		Progress:        ContainerProgress(statuses),
		OrderCount:      len(ct.Orders),
		CreatedAt:       ct.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if ct.DeliveryDate != nil {
		resp.DeliveryDate = ct.DeliveryDate.Format("2006-01-02")
	}
	if withOrders {
		for _, o := range ct.Orders {
			resp.Orders = append(resp.Orders, OrderResponse{
				ID:         o.ID,
				Code:       o.Code,
				Name:       o.Name,
				Status:     o.Status,
				StageIndex: StageIndex(o.Status),
			})
		}
	}
	return resp
}

// GET /api/order-containers
func ListContainersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var containers []models.OrderContainer
		if err := database.DB.Preload("Orders").
			Order("created_at DESC").Find(&containers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		res := make([]ContainerResponse, 0, len(containers))
		for i := range containers {
			res = append(res, toContainerResponse(&containers[i], false))
		}
		return c.JSON(res)
	}
}

// GET /api/order-containers/:id
// Sipariş detayı + aşama bazlı timeline
func GetContainerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var container models.OrderContainer
		if err := database.DB.Preload("Orders").
			First(&container, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		statuses := make([]string, 0, len(container.Orders))
		for _, o := range container.Orders {
			statuses = append(statuses, o.Status)
		}

		counts := StageCounts(statuses)
		timeline := make([]StageCountResponse, 0, len(Stages))
		for i, stage := range Stages {
			timeline = append(timeline, StageCountResponse{Stage: stage, Count: counts[i]})
		}

		return c.JSON(fiber.Map{
			"container": toContainerResponse(&container, true),
			"timeline":  timeline,
		})
	}
}

type CreateContainerRequest struct {
	Code            string `json:"code"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
	DeliveryAddress string `json:"delivery_address"`
	PaymentNote     string `json:"payment_note"`
	Orders          []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"orders"`
}

// POST /api/order-containers
// Yeni sipariş konteyneri. İçindeki tüm iş emirleri akışın ilk aşamasında başlar.
func CreateContainerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateContainerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Code == "" || body.ClientName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "code ve client_name zorunlu")
		}
		if len(body.Orders) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir iş emri eklenmelidir")
		}

		container := models.OrderContainer{
			Code:            body.Code,
			ClientName:      body.ClientName,
			ClientPhone:     body.ClientPhone,
			DeliveryAddress: body.DeliveryAddress,
			PaymentNote:     body.PaymentNote,
		}
		for _, o := range body.Orders {
			if o.Code == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Her iş emri için code zorunlu")
			}
			container.Orders = append(container.Orders, models.Order{
				Code:   o.Code,
				Name:   o.Name,
				Status: Stages[0],
			})
		}

		if err := database.DB.Create(&container).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş oluşturulamadı (kod zaten kayıtlı olabilir)")
		}

		userID, userName, err := auth.UserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "order_container",
				EntityID:    container.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Sipariş oluşturuldu: %s (%d iş emri)", container.Code, len(container.Orders)),
				Before:      nil,
				After:       container,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toContainerResponse(&container, true))
	}
}

// POST /api/orders/:code/advance
// İş emrini akışta bir sonraki aşamaya taşır. Aşama atlanamaz ve geri alınamaz;
// son aşamadaki iş emri ilerletilemez.
func AdvanceOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")

		var order models.Order
		if err := database.DB.First(&order, "code = ?", code).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İş emri bulunamadı")
		}

		idx := StageIndex(order.Status)
		if idx >= len(Stages)-1 {
			return fiber.NewError(fiber.StatusBadRequest, "İş emri zaten son aşamada")
		}

		oldStatus := order.Status
		order.Status = Stages[idx+1]
		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aşama güncellenemedi")
		}

		userID, userName, err := auth.UserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Aşama ilerletildi: %s, %s -> %s", order.Code, oldStatus, order.Status),
				Before:      fiber.Map{"status": oldStatus},
				After:       fiber.Map{"status": order.Status},
			})
		}

		return c.JSON(OrderResponse{
			ID:         order.ID,
			Code:       order.Code,
			Name:       order.Name,
			Status:     order.Status,
			StageIndex: StageIndex(order.Status),
		})
	}
}

