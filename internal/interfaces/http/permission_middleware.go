package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// capabilityChecker es el contrato mínimo que necesita el middleware para
// evaluar permisos. Lo implementa *usecase.PermissionUseCase; el uso de
// interfaz evita el import circular.
type capabilityChecker interface {
	HasCapability(ctx context.Context, userID, rawRole string, c entity.Capability) (bool, error)
}

// RequirePermission devuelve un middleware Fiber que verifica si el usuario del
// token tiene la capability dada. Debe usarse DESPUÉS de AuthMiddleware
// (necesita LocalUserID y LocalRole).
//
// Comportamiento:
//   - 403 Forbidden → capability denegada para el usuario.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Si no hay user_id en el contexto, responde 401 (el AuthMiddleware debería haberlo puesto).
//
// Los roles fuera del conjunto restringido (user/admin/manager) pasan siempre:
// el checker resuelve el bypass sin tocar la DB.
func RequirePermission(capability entity.Capability, checker capabilityChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		allowed, err := checker.HasCapability(c.Context(), userID, GetRole(c), capability)
		if err != nil {
			// Fallo de infraestructura: no tratarlo como denegación de permiso.
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_DENIED",
				Message: "no tiene el permiso '" + string(capability) + "'",
			})
		}

		return c.Next()
	}
}
