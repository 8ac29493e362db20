// Package lifecycle contiene las reglas puras del ciclo de vida de una orden de servicio:
// grafo de estados, permisos por rol, prioridad, SLA, numeración y vencimiento.
// No depende de persistencia; los casos de uso lo invocan antes de mutar.
package lifecycle

import (
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// transitions tabla de adyacencia: estado actual -> estados siguientes permitidos.
var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.StatusAberta:              {entity.StatusDespachada, entity.StatusCancelada},
	entity.StatusDespachada:          {entity.StatusAceita, entity.StatusAberta, entity.StatusCancelada},
	entity.StatusAceita:              {entity.StatusEmExecucao, entity.StatusCancelada},
	entity.StatusEmExecucao:          {entity.StatusAguardandoValidacao, entity.StatusCancelada},
	entity.StatusAguardandoValidacao: {entity.StatusAprovada, entity.StatusReprovada, entity.StatusCancelada},
	entity.StatusAprovada:            {entity.StatusFinalizada, entity.StatusCancelada},
	entity.StatusReprovada:           {entity.StatusEmExecucao, entity.StatusFinalizada, entity.StatusCancelada},
	entity.StatusFinalizada:          nil,
	entity.StatusCancelada:           nil,
}

// initiators estados desde los que cada rol operativo puede iniciar un cambio.
// admin y gestor no tienen restricción; client nunca cambia estados.
var initiators = map[entity.Role][]entity.OrderStatus{
	entity.RoleAtendente: {entity.StatusAberta, entity.StatusDespachada, entity.StatusCancelada},
	entity.RoleQualidade: {entity.StatusAguardandoValidacao},
	entity.RoleParceiro:  {entity.StatusDespachada, entity.StatusAceita, entity.StatusEmExecucao},
}

// NextStatuses devuelve los estados alcanzables desde from (copia).
func NextStatuses(from entity.OrderStatus) []entity.OrderStatus {
	next := transitions[from]
	out := make([]entity.OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition valida la arista from -> to contra el grafo, independiente del rol.
func CanTransition(from, to entity.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AllowedToInitiate informa si role puede iniciar un cambio sobre una orden en fromStatus.
func AllowedToInitiate(role entity.Role, from entity.OrderStatus) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleGestor:
		return true
	case entity.RoleClient:
		return false
	}
	for _, s := range initiators[role] {
		if s == from {
			return true
		}
	}
	return false
}
