package request

import (
	"paylink-vending/internal/domain/catalog"
)

type UpsertCatalogRequest struct {
	Title        string `json:"title" binding:"required,max=100"`
	RewardRoleID string `json:"reward_role_id"`
}

func (r *UpsertCatalogRequest) ToDomain(tenantID, catalogID string) (*catalog.Catalog, error) {
	return catalog.NewCatalog(catalogID, tenantID, r.Title, r.RewardRoleID)
}
