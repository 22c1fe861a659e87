package catalog

import (
	"errors"
	"strings"
)

var ErrEmptyID = errors.New("catalog id is required")

// Catalog groups products on one storefront panel. Buyers of any of its products
// may be granted RewardRoleID.
type Catalog struct {
	id           string
	tenantID     string
	title        string
	rewardRoleID string
}

func NewCatalog(id, tenantID, title, rewardRoleID string) (*Catalog, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	return &Catalog{
		id:           strings.TrimSpace(id),
		tenantID:     tenantID,
		title:        strings.TrimSpace(title),
		rewardRoleID: strings.TrimSpace(rewardRoleID),
	}, nil
}

func (c *Catalog) ID() string           { return c.id }
func (c *Catalog) TenantID() string     { return c.tenantID }
func (c *Catalog) Title() string        { return c.title }
func (c *Catalog) RewardRoleID() string { return c.rewardRoleID }
func (c *Catalog) HasRewardRole() bool  { return c.rewardRoleID != "" }
